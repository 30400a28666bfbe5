package cybersource

import "strings"

// The authorization string threads state from an authorize to its later
// capture, credit or void as "orderID;requestID;requestToken". Components
// must not themselves contain ';': decoding is positional and performs no
// escaping. Operation validation rejects order ids carrying the separator so
// this library never produces an ambiguous token.

// EncodeAuthorization joins the three components, collapsing trailing empty
// ones so "X1","","" encodes as "X1". Interior empties keep their slot
// (";R1" decodes back to "","R1",""), so present components never shift
// position on a round trip.
func EncodeAuthorization(orderID, requestID, requestToken string) string {
	parts := []string{orderID, requestID, requestToken}
	end := len(parts)
	for end > 0 && parts[end-1] == "" {
		end--
	}
	return strings.Join(parts[:end], ";")
}

// DecodeAuthorization splits an authorization string into its components.
// Missing trailing components come back empty, never as an error.
func DecodeAuthorization(authorization string) (orderID, requestID, requestToken string) {
	parts := strings.SplitN(authorization, ";", 3)
	switch len(parts) {
	case 3:
		requestToken = parts[2]
		fallthrough
	case 2:
		requestID = parts[1]
		fallthrough
	case 1:
		orderID = parts[0]
	}
	return orderID, requestID, requestToken
}
