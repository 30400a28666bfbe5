// Package testcards holds the canned replies returned for well-known card
// numbers when a gateway runs in test mode, so integration code can exercise
// every outcome without reaching the processor.
package testcards

import "github.com/google/uuid"

type outcome struct {
	decision   string
	reasonCode string
}

// Magic numbers, not real PANs: "1" approves, "2" declines, "3" fails at the
// processor.
var outcomes = map[string]outcome{
	"1": {decision: "ACCEPT", reasonCode: "100"},
	"2": {decision: "REJECT", reasonCode: "203"},
	"3": {decision: "ERROR", reasonCode: "150"},
}

// Lookup returns canned reply params for a recognized test card number. The
// request id and token are synthesized per call so captures built on top of
// a canned authorize still carry unique-looking identifiers.
func Lookup(number string) (map[string]string, bool) {
	o, ok := outcomes[number]
	if !ok {
		return nil, false
	}
	return map[string]string{
		"decision":     o.decision,
		"reasonCode":   o.reasonCode,
		"requestID":    uuid.New().String(),
		"requestToken": uuid.New().String(),
	}, true
}
