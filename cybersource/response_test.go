package cybersource

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const replyNS = "urn:schemas-cybersource-com:transaction-data-1.32"

func wrapReply(inner string) []byte {
	return []byte(`<?xml version="1.0" encoding="utf-8"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
		`<c:replyMessage xmlns:c="` + replyNS + `">` + inner + `</c:replyMessage>` +
		`</soap:Body></soap:Envelope>`)
}

func TestParseReply_FlatInput(t *testing.T) {
	reply := parseReply(wrapReply(
		`<c:merchantReferenceCode>X1</c:merchantReferenceCode>` +
			`<c:requestID>R1</c:requestID>` +
			`<c:decision>ACCEPT</c:decision>` +
			`<c:requestToken>T1</c:requestToken>`))

	require.Equal(t, "X1", reply["merchantReferenceCode"])
	require.Equal(t, "R1", reply["requestID"])
	require.Equal(t, "ACCEPT", reply["decision"])
	require.Equal(t, "T1", reply["requestToken"])
	require.Len(t, reply, 4)
}

func TestParseReply_NestedServiceReply(t *testing.T) {
	reply := parseReply(wrapReply(
		`<c:decision>ACCEPT</c:decision>` +
			`<c:ccAuthReply><c:reasonCode>100</c:reasonCode><c:amount>10.00</c:amount></c:ccAuthReply>`))

	require.Equal(t, "100", reply["reasonCode"])
	require.Equal(t, "10.00", reply["amount"])
}

func TestParseReply_TopLevelReasonCodeBecomesMessage(t *testing.T) {
	reply := parseReply(wrapReply(`<c:decision>REJECT</c:decision><c:reasonCode>102</c:reasonCode>`))

	require.Equal(t, "102", reply["message"])
	// Only the nested copy feeds the reasonCode key.
	require.NotContains(t, reply, "reasonCode")
}

func TestParseReply_IndexedItems(t *testing.T) {
	reply := parseReply(wrapReply(
		`<c:item id="0"><c:quantity>1</c:quantity></c:item>` +
			`<c:item id="1"><c:quantity>3</c:quantity></c:item>`))

	require.Equal(t, "1", reply["item_0_quantity"])
	require.Equal(t, "3", reply["item_1_quantity"])
}

func TestParseReply_LastWriteWins(t *testing.T) {
	reply := parseReply(wrapReply(`<c:decision>REJECT</c:decision><c:decision>ACCEPT</c:decision>`))
	require.Equal(t, "ACCEPT", reply["decision"])
}

func TestParseReply_Fault(t *testing.T) {
	raw := []byte(`<?xml version="1.0"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"><soap:Body>` +
		`<soap:Fault><faultcode>Client</faultcode><faultstring>Bad auth</faultstring></soap:Fault>` +
		`</soap:Body></soap:Envelope>`)

	reply := parseReply(raw)
	require.Equal(t, "Client: Bad auth", reply["message"])
	require.Equal(t, "Client", reply["faultcode"])
}

func TestParseReply_UnrecognizedRoot(t *testing.T) {
	require.Empty(t, parseReply([]byte(`<other><a>1</a></other>`)))
}

func TestParseReply_Garbage(t *testing.T) {
	require.Empty(t, parseReply([]byte("not xml at all")))
	require.Empty(t, parseReply(nil))
}
