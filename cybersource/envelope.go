package cybersource

import (
	"runtime"

	"github.com/devanandersen/active-merchant/internal/xmldoc"
)

const (
	schemaVersion = "1.32"

	soapEnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	wsseNS         = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	passwordText   = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-username-token-profile-1.0#PasswordText"
	transactionNS  = "urn:schemas-cybersource-com:transaction-data-" + schemaVersion

	clientLibrary        = "active-merchant-go"
	clientLibraryVersion = "0.1.0"
)

// buildEnvelope wraps an operation body in the transport envelope: a wsse
// security header carrying the merchant credentials, then a requestMessage
// with merchant metadata followed by the body blocks in order.
func buildEnvelope(cfg *Config, orderID string, body []*xmldoc.Element) *xmldoc.Element {
	env := xmldoc.New("s:Envelope").Attr("xmlns:s", soapEnvelopeNS)

	token := env.Element("s:Header").
		Element("wsse:Security").
		Attr("s:mustUnderstand", "1").
		Attr("xmlns:wsse", wsseNS).
		Element("wsse:UsernameToken")
	token.Leaf("wsse:Username", cfg.Login)
	token.Element("wsse:Password").
		Attr("Type", passwordText).
		Text = cfg.Password

	request := env.Element("s:Body").
		Element("requestMessage").
		Attr("xmlns", transactionNS)
	request.Leaf("merchantID", cfg.Login)
	request.Leaf("merchantReferenceCode", orderID)
	request.Leaf("clientLibrary", clientLibrary)
	request.Leaf("clientLibraryVersion", clientLibraryVersion)
	request.Leaf("clientEnvironment", runtime.GOOS+"/"+runtime.GOARCH)
	request.Add(body...)

	return env
}
