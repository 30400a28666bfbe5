package cybersource

import (
	"strconv"
	"strings"

	"github.com/devanandersen/active-merchant/internal/xmldoc"
	"github.com/devanandersen/active-merchant/models"
)

const defaultEmail = "null@cybersource.com"

// resolveAddresses fills both address slots from whatever the caller
// supplied: billing falls back to the generic address, then to shipping,
// then to an empty address; shipping falls back to the resolved billing.
func resolveAddresses(opts Options) (billing, shipping models.Address) {
	switch {
	case opts.BillingAddress != nil:
		billing = *opts.BillingAddress
	case opts.Address != nil:
		billing = *opts.Address
	case opts.ShippingAddress != nil:
		billing = *opts.ShippingAddress
	}
	if opts.ShippingAddress != nil {
		shipping = *opts.ShippingAddress
	} else {
		shipping = billing
	}
	return billing, shipping
}

// buildAddress emits a billTo or shipTo block. The processor requires an
// email on the bill-to; a placeholder is sent when the caller has none.
func buildAddress(tag string, card models.CreditCard, addr models.Address, email string) *xmldoc.Element {
	el := xmldoc.New(tag)
	el.Leaf("firstName", card.FirstName)
	el.Leaf("lastName", card.LastName)
	el.Leaf("street1", addr.Address1)
	if addr.Address2 != "" {
		el.Leaf("street2", addr.Address2)
	}
	el.Leaf("city", addr.City)
	el.Leaf("state", addr.State)
	el.Leaf("postalCode", addr.Zip)
	el.Leaf("country", addr.Country)
	if email == "" {
		email = addr.Email
	}
	if email == "" {
		email = defaultEmail
	}
	el.Leaf("email", email)
	return el
}

func buildPurchaseTotals(money models.Money) *xmldoc.Element {
	el := xmldoc.New("purchaseTotals")
	el.Leaf("currency", money.CurrencyCode())
	el.Leaf("grandTotalAmount", money.Format())
	return el
}

// buildCard emits the card block. The verification value is omitted
// entirely, never sent empty, when absent or when configuration ignores CVV.
func (g *Gateway) buildCard(card models.CreditCard) (*xmldoc.Element, error) {
	brandCode, err := card.BrandCode()
	if err != nil {
		return nil, err
	}
	el := xmldoc.New("card")
	el.Leaf("accountNumber", card.NormalizedNumber())
	el.Leaf("expirationMonth", card.ExpirationMonth())
	el.Leaf("expirationYear", card.ExpirationYear())
	if card.VerificationValue != "" && !g.config.IgnoreCVV {
		el.Leaf("cvNumber", card.VerificationValue)
	}
	el.Leaf("cardType", brandCode)
	return el, nil
}

func (g *Gateway) buildBusinessRules() *xmldoc.Element {
	el := xmldoc.New("businessRules")
	if g.config.IgnoreAVS {
		el.Leaf("ignoreAVSResult", "true")
	}
	if g.config.IgnoreCVV {
		el.Leaf("ignoreCVResult", "true")
	}
	return el
}

func serviceMarker(tag string) *xmldoc.Element {
	return xmldoc.New(tag).Attr("run", "true")
}

func (g *Gateway) buildAuthRequest(money models.Money, card models.CreditCard, opts Options) ([]*xmldoc.Element, error) {
	cardEl, err := g.buildCard(card)
	if err != nil {
		return nil, err
	}
	billing, _ := resolveAddresses(opts)
	return []*xmldoc.Element{
		buildAddress("billTo", card, billing, opts.Email),
		buildPurchaseTotals(money),
		cardEl,
		serviceMarker("ccAuthService"),
		g.buildBusinessRules(),
	}, nil
}

// buildPurchaseRequest is an authorization and capture in one body: both
// service markers are issued so no separate capture call follows.
func (g *Gateway) buildPurchaseRequest(money models.Money, card models.CreditCard, opts Options) ([]*xmldoc.Element, error) {
	cardEl, err := g.buildCard(card)
	if err != nil {
		return nil, err
	}
	billing, _ := resolveAddresses(opts)
	return []*xmldoc.Element{
		buildAddress("billTo", card, billing, opts.Email),
		buildPurchaseTotals(money),
		cardEl,
		serviceMarker("ccAuthService"),
		serviceMarker("ccCaptureService"),
		g.buildBusinessRules(),
	}, nil
}

// buildCaptureRequest resends no address or card data; the prior authorize
// is referenced through the decoded request id and token.
func (g *Gateway) buildCaptureRequest(money models.Money, requestID, requestToken string) []*xmldoc.Element {
	capture := serviceMarker("ccCaptureService")
	capture.Leaf("authRequestID", requestID)
	capture.Leaf("authRequestToken", requestToken)
	return []*xmldoc.Element{
		buildPurchaseTotals(money),
		capture,
		g.buildBusinessRules(),
	}
}

func (g *Gateway) buildCreditRequest(money models.Money, requestID, requestToken string) []*xmldoc.Element {
	credit := serviceMarker("ccCreditService")
	credit.Leaf("captureRequestID", requestID)
	credit.Leaf("captureRequestToken", requestToken)
	return []*xmldoc.Element{
		buildPurchaseTotals(money),
		credit,
		g.buildBusinessRules(),
	}
}

func buildVoidRequest(requestID, requestToken string) []*xmldoc.Element {
	void := serviceMarker("voidService")
	void.Leaf("voidRequestID", requestID)
	void.Leaf("voidRequestToken", requestToken)
	return []*xmldoc.Element{void}
}

// buildTaxRequest carries both addresses and one item element per line item,
// tagged with its zero-based position. Tax calculation charges nothing, so
// the purchase totals carry an explicit zero grand total.
func (g *Gateway) buildTaxRequest(card models.CreditCard, opts Options) []*xmldoc.Element {
	billing, shipping := resolveAddresses(opts)
	blocks := []*xmldoc.Element{
		buildAddress("billTo", card, billing, opts.Email),
		buildAddress("shipTo", card, shipping, opts.Email),
	}
	currency := opts.Currency
	for i, item := range opts.LineItems {
		if currency == "" {
			currency = item.UnitPrice.CurrencyCode()
		}
		el := xmldoc.New("item").Attr("id", strconv.Itoa(i))
		el.Leaf("unitPrice", item.UnitPrice.Format())
		el.Leaf("quantity", strconv.Itoa(item.Quantity))
		el.Leaf("productCode", item.ProductCode)
		el.Leaf("productName", item.ProductName)
		el.Leaf("productSKU", item.SKU)
		blocks = append(blocks, el)
	}
	if currency == "" {
		currency = "USD"
	}
	blocks = append(blocks, buildPurchaseTotals(models.Money{Amount: 0, Currency: currency}))

	tax := serviceMarker("taxService")
	if len(g.config.Nexus) > 0 {
		tax.Leaf("nexus", strings.Join(g.config.Nexus, " "))
	}
	if g.config.VATRegNumber != "" {
		tax.Leaf("sellerRegistration", g.config.VATRegNumber)
	}
	blocks = append(blocks, tax, g.buildBusinessRules())
	return blocks
}
