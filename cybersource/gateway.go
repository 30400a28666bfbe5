// Package cybersource translates payment operations (authorize, capture,
// purchase, void, credit, tax calculation) into the processor's SOAP
// request documents and normalizes its replies into a single Result shape.
package cybersource

import (
	"context"
	"fmt"
	"strings"

	"github.com/devanandersen/active-merchant/internal/testcards"
	"github.com/devanandersen/active-merchant/internal/xmldoc"
	"github.com/devanandersen/active-merchant/models"
	"golang.org/x/exp/slog"
)

var (
	ErrMissingCredentials   = fmt.Errorf("login and password are required")
	ErrMissingOrderID       = fmt.Errorf("order_id is required")
	ErrInvalidOrderID       = fmt.Errorf("order_id must not contain ';'")
	ErrMissingAuthorization = fmt.Errorf("authorization is required")
	ErrMissingLineItems     = fmt.Errorf("line_items are required for tax calculation")
	ErrInvalidCardNumber    = fmt.Errorf("invalid card number")
)

// Options carries per-operation caller input. Addresses are optional; see
// resolveAddresses for how missing slots are defaulted.
type Options struct {
	// OrderID becomes the merchant reference code. Required for Authorize
	// and Purchase; recovered from the authorization token otherwise.
	OrderID string
	Email   string
	// Currency for operations that carry no amount (tax calculation).
	Currency        string
	Address         *models.Address
	BillingAddress  *models.Address
	ShippingAddress *models.Address
	LineItems       []models.LineItem
}

// Gateway is one configured connection to the processor. A single instance
// is safe for concurrent use: all request state is local to a call and the
// lookup tables are never mutated.
type Gateway struct {
	config    *Config
	transport Transport
	logger    *slog.Logger
}

// New builds a gateway. A nil transport gets the default HTTP transport; a
// nil config is rejected through the credentials check.
func New(logger *slog.Logger, config *Config, transport Transport) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.Login == "" || config.Password == "" {
		return nil, ErrMissingCredentials
	}
	if transport == nil {
		transport = NewHTTPTransport(nil)
	}
	return &Gateway{
		config:    config,
		transport: transport,
		logger:    logger.With(slog.String("gateway", "cybersource")),
	}, nil
}

// Authorize places a hold on the card for the given amount.
func (g *Gateway) Authorize(ctx context.Context, money models.Money, card models.CreditCard, opts Options) (*models.Result, error) {
	if err := validateOrderID(opts.OrderID); err != nil {
		return nil, err
	}
	if err := g.validateCard(card); err != nil {
		return nil, err
	}
	body, err := g.buildAuthRequest(money, card, opts)
	if err != nil {
		return nil, err
	}
	g.logger.Info("authorize", slog.String("order_id", opts.OrderID), slog.String("card", card.MaskedNumber()))
	return g.commit(ctx, opts.OrderID, body)
}

// Purchase authorizes and captures in a single call.
func (g *Gateway) Purchase(ctx context.Context, money models.Money, card models.CreditCard, opts Options) (*models.Result, error) {
	if err := validateOrderID(opts.OrderID); err != nil {
		return nil, err
	}
	if err := g.validateCard(card); err != nil {
		return nil, err
	}
	body, err := g.buildPurchaseRequest(money, card, opts)
	if err != nil {
		return nil, err
	}
	g.logger.Info("purchase", slog.String("order_id", opts.OrderID), slog.String("card", card.MaskedNumber()))
	return g.commit(ctx, opts.OrderID, body)
}

// Capture settles a prior authorization identified by its token.
func (g *Gateway) Capture(ctx context.Context, money models.Money, authorization string, opts Options) (*models.Result, error) {
	if authorization == "" {
		return nil, ErrMissingAuthorization
	}
	orderID, requestID, requestToken := DecodeAuthorization(authorization)
	if opts.OrderID == "" {
		opts.OrderID = orderID
	}
	g.logger.Info("capture", slog.String("order_id", opts.OrderID))
	return g.commit(ctx, opts.OrderID, g.buildCaptureRequest(money, requestID, requestToken))
}

// Credit refunds a prior capture identified by its token.
func (g *Gateway) Credit(ctx context.Context, money models.Money, authorization string, opts Options) (*models.Result, error) {
	if authorization == "" {
		return nil, ErrMissingAuthorization
	}
	orderID, requestID, requestToken := DecodeAuthorization(authorization)
	if opts.OrderID == "" {
		opts.OrderID = orderID
	}
	g.logger.Info("credit", slog.String("order_id", opts.OrderID))
	return g.commit(ctx, opts.OrderID, g.buildCreditRequest(money, requestID, requestToken))
}

// Void cancels a prior authorization. A void is not itself authorizable, so
// the result never carries an authorization token.
func (g *Gateway) Void(ctx context.Context, authorization string, opts Options) (*models.Result, error) {
	if authorization == "" {
		return nil, ErrMissingAuthorization
	}
	orderID, requestID, requestToken := DecodeAuthorization(authorization)
	if opts.OrderID == "" {
		opts.OrderID = orderID
	}
	g.logger.Info("void", slog.String("order_id", opts.OrderID))
	result, err := g.commit(ctx, opts.OrderID, buildVoidRequest(requestID, requestToken))
	if result != nil {
		result.Authorization = ""
	}
	return result, err
}

// CalculateTax quotes tax for the given line items; nothing is charged.
func (g *Gateway) CalculateTax(ctx context.Context, card models.CreditCard, opts Options) (*models.Result, error) {
	if len(opts.LineItems) == 0 {
		return nil, ErrMissingLineItems
	}
	g.logger.Info("calculate tax", slog.String("order_id", opts.OrderID), slog.Int("line_items", len(opts.LineItems)))
	return g.commit(ctx, opts.OrderID, g.buildTaxRequest(card, opts))
}

// commit runs one full operation: wrap the body, short-circuit canned test
// cards in test mode, send, parse, resolve.
func (g *Gateway) commit(ctx context.Context, orderID string, body []*xmldoc.Element) (*models.Result, error) {
	envelope := buildEnvelope(g.config, orderID, body)

	if g.config.Test {
		if result, ok := g.cannedResult(envelope, orderID); ok {
			return result, nil
		}
	}

	endpoint := g.config.endpoint()
	g.logger.Debug("sending request", slog.String("endpoint", endpoint))
	raw, err := g.transport.Send(ctx, endpoint, envelope.Bytes())
	if err != nil {
		// Transport failures stay errors; they are never folded into a
		// declined Result.
		return nil, fmt.Errorf("sending request: %w", err)
	}

	return g.resolve(orderID, parseReply(raw)), nil
}

// resolve turns a flattened reply into the normalized Result.
func (g *Gateway) resolve(orderID string, reply models.ReplyMap) *models.Result {
	success := reply["decision"] == "ACCEPT"

	message, ok := reasonMessage(reply["reasonCode"])
	if !ok {
		message = reply["message"]
	}

	var authorization string
	if success {
		authorization = EncodeAuthorization(orderID, reply["requestID"], reply["requestToken"])
	}

	return &models.Result{
		Success:       success,
		Message:       message,
		Params:        reply,
		Test:          g.config.Test,
		Authorization: authorization,
	}
}

// cannedResult matches the card number inside the built request against the
// fixed test-card table and synthesizes the reply without touching the
// network.
func (g *Gateway) cannedResult(envelope *xmldoc.Element, orderID string) (*models.Result, bool) {
	number := ""
	if el := envelope.Find("accountNumber"); el != nil {
		number = el.Text
	}
	params, ok := testcards.Lookup(number)
	if !ok {
		return nil, false
	}
	reply := models.ReplyMap{}
	for k, v := range params {
		reply[k] = v
	}
	g.logger.Debug("canned test result", slog.String("decision", reply["decision"]))
	return g.resolve(orderID, reply), true
}

func validateOrderID(orderID string) error {
	if orderID == "" {
		return ErrMissingOrderID
	}
	// The authorization token is ';'-joined; an order id carrying the
	// separator would make later decoding ambiguous.
	if strings.Contains(orderID, ";") {
		return ErrInvalidOrderID
	}
	return nil
}

// validateCard rejects numbers that cannot pass a digits/Luhn check before
// any request is built. Test mode skips the check: the canned table uses
// magic numbers that are not real PANs.
func (g *Gateway) validateCard(card models.CreditCard) error {
	if g.config.Test {
		return nil
	}
	if !card.ValidNumber() {
		return ErrInvalidCardNumber
	}
	return nil
}
