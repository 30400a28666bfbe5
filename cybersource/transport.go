package cybersource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Transport delivers a request document to the processor endpoint and
// returns the raw reply bytes. Implementations own timeout and retry policy;
// the gateway treats a Transport error as a transport failure, never as a
// processor decline.
type Transport interface {
	Send(ctx context.Context, url string, body []byte) ([]byte, error)
}

// HTTPTransport posts the envelope over HTTPS.
type HTTPTransport struct {
	HTTP *http.Client
}

func NewHTTPTransport(hc *http.Client) *HTTPTransport {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPTransport{HTTP: hc}
}

func (t *HTTPTransport) Send(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")

	resp, err := t.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting to processor: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading reply: %w", err)
	}
	// SOAP faults come back with a 500; the body still parses.
	if resp.StatusCode/100 != 2 && resp.StatusCode != http.StatusInternalServerError {
		return nil, fmt.Errorf("processor status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}
