package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Transport fetches a catalog document for a URL.
// Implementations own the wire format beyond "returns a JSON object".
type Transport interface {
	Fetch(ctx context.Context, rawURL string) (Document, error)
}

// TransportFunc adapts a bare function to the Transport interface.
type TransportFunc func(ctx context.Context, rawURL string) (Document, error)

// Fetch implements Transport.
func (fn TransportFunc) Fetch(ctx context.Context, rawURL string) (Document, error) {
	return fn(ctx, rawURL)
}

// HTTPTransport fetches catalog documents over HTTP.
// A base URL can be configured so loaders may build origin-relative
// paths like "/assets/locales/en.json".
type HTTPTransport struct {
	client  *http.Client
	baseURL string
}

// HTTPOption configures an HTTPTransport.
type HTTPOption func(*HTTPTransport)

// WithHTTPClient sets a custom HTTP client (default http.DefaultClient).
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(t *HTTPTransport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithBaseURL sets the origin prepended to relative fetch paths,
// e.g. "https://cdn.example.com".
func WithBaseURL(base string) HTTPOption {
	return func(t *HTTPTransport) {
		t.baseURL = strings.TrimSuffix(base, "/")
	}
}

// NewHTTPTransport creates an HTTP transport.
func NewHTTPTransport(opts ...HTTPOption) *HTTPTransport {
	t := &HTTPTransport{client: http.DefaultClient}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Fetch performs a GET request and decodes the response body as a JSON
// object. Non-2xx responses and invalid JSON yield an error.
func (t *HTTPTransport) Fetch(ctx context.Context, rawURL string) (Document, error) {
	fetchURL, err := t.resolve(rawURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: building request for %q: %w", fetchURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetching %q: %w", fetchURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog: fetching %q: unexpected status %d", fetchURL, resp.StatusCode)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding %q: %w", ErrInvalidDocument, fetchURL, err)
	}
	return doc, nil
}

func (t *HTTPTransport) resolve(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("catalog: invalid url %q: %w", rawURL, err)
	}
	if u.IsAbs() || t.baseURL == "" {
		return rawURL, nil
	}
	if !strings.HasPrefix(rawURL, "/") {
		rawURL = "/" + rawURL
	}
	return t.baseURL + rawURL, nil
}

var _ Transport = (*HTTPTransport)(nil)
