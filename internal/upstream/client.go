// Package upstream is the thin client for the remote catalog backend. It
// fetches raw brand, product, and category payloads, tolerating the payload
// shape drift between backend revisions, and maps every failure into a
// typed Error the handlers can translate back into a response.
package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/rabukhader/Ajjawi-Website/internal/cache"
)

// DefaultTimeout bounds every upstream request. The backend occasionally
// stalls on cold starts, hence the generous value.
const DefaultTimeout = 30 * time.Second

const (
	brandsPath     = "/api/brands"
	productsPath   = "/api/products"
	categoriesPath = "/api/categories"
)

// Client fetches raw catalog payloads from the backend.
type Client struct {
	http     *http.Client
	baseURL  string
	cache    cache.Cache
	cacheTTL time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default instrumented HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache puts a byte cache in front of every fetch. Entries live for ttl.
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = store
		c.cacheTTL = ttl
	}
}

// WithTimeout overrides DefaultTimeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a Client for the backend at baseURL (no trailing slash).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: baseURL,
		cache:   cache.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Brands fetches every brand. Whether products come nested depends on the
// backend revision; callers must handle a nil Products slice.
func (c *Client) Brands(ctx context.Context) ([]RawBrand, error) {
	body, err := c.get(ctx, brandsPath, nil)
	if err != nil {
		return nil, err
	}
	var brands []RawBrand
	if err := json.Unmarshal(body, &brands); err != nil {
		return nil, errors.Wrap(err, "decode brands payload")
	}
	return brands, nil
}

// Products fetches the product catalog, optionally restricted to one brand.
// Both known payload shapes (flat product list, brand envelopes with nested
// products) are normalized to a flat list.
func (c *Client) Products(ctx context.Context, brandID string) ([]RawProduct, error) {
	var query url.Values
	if brandID != "" {
		query = url.Values{"brandId": []string{brandID}}
	}
	body, err := c.get(ctx, productsPath, query)
	if err != nil {
		return nil, err
	}
	var entries []catalogEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, errors.Wrap(err, "decode products payload")
	}
	return flattenProducts(entries), nil
}

// Categories fetches every category.
func (c *Client) Categories(ctx context.Context) ([]RawCategory, error) {
	body, err := c.get(ctx, categoriesPath, nil)
	if err != nil {
		return nil, err
	}
	var categories []RawCategory
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, errors.Wrap(err, "decode categories payload")
	}
	return categories, nil
}

// Ping checks backend reachability for the readiness probe. Any completed
// HTTP exchange counts as reachable; only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+categoriesPath, nil)
	if err != nil {
		return errors.Wrap(err, "build ping request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "ping upstream")
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// get performs one GET against the backend, consulting the cache first.
// Successful responses are cached; failures never are.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	key := path
	if len(query) > 0 {
		key += "?" + query.Encode()
	}

	if body, ok := c.cache.Get(ctx, key); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+key, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		parsed := map[string]any{}
		// Best effort: a non-JSON error body degrades to an empty object.
		_ = json.Unmarshal(body, &parsed)
		zctx.From(ctx).Warn("Upstream request failed",
			zap.String("path", key),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &Error{Kind: KindHTTP, StatusCode: resp.StatusCode, Body: parsed}
	}

	c.cache.Set(ctx, key, body, c.cacheTTL)
	return body, nil
}

// classifyTransportError separates deadline expiry from other transport
// failures, mirroring the 408-vs-0 status split the site frontend expects.
func classifyTransportError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, StatusCode: http.StatusRequestTimeout, cause: err}
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, StatusCode: http.StatusRequestTimeout, cause: err}
	}
	return &Error{Kind: KindNetwork, StatusCode: 0, cause: err}
}
