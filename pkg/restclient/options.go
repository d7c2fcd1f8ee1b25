package restclient

import (
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrymomot/notifykit/pkg/requestid"
)

// ResponseInfo describes one completed round trip.
type ResponseInfo struct {
	Method     string
	Path       string
	StatusCode int
	Duration   time.Duration
	Err        error
}

// ResponseHook is called after every request, successful or not.
type ResponseHook func(info ResponseInfo)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. The client is copied and
// its transport wrapped so X-Request-ID is still forwarded; a nil transport
// means http.DefaultTransport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client == nil {
			return
		}
		hc := *client
		next := hc.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		hc.Transport = requestid.Transport(next)
		c.client = &hc
	}
}

// WithTimeout sets a per-request timeout layered on top of the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if key != "" && value != "" {
			c.headers[key] = value
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithOnResponse registers a hook for logging or metrics.
func WithOnResponse(hook ResponseHook) Option {
	return func(c *Client) {
		c.onResponse = hook
	}
}

type requestOptions struct {
	headers map[string]string
	query   url.Values
}

// RequestOption configures a single call.
type RequestOption func(*requestOptions)

// WithRequestHeader adds a header to a single request.
func WithRequestHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if key != "" && value != "" {
			o.headers[key] = value
		}
	}
}

// WithQuery sets query parameters for a single request.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) {
		o.query = q
	}
}
