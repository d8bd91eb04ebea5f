package binance

import "net/http"

// DefaultBaseURL is the Binance spot REST host.
const DefaultBaseURL = "https://api.binance.com"

// clientConfig holds construction-time settings for the client.
type clientConfig struct {
	baseURL      string
	proxyURI     string
	insecure     bool
	proxyHeaders http.Header
	httpClient   *http.Client
	now          func() int64
	recvWindow   int64
	observer     CallObserver
}

func defaultClientConfig() clientConfig {
	return clientConfig{
		baseURL: DefaultBaseURL,
		now:     NowMillis,
	}
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithProxy routes all requests through the forward proxy at uri.
// An empty uri keeps the direct transport.
func WithProxy(uri string) Option {
	return func(c *clientConfig) {
		c.proxyURI = uri
	}
}

// WithProxyHeaders adds headers sent to the proxy with every request.
func WithProxyHeaders(h http.Header) Option {
	return func(c *clientConfig) {
		c.proxyHeaders = h.Clone()
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *clientConfig) {
		c.insecure = skip
	}
}

// WithHTTPClient sets the HTTP client the transport is built from.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimestampFunc overrides the millisecond clock used for signed calls.
func WithTimestampFunc(now func() int64) Option {
	return func(c *clientConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRecvWindow adds recvWindow=ms to signed calls that do not set it.
// Zero (the default) sends no recvWindow and the exchange default applies.
func WithRecvWindow(ms int64) Option {
	return func(c *clientConfig) {
		c.recvWindow = ms
	}
}

// WithCallObserver registers an observer notified after every dispatch.
func WithCallObserver(obs CallObserver) Option {
	return func(c *clientConfig) {
		c.observer = obs
	}
}
