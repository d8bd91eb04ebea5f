package binance

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/proxy"
)

const headerProxyAuthorization = "Proxy-Authorization"

// Transport sends a built request and returns the HTTP response. The package
// provides two implementations, direct and proxied; the variant is chosen once
// when the Client is constructed.
type Transport interface {
	Send(req *http.Request) (*http.Response, error)
}

// TransportOptions configures either transport variant.
type TransportOptions struct {
	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// ProxyHeaders are sent to the proxy in addition to Proxy-Authorization.
	// Ignored by the direct transport and by SOCKS proxies.
	ProxyHeaders http.Header

	// HTTPClient replaces the default client. The client is copied and its
	// *http.Transport cloned, so the caller's value is never mutated.
	HTTPClient *http.Client
}

// directTransport talks to the exchange without any proxy, ignoring
// HTTP_PROXY and friends from the environment.
type directTransport struct {
	client *http.Client
}

// NewDirectTransport creates the direct (no proxy) transport.
func NewDirectTransport(opts TransportOptions) (Transport, error) {
	client, ht, err := buildHTTPClient(opts)
	if err != nil {
		return nil, err
	}
	if ht != nil {
		ht.Proxy = nil
	}
	return &directTransport{client: client}, nil
}

func (t *directTransport) Send(req *http.Request) (*http.Response, error) {
	return t.client.Do(req)
}

// proxiedTransport routes every request through a forward proxy.
type proxiedTransport struct {
	client   *http.Client
	proxyURL *url.URL
	// headers merged into plain-http requests; https targets carry them on CONNECT
	headers http.Header
}

// NewProxiedTransport creates a transport that tunnels through proxyURI.
// Supported schemes are http, https, socks5 and socks5h. Credentials in the
// URI userinfo become a basic Proxy-Authorization header (HTTP proxies) or
// SOCKS5 username/password auth.
func NewProxiedTransport(proxyURI string, opts TransportOptions) (Transport, error) {
	u, err := url.Parse(proxyURI)
	if err != nil {
		return nil, fmt.Errorf("parse proxy uri: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("proxy uri %q has no host", redactProxy(u))
	}

	client, ht, err := buildHTTPClient(opts)
	if err != nil {
		return nil, err
	}
	if ht == nil {
		return nil, errUnsupportedHTTP
	}

	t := &proxiedTransport{client: client, proxyURL: u}

	switch u.Scheme {
	case "http", "https":
		t.headers = proxyHeaders(u, opts.ProxyHeaders)
		// net/http would add its own Proxy-Authorization from userinfo
		ht.Proxy = http.ProxyURL(withoutUserinfo(u))
		ht.ProxyConnectHeader = t.headers.Clone()
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("socks proxy: %w", err)
		}
		cd, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("socks proxy dialer does not support context")
		}
		ht.Proxy = nil
		ht.DialContext = cd.DialContext
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}

	log.Debug().
		Str("proxy", redactProxy(u)).
		Int("headers", len(t.headers)).
		Msg("proxied transport ready")

	return t, nil
}

// ProxyHeaders returns the headers to merge into a request for target. Only
// plain-http targets get headers here; for https the proxy sees them on the
// CONNECT request instead.
func (t *proxiedTransport) ProxyHeaders(target *url.URL) http.Header {
	if target == nil || target.Scheme != "http" || len(t.headers) == 0 {
		return nil
	}
	return t.headers.Clone()
}

func (t *proxiedTransport) Send(req *http.Request) (*http.Response, error) {
	for k, vs := range t.ProxyHeaders(req.URL) {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	return t.client.Do(req)
}

// buildHTTPClient returns a fresh client and its *http.Transport. ht is nil
// only when the caller supplied a client with a non-standard RoundTripper.
func buildHTTPClient(opts TransportOptions) (*http.Client, *http.Transport, error) {
	var client http.Client
	if opts.HTTPClient != nil {
		client = *opts.HTTPClient
	}

	var ht *http.Transport
	switch rt := client.Transport.(type) {
	case nil:
		ht = http.DefaultTransport.(*http.Transport).Clone()
	case *http.Transport:
		ht = rt.Clone()
	default:
		if opts.InsecureSkipVerify {
			return nil, nil, errUnsupportedHTTP
		}
		return &client, nil, nil
	}

	if ht.TLSClientConfig == nil {
		ht.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if opts.InsecureSkipVerify {
		ht.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec // opt-in for debugging proxies
	}
	client.Transport = ht
	return &client, ht, nil
}

func proxyHeaders(u *url.URL, extra http.Header) http.Header {
	h := http.Header{}
	for k, vs := range extra {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	if u.User != nil {
		user := u.User.Username()
		pass, _ := u.User.Password()
		h.Set(headerProxyAuthorization, "Basic "+base64.StdEncoding.EncodeToString([]byte(user+":"+pass)))
	}
	return h
}

func withoutUserinfo(u *url.URL) *url.URL {
	out := *u
	out.User = nil
	return &out
}

func redactProxy(u *url.URL) string {
	return (&url.URL{Scheme: u.Scheme, Host: u.Host}).String()
}
