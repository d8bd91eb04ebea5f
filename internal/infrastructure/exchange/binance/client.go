package binance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http/httpguts"
)

const (
	headerAPIKey      = "X-MBX-APIKEY"
	headerContentType = "Content-Type"
	formContentType   = "application/x-www-form-urlencoded"

	paramTimestamp  = "timestamp"
	paramSignature  = "signature"
	paramRecvWindow = "recvWindow"
)

// Response is the raw outcome of a call. Any well-formed HTTP response is a
// Response, whatever its status; the body is never decoded here.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// CallInfo describes one dispatched call. It carries no parameters, keys or
// signature.
type CallInfo struct {
	ID         string
	Method     string
	Path       string
	Signed     bool
	StatusCode int
	Duration   time.Duration
	Err        error
	Time       time.Time
}

// CallObserver is notified synchronously after every dispatch, successful or not.
type CallObserver interface {
	ObserveCall(ctx context.Context, info CallInfo)
}

// Client is the Binance REST request pipeline. It is safe for concurrent use:
// everything a call needs is request-local, and credentials are swapped
// atomically.
type Client struct {
	baseURL     string
	credentials atomic.Pointer[Credentials]
	transport   Transport
	now         func() int64
	recvWindow  int64
	observer    CallObserver
}

// New creates a client holding creds. With WithProxy the proxied transport is
// used, otherwise the direct one.
func New(creds *Credentials, opts ...Option) (*Client, error) {
	if creds == nil {
		return nil, &MissingCredentialError{Name: EnvAPIKey}
	}

	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	baseURL, err := normalizeBaseURL(cfg.baseURL)
	if err != nil {
		return nil, err
	}

	topts := TransportOptions{
		InsecureSkipVerify: cfg.insecure,
		ProxyHeaders:       cfg.proxyHeaders,
		HTTPClient:         cfg.httpClient,
	}
	var transport Transport
	if cfg.proxyURI != "" {
		transport, err = NewProxiedTransport(cfg.proxyURI, topts)
	} else {
		transport, err = NewDirectTransport(topts)
	}
	if err != nil {
		return nil, fmt.Errorf("create transport: %w", err)
	}

	c := &Client{
		baseURL:    baseURL,
		transport:  transport,
		now:        cfg.now,
		recvWindow: cfg.recvWindow,
		observer:   cfg.observer,
	}
	c.credentials.Store(creds)

	log.Debug().
		Str("base_url", baseURL).
		Bool("proxied", c.Proxied()).
		Bool("insecure", cfg.insecure).
		Msg("binance client created")

	return c, nil
}

// NewFromEnv resolves credentials from APIKEY and SECRETKEY and creates a
// client. A missing variable fails before anything touches the network.
func NewFromEnv(opts ...Option) (*Client, error) {
	creds, err := CredentialsFromEnv()
	if err != nil {
		return nil, err
	}
	return New(creds, opts...)
}

// SetCredentials replaces both keys at once. Calls already in flight keep
// the credentials they started with.
func (c *Client) SetCredentials(creds *Credentials) error {
	if creds == nil {
		return &MissingCredentialError{Name: EnvAPIKey}
	}
	c.credentials.Store(creds)
	return nil
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Proxied reports whether the client uses the proxied transport.
func (c *Client) Proxied() bool {
	_, ok := c.transport.(*proxiedTransport)
	return ok
}

// Get calls a public endpoint without parameters.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, false)
}

// GetWithParams calls a public endpoint with a query string.
func (c *Client) GetWithParams(ctx context.Context, path string, params Params) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, params, false)
}

// GetSigned calls a signed endpoint with the parameters in the query string.
func (c *Client) GetSigned(ctx context.Context, path string, params Params) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, params, true)
}

// PostSigned calls a signed endpoint with the parameters as a form body.
func (c *Client) PostSigned(ctx context.Context, path string, params Params) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, params, true)
}

// Call dispatches ep with params.
func (c *Client) Call(ctx context.Context, ep Endpoint, params Params) (*Response, error) {
	return c.do(ctx, ep.Method, ep.Path, params, ep.Security == SecuritySigned)
}

func (c *Client) do(ctx context.Context, method, path string, params Params, signed bool) (*Response, error) {
	info := CallInfo{
		ID:     uuid.NewString(),
		Method: method,
		Path:   path,
		Signed: signed,
		Time:   time.Now(),
	}

	req, err := c.newRequest(ctx, method, path, params, signed)
	if err != nil {
		buildErr := &RequestBuildError{Method: method, Path: path, Err: err}
		info.Err = buildErr
		c.observe(ctx, info)
		return nil, buildErr
	}

	resp, err := c.transport.Send(req)
	if err != nil {
		return nil, c.transportFailed(ctx, info, req, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportFailed(ctx, info, req, fmt.Errorf("read body: %w", err))
	}

	info.StatusCode = resp.StatusCode
	info.Duration = time.Since(info.Time)
	log.Debug().
		Str("call_id", info.ID).
		Str("method", method).
		Str("path", path).
		Bool("signed", signed).
		Int("status", resp.StatusCode).
		Dur("took", info.Duration).
		Msg("binance call")
	c.observe(ctx, info)

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (c *Client) transportFailed(ctx context.Context, info CallInfo, req *http.Request, err error) error {
	// *url.Error repeats the full URL, query included
	var uerr *url.Error
	if errors.As(err, &uerr) {
		err = uerr.Err
	}
	terr := &TransportError{Method: req.Method, URL: stripQuery(req.URL), Err: err}
	info.Duration = time.Since(info.Time)
	info.Err = terr
	log.Debug().
		Str("call_id", info.ID).
		Str("method", info.Method).
		Str("path", info.Path).
		Err(err).
		Msg("binance call failed")
	c.observe(ctx, info)
	return terr
}

func (c *Client) observe(ctx context.Context, info CallInfo) {
	if c.observer != nil {
		c.observer.ObserveCall(ctx, info)
	}
}

// newRequest assembles the HTTP request. For signed calls the canonical
// string is produced once and the same bytes go on the wire, followed only
// by the signature.
func (c *Client) newRequest(ctx context.Context, method, path string, params Params, signed bool) (*http.Request, error) {
	if !validPath(path) {
		return nil, errInvalidPath
	}
	creds := c.credentials.Load()
	if creds == nil {
		return nil, errNoCredentials
	}
	if !httpguts.ValidHeaderFieldValue(creds.APIKey()) {
		return nil, errInvalidAPIKey
	}

	payload, err := c.payload(params, signed, creds)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + path
	var body io.Reader
	if carriesBody(method) {
		body = strings.NewReader(payload)
	} else if payload != "" {
		if !validQuery(payload) {
			return nil, errInvalidQuery
		}
		endpoint += "?" + payload
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerAPIKey, creds.APIKey())
	if body != nil {
		req.Header.Set(headerContentType, formContentType)
	}
	return req, nil
}

// validPath accepts an absolute path whose bytes go on the request line
// verbatim, so the query the client appends is the only query.
func validPath(path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	return !strings.ContainsAny(path, "?#") && targetSafe(path)
}

func validQuery(query string) bool {
	return !strings.Contains(query, "#") && targetSafe(query)
}

// targetSafe reports whether s holds only printable ASCII without spaces.
func targetSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		if b := s[i]; b <= ' ' || b >= 0x7f {
			return false
		}
	}
	return true
}

func (c *Client) payload(params Params, signed bool, creds *Credentials) (string, error) {
	if !signed {
		return params.Encode(), nil
	}

	for _, reserved := range []string{paramTimestamp, paramSignature} {
		if params.Has(reserved) {
			return "", fmt.Errorf("%w: %s", errReservedParam, reserved)
		}
	}

	ps := params.clone()
	if c.recvWindow > 0 && !ps.Has(paramRecvWindow) {
		ps = ps.AddInt(paramRecvWindow, c.recvWindow)
	}
	ps = ps.AddInt(paramTimestamp, c.now())

	canonical := ps.Encode()
	if canonical == "" {
		return "", errEmptyCanonical
	}
	return canonical + "&" + paramSignature + "=" + creds.Sign(canonical), nil
}

func carriesBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut
}

func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid base url %q: want http(s)://host", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("invalid base url %q: query and fragment not allowed", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func stripQuery(u *url.URL) string {
	cp := *u
	cp.RawQuery = ""
	cp.ForceQuery = false
	cp.User = nil
	return cp.String()
}
