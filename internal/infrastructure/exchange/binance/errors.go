package binance

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrMissingCredential matches *MissingCredentialError.
	ErrMissingCredential = errors.New("missing credential")

	// ErrRequestBuild matches *RequestBuildError.
	ErrRequestBuild = errors.New("request build failed")

	// ErrTransport matches *TransportError.
	ErrTransport = errors.New("transport failed")

	// ErrInvalidArgument is returned by the typed endpoint accessors when a
	// parameter fails local validation. No request is sent.
	ErrInvalidArgument = errors.New("invalid argument")
)

var (
	errInvalidPath     = errors.New("path must start with / and hold no query, fragment, space or control bytes")
	errInvalidQuery    = errors.New("query holds bytes not allowed in a request target")
	errEmptyCanonical  = errors.New("empty canonical string for signed request")
	errReservedParam   = errors.New("parameter is set by the client")
	errInvalidAPIKey   = errors.New("api key is not a valid header value")
	errNoCredentials   = errors.New("credentials not set")
	errUnsupportedHTTP = errors.New("transport is not an *http.Transport")
)

// MissingCredentialError reports a required credential that was absent or empty.
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s not found", e.Name)
}

// Is implements errors.Is for sentinel error matching.
func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// RequestBuildError reports a request that could not be assembled: a bad
// path, URL, header value or parameter set. It is never worth retrying.
type RequestBuildError struct {
	Method string
	Path   string
	Err    error
}

func (e *RequestBuildError) Error() string {
	return fmt.Sprintf("build %s %s: %v", e.Method, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *RequestBuildError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *RequestBuildError) Is(target error) bool {
	return target == ErrRequestBuild
}

// TransportError reports a network-level failure, including a cancelled or
// expired context and a response body that could not be read.
// URL carries no query string.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
