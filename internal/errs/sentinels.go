// Package errs contains the error taxonomy produced at the network boundary
// plus sentinels used across layers for stable error mapping. Every network
// failure is classified into exactly one of the typed errors below; callers
// branch with errors.As and never inspect transport internals.
package errs

import (
	"errors"
	"fmt"
)

// ErrMalformedLocalData marks locally stored data that failed to decode. It
// is recovered at the storage boundary (the value is treated as absent) and
// never surfaces to callers; it exists for logging.
var ErrMalformedLocalData = errors.New("malformed local data")

// ServerError is a 5xx response: the backend answered and reported an
// internal failure.
type ServerError struct {
	Status int
	Body   string
	Path   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d on %s", e.Status, e.Path)
}

// NotFoundError is a 404 response for the given request path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Path)
}

// AuthError is a 401 or 403 response. It is surfaced, never retried; the UI
// contract is to prompt re-authentication.
type AuthError struct {
	Status int
	Path   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected (%d) on %s", e.Status, e.Path)
}

// HTTPError is any other error-status response (4xx outside the cases above).
type HTTPError struct {
	Status     int
	StatusText string
	Body       string
	Path       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d %s on %s", e.Status, e.StatusText, e.Path)
}

// ConnectivityError means the request was dispatched but no response ever
// arrived: the backend is down, unreachable, or the request timed out. The UI
// contract is a "service unavailable" message.
type ConnectivityError struct {
	Path    string
	Method  string
	BaseURL string
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("no response from %s (%s %s)", e.BaseURL, e.Method, e.Path)
}

// ConfigurationError means the request was never constructed: a local
// configuration or programming problem, not a network one.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "request not sent: " + e.Message
}
