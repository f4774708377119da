package gateway

import (
	"io"
	"net/http"
	"time"

	"github.com/zzhang736/tripmap/internal/errs"
)

// maxErrBody caps how much of an error response body is retained for
// diagnostics.
const maxErrBody = 4 << 10

// Outcome is the tagged result of one request attempt, constructed once at
// the network boundary. Exactly one shape holds per attempt: the server
// responded (Response set), the request went out but nothing came back
// (Request set, Response nil), or the request was never built (only Err set).
type Outcome struct {
	Request  *http.Request
	Response *http.Response
	Err      error
	Start    time.Time
}

// Classify maps an outcome onto the error taxonomy. The mapping is total and
// mutually exclusive over the three shapes; 2xx/3xx responses classify as
// success (nil). Error-response bodies are consumed and closed here.
func Classify(o Outcome) error {
	switch {
	case o.Response != nil:
		return classifyStatus(o)
	case o.Request != nil:
		base := o.Request.URL.Scheme + "://" + o.Request.URL.Host
		return &errs.ConnectivityError{
			Path:    o.Request.URL.Path,
			Method:  o.Request.Method,
			BaseURL: base,
		}
	default:
		msg := "request was never constructed"
		if o.Err != nil {
			msg = o.Err.Error()
		}
		return &errs.ConfigurationError{Message: msg}
	}
}

func classifyStatus(o Outcome) error {
	st := o.Response.StatusCode
	if st < http.StatusBadRequest {
		return nil
	}
	defer o.Response.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(o.Response.Body, maxErrBody))
	path := requestPath(o)

	switch {
	case st == http.StatusUnauthorized || st == http.StatusForbidden:
		return &errs.AuthError{Status: st, Path: path}
	case st == http.StatusNotFound:
		return &errs.NotFoundError{Path: path}
	case st >= http.StatusInternalServerError:
		return &errs.ServerError{Status: st, Body: string(b), Path: path}
	default:
		return &errs.HTTPError{
			Status:     st,
			StatusText: http.StatusText(st),
			Body:       string(b),
			Path:       path,
		}
	}
}

func requestPath(o Outcome) string {
	if o.Response != nil && o.Response.Request != nil {
		return o.Response.Request.URL.Path
	}
	if o.Request != nil {
		return o.Request.URL.Path
	}
	return ""
}
