package gateway

import (
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// DefaultHeaders sets the JSON content-negotiation headers on every request.
func DefaultHeaders(req *http.Request) (*http.Request, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// Bearer attaches the stored credential as an Authorization header. A missing
// token is not an error: the request proceeds unauthenticated.
func Bearer(tokens TokenSource) RequestMiddleware {
	return func(req *http.Request) (*http.Request, error) {
		if tokens != nil {
			if tok, ok := tokens(); ok && tok != "" {
				req.Header.Set("Authorization", "Bearer "+tok)
			}
		}
		return req, nil
	}
}

// RequestID tags each outbound request for log correlation.
func RequestID(req *http.Request) (*http.Request, error) {
	if id, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-ID", id.String())
	}
	return req, nil
}

// LogOutcome records one line per completed attempt. Metadata only, no
// payloads.
func LogOutcome(log *zap.Logger) OutcomeMiddleware {
	return func(o Outcome) Outcome {
		dur := zap.Duration("dur", time.Since(o.Start))
		switch {
		case o.Response != nil:
			req := o.Response.Request
			log.Info("http",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", o.Response.StatusCode),
				zap.String("request_id", req.Header.Get("X-Request-ID")),
				dur,
			)
		case o.Request != nil:
			log.Error("http no response",
				zap.String("method", o.Request.Method),
				zap.String("path", o.Request.URL.Path),
				zap.Error(o.Err),
				dur,
			)
		default:
			log.Error("http not sent", zap.Error(o.Err), dur)
		}
		return o
	}
}
