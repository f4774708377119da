// Package gateway is the single outbound HTTP boundary of the client. It owns
// the base address, default headers and request timeout, runs every request
// through an ordered middleware pipeline, and folds every failure into the
// errs taxonomy exactly once, at this boundary.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zzhang736/tripmap/internal/errs"
	"github.com/zzhang736/tripmap/internal/storage"
)

// TokenSource yields the current bearer credential, if any. The gateway is
// the only reader of the durable token key; the session store is its only
// writer.
type TokenSource func() (string, bool)

// DurableToken reads the token straight from durable storage.
func DurableToken(d *storage.Durable) TokenSource {
	return func() (string, bool) { return d.Get(storage.KeyToken) }
}

// RequestMiddleware transforms an outbound request before dispatch. A
// returned error aborts the attempt; the failure classifies as "never sent".
type RequestMiddleware func(*http.Request) (*http.Request, error)

// OutcomeMiddleware observes or transforms the tagged result of one attempt
// after it completes, before classification.
type OutcomeMiddleware func(Outcome) Outcome

// Client is the configured HTTP client all backend calls flow through.
type Client struct {
	base  *url.URL
	http  *http.Client
	log   *zap.Logger
	reqMW []RequestMiddleware
	outMW []OutcomeMiddleware
}

// New builds a gateway for the given base URL (origin plus API base path).
// The timeout bounds each request end to end; expiry surfaces as a
// connectivity failure.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &errs.ConfigurationError{Message: fmt.Sprintf("invalid base url %q", baseURL)}
	}
	c := &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
	c.reqMW = []RequestMiddleware{DefaultHeaders, Bearer(tokens), RequestID}
	c.outMW = []OutcomeMiddleware{LogOutcome(log)}
	return c, nil
}

// UseRequest appends a request middleware; middlewares run in registration
// order.
func (c *Client) UseRequest(mw RequestMiddleware) { c.reqMW = append(c.reqMW, mw) }

// UseOutcome appends an outcome middleware.
func (c *Client) UseOutcome(mw OutcomeMiddleware) { c.outMW = append(c.outMW, mw) }

// Get issues a GET and decodes the JSON response into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	o := Outcome{Start: time.Now()}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err == nil {
		for _, mw := range c.reqMW {
			if req, err = mw(req); err != nil {
				req = nil
				break
			}
		}
	}
	if err != nil {
		o.Err = err
	} else {
		o.Request = req
		o.Response, o.Err = c.http.Do(req)
	}

	for _, mw := range c.outMW {
		o = mw(o)
	}
	if cerr := Classify(o); cerr != nil {
		return cerr
	}

	defer o.Response.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, o.Response.Body)
		return nil
	}
	if err := json.NewDecoder(o.Response.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

// newRequest resolves path against the base and encodes the body. Failures
// here are local configuration problems; no request leaves the process.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	return http.NewRequestWithContext(ctx, method, u.String(), rd)
}
