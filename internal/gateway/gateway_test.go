package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zzhang736/tripmap/internal/errs"
	"github.com/zzhang736/tripmap/internal/storage"
)

func newTestClient(t *testing.T, h http.HandlerFunc, tokens TokenSource) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api/tourism", 2*time.Second, tokens, zap.NewNop())
	require.NoError(t, err)
	return c, srv
}

func TestStatusClassification(t *testing.T) {
	t.Parallel()

	statuses := map[string]int{
		"/auth":      http.StatusUnauthorized,
		"/forbidden": http.StatusForbidden,
		"/missing":   http.StatusNotFound,
		"/boom":      http.StatusInternalServerError,
		"/teapot":    http.StatusTeapot,
		"/ok":        http.StatusOK,
	}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statuses[r.URL.Path[len("/api/tourism"):]])
		_, _ = w.Write([]byte(`{}`))
	}, nil)

	ctx := context.Background()

	var authErr *errs.AuthError
	err := c.Get(ctx, "/auth", nil, nil)
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Equal(t, "/api/tourism/auth", authErr.Path)

	err = c.Get(ctx, "/forbidden", nil, nil)
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusForbidden, authErr.Status)

	var nfErr *errs.NotFoundError
	err = c.Get(ctx, "/missing", nil, nil)
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "/api/tourism/missing", nfErr.Path)

	var srvErr *errs.ServerError
	err = c.Get(ctx, "/boom", nil, nil)
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusInternalServerError, srvErr.Status)
	assert.Equal(t, "{}", srvErr.Body)

	var httpErr *errs.HTTPError
	err = c.Get(ctx, "/teapot", nil, nil)
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTeapot, httpErr.Status)
	assert.NotEmpty(t, httpErr.StatusText)

	require.NoError(t, c.Get(ctx, "/ok", nil, nil))
}

func TestBearerAttachment(t *testing.T) {
	t.Parallel()

	var got string
	handler := func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}

	t.Run("token present", func(t *testing.T) {
		c, _ := newTestClient(t, handler, func() (string, bool) { return "tok-123", true })
		require.NoError(t, c.Get(context.Background(), "/x", nil, nil))
		assert.Equal(t, "Bearer tok-123", got)
	})

	t.Run("token absent proceeds unauthenticated", func(t *testing.T) {
		c, _ := newTestClient(t, handler, func() (string, bool) { return "", false })
		require.NoError(t, c.Get(context.Background(), "/x", nil, nil))
		assert.Empty(t, got)
	})
}

func TestRequestDefaults(t *testing.T) {
	t.Parallel()

	var hdr http.Header
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hdr = r.Header.Clone()
		_, _ = w.Write([]byte(`{}`))
	}, nil)

	require.NoError(t, c.Get(context.Background(), "/x", nil, nil))
	assert.Equal(t, "application/json", hdr.Get("Content-Type"))
	assert.Equal(t, "application/json", hdr.Get("Accept"))
	assert.NotEmpty(t, hdr.Get("X-Request-ID"))
}

func TestConnectivityFailure(t *testing.T) {
	t.Parallel()

	// Nothing listens here; dialing fails after the request is dispatched.
	c, err := New("http://127.0.0.1:1/api/tourism", 500*time.Millisecond, nil, zap.NewNop())
	require.NoError(t, err)

	err = c.Get(context.Background(), "/scenic_spots/", nil, nil)
	var connErr *errs.ConnectivityError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "/api/tourism/scenic_spots/", connErr.Path)
	assert.Equal(t, http.MethodGet, connErr.Method)
	assert.Equal(t, "http://127.0.0.1:1", connErr.BaseURL)
}

func TestConfigurationFailures(t *testing.T) {
	t.Parallel()

	var cfgErr *errs.ConfigurationError

	_, err := New("not a url", time.Second, nil, zap.NewNop())
	require.ErrorAs(t, err, &cfgErr)

	_, err = New("/api/tourism", time.Second, nil, zap.NewNop())
	require.ErrorAs(t, err, &cfgErr, "base url without origin must be rejected")

	// A body JSON cannot encode never leaves the process.
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be dispatched")
	}, nil)
	err = c.Post(context.Background(), "/x", make(chan int), nil)
	require.ErrorAs(t, err, &cfgErr)
}

// Classification must be total and mutually exclusive over the three outcome
// shapes, verified on synthetic outcomes independent of any transport.
func TestClassifyTotality(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://backend/api/tourism/x", nil)

	mkResp := func(status int) *http.Response {
		rec := httptest.NewRecorder()
		rec.WriteHeader(status)
		resp := rec.Result()
		resp.Request = req
		return resp
	}

	cases := []struct {
		name string
		o    Outcome
		want any
	}{
		{"responded 500", Outcome{Response: mkResp(500), Request: req}, new(*errs.ServerError)},
		{"responded 401", Outcome{Response: mkResp(401)}, new(*errs.AuthError)},
		{"responded 404", Outcome{Response: mkResp(404)}, new(*errs.NotFoundError)},
		{"responded 400", Outcome{Response: mkResp(400)}, new(*errs.HTTPError)},
		{"sent, no response", Outcome{Request: req, Err: errors.New("dial refused")}, new(*errs.ConnectivityError)},
		{"never sent", Outcome{Err: errors.New("bad config")}, new(*errs.ConfigurationError)},
		{"empty outcome", Outcome{}, new(*errs.ConfigurationError)},
	}

	targets := func() []any {
		return []any{
			new(*errs.ServerError), new(*errs.AuthError), new(*errs.NotFoundError),
			new(*errs.HTTPError), new(*errs.ConnectivityError), new(*errs.ConfigurationError),
		}
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Classify(tc.o)
			require.Error(t, err)

			matched := 0
			for _, target := range targets() {
				if errors.As(err, target) {
					matched++
				}
			}
			assert.Equal(t, 1, matched, "failure must land in exactly one bucket")
			assert.ErrorAs(t, err, tc.want)
		})
	}

	assert.NoError(t, Classify(Outcome{Response: mkResp(200)}), "2xx classifies as success")
}

func TestDecodeIntoCaller(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"hi"}`))
	}, nil)

	var out struct {
		Message string `json:"message"`
	}
	require.NoError(t, c.Get(context.Background(), "/x", url.Values{"a": {"b"}}, &out))
	assert.Equal(t, "hi", out.Message)
}

func TestDurableToken(t *testing.T) {
	t.Parallel()

	d := storage.NewDurable(t.TempDir())
	ts := DurableToken(d)

	_, ok := ts()
	assert.False(t, ok)

	require.NoError(t, d.Set(storage.KeyToken, "tok"))
	tok, ok := ts()
	assert.True(t, ok)
	assert.Equal(t, "tok", tok)
}
