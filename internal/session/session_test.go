package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/zzhang736/tripmap/internal/model"
	"github.com/zzhang736/tripmap/internal/storage"
)

func newStore(t *testing.T) (*Store, *storage.Durable, *storage.Transient) {
	t.Helper()
	d := storage.NewDurable(t.TempDir())
	tr := storage.NewTransient()
	return New(d, tr, zap.NewNop()), d, tr
}

func TestHydrate_TruthTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		token     string // "" = absent
		user      string // "" = absent
		wantAuth  bool
		wantUser  bool
		wantUname string
	}{
		{name: "empty storage"},
		{name: "token only", token: "tok", wantAuth: true},
		{name: "user only", user: `{"username":"alice"}`, wantUser: true, wantUname: "alice"},
		{name: "token and user", token: "tok", user: `{"username":"bob"}`, wantAuth: true, wantUser: true, wantUname: "bob"},
		{name: "malformed user recovers as absent", token: "tok", user: `{"username":`, wantAuth: true},
		{name: "empty token means unauthenticated", token: "", user: `{"username":"eve"}`, wantUser: true, wantUname: "eve"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := storage.NewDurable(t.TempDir())
			if tc.token != "" {
				if err := d.Set(storage.KeyToken, tc.token); err != nil {
					t.Fatalf("seed token: %v", err)
				}
			}
			if tc.user != "" {
				if err := d.Set(storage.KeyUser, tc.user); err != nil {
					t.Fatalf("seed user: %v", err)
				}
			}

			s := New(d, storage.NewTransient(), zap.NewNop())
			if got := s.IsAuthenticated(); got != tc.wantAuth {
				t.Fatalf("IsAuthenticated = %v, want %v", got, tc.wantAuth)
			}
			u, ok := s.CurrentUser()
			if ok != tc.wantUser {
				t.Fatalf("CurrentUser present = %v, want %v", ok, tc.wantUser)
			}
			if ok && u.Username != tc.wantUname {
				t.Fatalf("username = %q, want %q", u.Username, tc.wantUname)
			}
		})
	}
}

func TestSetUser_Rehydrates(t *testing.T) {
	t.Parallel()
	d := storage.NewDurable(t.TempDir())
	s := New(d, storage.NewTransient(), zap.NewNop())

	want := model.User{Username: "alice"}
	if err := s.SetUser(want); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	// A fresh store over the same durable storage must yield an equal user.
	s2 := New(d, storage.NewTransient(), zap.NewNop())
	got, ok := s2.CurrentUser()
	if !ok || got != want {
		t.Fatalf("rehydrated user = %+v, %v; want %+v", got, ok, want)
	}
}

func TestSetAuthenticatedFalse_KeepsUser(t *testing.T) {
	t.Parallel()
	s, d, _ := newStore(t)
	if err := s.SetToken("tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	s.SetAuthenticated(true)
	if err := s.SetUser(model.User{Username: "alice"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	s.SetAuthenticated(false)

	if _, ok := d.Get(storage.KeyToken); ok {
		t.Fatalf("token must be deleted")
	}
	// The stored user survives; only Logout removes it.
	if _, ok := d.Get(storage.KeyUser); !ok {
		t.Fatalf("user must survive SetAuthenticated(false)")
	}
	if _, ok := s.CurrentUser(); !ok {
		t.Fatalf("in-memory user must survive SetAuthenticated(false)")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	t.Parallel()
	s, d, tr := newStore(t)
	if err := s.SetToken("tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	s.SetAuthenticated(true)
	if err := s.SetUser(model.User{Username: "alice"}); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	if err := d.Set(storage.KeyFavorites, `["1","3"]`); err != nil {
		t.Fatalf("seed favorites: %v", err)
	}
	tr.Set("draft-search", "panda")

	s.Logout()
	s.Logout() // second call must change nothing

	if s.IsAuthenticated() {
		t.Fatalf("still authenticated after logout")
	}
	if _, ok := s.CurrentUser(); ok {
		t.Fatalf("user present after logout")
	}
	for _, key := range []string{storage.KeyToken, storage.KeyUser, storage.KeyFavorites} {
		if _, ok := d.Get(key); ok {
			t.Fatalf("durable key %q present after logout", key)
		}
	}
	if tr.Len() != 0 {
		t.Fatalf("transient storage not cleared")
	}
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()
	s, _, _ := newStore(t)

	if _, ok := s.TokenExpiry(); ok {
		t.Fatalf("no token must report no expiry")
	}

	if err := s.SetToken("not-a-jwt"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if _, ok := s.TokenExpiry(); ok {
		t.Fatalf("opaque token must report no expiry")
	}

	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := s.SetToken(signed); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	got, ok := s.TokenExpiry()
	if !ok || !got.Equal(exp) {
		t.Fatalf("TokenExpiry = %v, %v; want %v", got, ok, exp)
	}
}
