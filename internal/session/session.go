// Package session holds the authentication state of the current user: an
// in-memory mirror hydrated once from durable storage, mutated only through
// named actions, torn down by Logout. It is an explicit object injected into
// its consumers, not an ambient singleton.
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/zzhang736/tripmap/internal/errs"
	"github.com/zzhang736/tripmap/internal/model"
	"github.com/zzhang736/tripmap/internal/storage"
)

// Store is the session store. Durable storage is the boot-time source of
// truth; after hydration all reads are served from memory.
type Store struct {
	mu        sync.Mutex
	durable   *storage.Durable
	transient *storage.Transient
	log       *zap.Logger

	authenticated bool
	user          *model.User
}

// New hydrates a store from durable storage. isAuthenticated is true iff a
// non-empty token is present; a malformed stored user is recovered as absent
// and never fails hydration.
func New(durable *storage.Durable, transient *storage.Transient, log *zap.Logger) *Store {
	s := &Store{durable: durable, transient: transient, log: log}
	s.hydrate()
	return s
}

func (s *Store) hydrate() {
	token, ok := s.durable.Get(storage.KeyToken)
	s.authenticated = ok && token != ""

	raw, ok := s.durable.Get(storage.KeyUser)
	if !ok {
		return
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		s.log.Warn("stored user unreadable, treating as absent",
			zap.Error(errs.ErrMalformedLocalData),
			zap.NamedError("cause", err),
		)
		return
	}
	s.user = &u
}

// SetToken persists the bearer credential. It does not flip the
// authentication flag; callers pair it with SetAuthenticated, mirroring the
// two separate writes the login flow performs.
func (s *Store) SetToken(token string) error {
	return s.durable.Set(storage.KeyToken, token)
}

// SetAuthenticated sets the in-memory flag. Turning it off also deletes the
// persisted token. The stored user is deliberately left in place here — only
// Logout removes it (observed dual-write behavior, kept under test).
func (s *Store) SetAuthenticated(status bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = status
	if !status {
		if err := s.durable.Delete(storage.KeyToken); err != nil {
			s.log.Warn("delete token", zap.Error(err))
		}
	}
}

// SetUser sets the in-memory user and persists it, independent of the
// authentication flag.
func (s *Store) SetUser(u model.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.durable.Set(storage.KeyUser, string(b)); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	return nil
}

// Logout tears the session down: flag off, user absent, token/user/favorites
// removed from durable storage, transient storage cleared. Idempotent.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.user = nil
	for _, key := range []string{storage.KeyToken, storage.KeyUser, storage.KeyFavorites} {
		if err := s.durable.Delete(key); err != nil {
			s.log.Warn("logout cleanup", zap.String("key", key), zap.Error(err))
		}
	}
	s.transient.Clear()
	s.log.Info("session cleared")
}

// IsAuthenticated reports the in-memory flag. Never re-reads durable storage.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// CurrentUser returns the in-memory user, if any.
func (s *Store) CurrentUser() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// TokenExpiry reads the stored token and reports its exp claim without
// validating the signature. Diagnostics only; tokens that are not JWTs or
// carry no expiry report false.
func (s *Store) TokenExpiry() (time.Time, bool) {
	token, ok := s.durable.Get(storage.KeyToken)
	if !ok || token == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
