package service

import (
	"context"

	"github.com/zzhang736/tripmap/internal/gateway"
	"github.com/zzhang736/tripmap/internal/model"
	"github.com/zzhang736/tripmap/internal/session"
)

// AuthService wraps the account endpoints and keeps the session store in
// step with their outcomes.
type AuthService struct {
	gw      *gateway.Client
	session *session.Store
}

// NewAuthService constructs an AuthService.
func NewAuthService(gw *gateway.Client, sess *session.Store) *AuthService {
	return &AuthService{gw: gw, session: sess}
}

// Register creates an account. The session is not touched; callers log in
// separately.
func (a *AuthService) Register(ctx context.Context, username, email, password string) (model.User, error) {
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Username: username, Email: email, Password: password}

	var out struct {
		User struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := a.gw.Post(ctx, "/register/", body, &out); err != nil {
		return model.User{}, err
	}
	return model.User{Username: out.User.Username}, nil
}

// Login authenticates against the backend. On success it persists the issued
// token (when the server sends one), flips the session flag, and records the
// user — the same three writes the login screen performs.
func (a *AuthService) Login(ctx context.Context, username, password string) error {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var out struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	if err := a.gw.Post(ctx, "/login/", body, &out); err != nil {
		return err
	}

	if out.Token != "" {
		if err := a.session.SetToken(out.Token); err != nil {
			return err
		}
	}
	a.session.SetAuthenticated(true)
	return a.session.SetUser(model.User{Username: username})
}

// Logout tears the session down locally. The backend keeps no client session
// state to invalidate.
func (a *AuthService) Logout() {
	a.session.Logout()
}
