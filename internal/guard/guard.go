// Package guard enforces auth-based access control over route transitions.
// Evaluate is a pure decision function: it mutates nothing and consults only
// the target route's metadata and the session flag handed to it.
package guard

import "net/url"

// Well-known destinations.
const (
	HomePath     = "/"
	LoginPath    = "/login"
	RegisterPath = "/register"
)

// Route is the metadata the routing collaborator attaches to each entry.
// A missing RequiresAuth flag means public.
type Route struct {
	Path         string
	Name         string
	RequiresAuth bool
}

// Decision is the outcome of one navigation attempt: either the transition
// proceeds unmodified, or the caller must navigate to RedirectTo instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Evaluate decides one navigation attempt. fullPath is the originally
// requested path including query, carried into the login redirect so the user
// can be returned after authenticating; when empty, the target's path is
// used. Precedence is strict: the auth gate is checked before the
// entry-screen redirect, and the two conditions cannot both hold.
func Evaluate(target Route, fullPath string, authenticated bool) Decision {
	if fullPath == "" {
		fullPath = target.Path
	}
	switch {
	case target.RequiresAuth && !authenticated:
		q := url.Values{"redirect": []string{fullPath}}
		return Decision{RedirectTo: LoginPath + "?" + q.Encode()}
	case authenticated && (target.Path == LoginPath || target.Path == RegisterPath):
		return Decision{RedirectTo: HomePath}
	default:
		return Decision{Allow: true}
	}
}
