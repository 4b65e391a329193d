package views

import (
	"context"

	"github.com/jask/tabnav/nav"
)

// AuthGuardPriority puts the auth check ahead of feature guards such as
// unsaved-changes prompts: there is no point confirming a discard when the
// destination is gated anyway.
const AuthGuardPriority = 100

// AuthGuard turns the RequiresAuth metadata into an executable guard: it
// blocks navigation into an auth-gated view while signedIn reports false.
// Unscoped, so it applies regardless of the departing view.
func AuthGuard(reg *Registry, signedIn func() bool) nav.Guard {
	return nav.Guard{
		ID:       "views.auth",
		Priority: AuthGuardPriority,
		Check: func(_ context.Context, _, to nav.ViewID) (nav.Decision, error) {
			v, ok := reg.Get(to)
			if ok && v.RequiresAuth && !signedIn() {
				return nav.Decision{Reason: "sign in to open " + v.Title}, nil
			}
			return nav.Decision{Allow: true}, nil
		},
	}
}

// StaticBadge returns a badge source that always reports n.
func StaticBadge(n int) func() int {
	return func() int { return n }
}
