package service

import "github.com/domination/booking-client/internal/core/domain"

// Navigation targets used by guard decisions.
const (
	HomePath  = "/"
	LoginPath = "/login"
)

// Decision is the outcome of a route guard check: either the page may
// render, or the caller must navigate to RedirectTo. There is no 403 state.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// CheckRoute gates a page on the session. An empty requiredRole means the
// page only needs an authenticated session. Unauthenticated visitors are
// sent to the login route; authenticated visitors missing the role are
// silently sent home.
func CheckRoute(sess domain.Session, requiredRole string) Decision {
	if !sess.IsAuthenticated() {
		return Decision{RedirectTo: LoginPath}
	}
	if requiredRole != "" && !sess.HasRole(requiredRole) {
		return Decision{RedirectTo: HomePath}
	}
	return Decision{Allow: true}
}

// Affordance selects which dashboard entry the UI shows. Exactly one
// applies; this is presentational, not a security boundary.
type Affordance int

const (
	AffordanceNone Affordance = iota
	AffordanceProvider
	AffordanceAdmin
)

// DashboardAffordance picks the affordance with priority ADMIN > PROVIDER >
// none. A user holding both roles sees only the admin entry.
func DashboardAffordance(sess domain.Session) Affordance {
	switch {
	case sess.HasRole(domain.RoleAdmin):
		return AffordanceAdmin
	case sess.HasRole(domain.RoleProvider):
		return AffordanceProvider
	default:
		return AffordanceNone
	}
}
