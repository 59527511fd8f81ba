// Package guard decides whether a navigation target renders, redirects to
// login, or redirects to the unauthorized page. Evaluate is a pure function
// of the session, the hydration flag, the path, and the subtree's role
// allow-list, so the decision logic is testable without any HTTP machinery.
package guard

import (
	"strings"

	"github.com/newsdesk/portal-gateway/internal/core/domain"
)

// State is the outcome of a single guard evaluation. Exactly one state is
// produced per evaluation; nothing persists between evaluations.
type State int

const (
	// Checking means hydration has not completed yet and the target needs a
	// session: the caller must keep waiting, not commit to a redirect.
	Checking State = iota
	Allowed
	RedirectLogin
	RedirectUnauthorized
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Allowed:
		return "allowed"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	}
	return "unknown"
}

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
	DashboardPrefix  = "/dashboard"
)

// publicPages are exact-match paths that never need a session.
var publicPages = map[string]struct{}{
	"/":              {},
	LoginPath:        {},
	"/signup":        {},
	"/about":         {},
	"/contact":       {},
	"/terms":         {},
	"/privacy":       {},
	UnauthorizedPath: {},
}

// publicPrefixes are subtrees that never need a session.
var publicPrefixes = []string{"/articles", "/categories"}

// Public reports whether path is reachable without a session. The
// classification is a static allow-list, not a registry lookup.
func Public(path string) bool {
	if _, ok := publicPages[path]; ok {
		return true
	}
	for _, p := range publicPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Dashboard reports whether path belongs to the staff dashboard subtree.
func Dashboard(path string) bool {
	return path == DashboardPrefix || strings.HasPrefix(path, DashboardPrefix+"/")
}

// Decision carries the evaluated state plus the redirect target, when any.
type Decision struct {
	State  State
	Target string
}

// Evaluate runs the route-guard state machine for one navigation.
//
// Public paths render for anyone, even before hydration resolves. Protected
// paths block on hydration: committing to a redirect while the session is
// still unknown would bounce a user who is about to turn out authenticated.
// On the dashboard subtree a bare USER role is treated exactly like an
// anonymous visitor. An authenticated user whose role is outside the
// allow-list is sent to the unauthorized page, never to login.
func Evaluate(user *domain.User, hydrated bool, path string, allowed []domain.Role) Decision {
	if Public(path) {
		return Decision{State: Allowed}
	}

	if !hydrated {
		return Decision{State: Checking}
	}

	if Dashboard(path) {
		if user == nil || user.Role == domain.RoleUser {
			return Decision{State: RedirectLogin, Target: LoginPath}
		}
		if !roleAllowed(user.Role, allowed) {
			return Decision{State: RedirectUnauthorized, Target: UnauthorizedPath}
		}
		return Decision{State: Allowed}
	}

	// Non-dashboard protected subtree: a declared allow-list gates it, an
	// empty one means any session (or none) may pass.
	if len(allowed) == 0 {
		return Decision{State: Allowed}
	}
	if user == nil {
		return Decision{State: RedirectLogin, Target: LoginPath}
	}
	if !roleAllowed(user.Role, allowed) {
		return Decision{State: RedirectUnauthorized, Target: UnauthorizedPath}
	}
	return Decision{State: Allowed}
}

func roleAllowed(r domain.Role, allowed []domain.Role) bool {
	if len(allowed) == 0 {
		// Dashboard routes default to the staff allow-list.
		allowed = domain.StaffRoles
	}
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}
