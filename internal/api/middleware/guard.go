package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsdesk/portal-gateway/internal/api/metrics"
	"github.com/newsdesk/portal-gateway/internal/core/domain"
	"github.com/newsdesk/portal-gateway/internal/guard"
)

// Guard enforces the route-guard decision for a subtree. The allow-list
// names the roles admitted; empty means the staff default on dashboard
// paths. Rejections are full-page redirects: anonymous (and bare USER on
// the dashboard) to login, an authenticated role outside the allow-list to
// the unauthorized page.
func Guard(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)

			// Session resolution completed upstream, so the evaluation is
			// always against a hydrated session here.
			d := guard.Evaluate(user, true, c.Request().URL.Path, allowed)
			metrics.GuardDecisionsTotal.WithLabelValues(d.State.String()).Inc()

			switch d.State {
			case guard.Allowed:
				return next(c)
			case guard.RedirectLogin, guard.RedirectUnauthorized:
				return c.Redirect(http.StatusFound, d.Target)
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "unresolved guard state")
		}
	}
}
