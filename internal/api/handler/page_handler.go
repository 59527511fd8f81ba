package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/newsdesk/portal-gateway/internal/api/middleware"
)

// Page returns a handler serving the shell payload for a named page: the
// page identity plus the resolved session, which is everything the client
// needs to render its chrome. Guards have already run by the time this
// executes, so reaching it means the visitor may see the page.
func Page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"page": name,
			"user": middleware.CurrentUser(c),
		})
	}
}
