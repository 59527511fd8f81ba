package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/portal-gateway/internal/api/middleware"
	"github.com/newsdesk/portal-gateway/internal/core/domain"
	"github.com/newsdesk/portal-gateway/internal/core/ports"
	redisdb "github.com/newsdesk/portal-gateway/internal/infrastructure/db/redis"
)

// AuthHandler relays the login, register, and logout flows to the backend.
// The backend answers with httpOnly credential cookies; the session
// middleware relays those to the visitor, this handler only shapes the JSON.
type AuthHandler struct {
	auth  ports.AuthAPI
	cache *redisdb.SessionCache // nil when caching is off
	log   zerolog.Logger
}

func NewAuthHandler(auth ports.AuthAPI, cache *redisdb.SessionCache, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cache: cache, log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type authResponse struct {
	User       *domain.User `json:"user"`
	RedirectTo string       `json:"redirectTo,omitempty"`
}

// Login authenticates against the backend and reports where the client
// should land next based on the user's role.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.invalidateCachedSession(c)

	resp := authResponse{User: user}
	if user != nil {
		resp.RedirectTo = user.Role.DashboardHome()
	}
	return c.JSON(http.StatusOK, resp)
}

// Register creates an account and logs the visitor in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Logout is best effort: the backend call may fail, the visitor's cached
// session is dropped regardless.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context()); err != nil {
		h.log.Debug().Err(err).Msg("backend logout failed")
	}
	h.invalidateCachedSession(c)
	return c.NoContent(http.StatusNoContent)
}

// Me reports the session the gateway resolved for this request.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, authResponse{User: middleware.CurrentUser(c)})
}

func (h *AuthHandler) invalidateCachedSession(c echo.Context) {
	if h.cache == nil {
		return
	}
	cookieHeader := c.Request().Header.Get("Cookie")
	if cookieHeader == "" {
		return
	}
	if err := h.cache.Invalidate(c.Request().Context(), redisdb.Fingerprint(cookieHeader)); err != nil {
		h.log.Warn().Err(err).Msg("session cache invalidation failed")
	}
}
