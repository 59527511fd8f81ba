package middleware

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/newsdesk/portal-gateway/internal/api/metrics"
	"github.com/newsdesk/portal-gateway/internal/client/transport"
	"github.com/newsdesk/portal-gateway/internal/core/domain"
	"github.com/newsdesk/portal-gateway/internal/core/ports"
	redisdb "github.com/newsdesk/portal-gateway/internal/infrastructure/db/redis"
	"github.com/newsdesk/portal-gateway/internal/session"
)

const userContextKey = "session_user"

// accessTokenCookie is the name of the backend's credential cookie the fast
// path verifies locally.
const accessTokenCookie = "access_token"

// CurrentUser returns the session user resolved for this request, or nil
// for an anonymous visitor.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(userContextKey).(*domain.User)
	return u
}

// SessionResolver turns each visitor's cookies into a session before any
// guard or handler runs. Resolution order: cache, locally verified access
// token, then a full backend hydration with the visitor's cookies forwarded.
// By construction every downstream guard evaluates against a completed
// ("hydrated") session, so the checking state never escapes the gateway.
type SessionResolver struct {
	auth      ports.AuthAPI
	cache     *redisdb.SessionCache // nil disables caching
	jwtSecret string
	log       zerolog.Logger
}

func NewSessionResolver(auth ports.AuthAPI, cache *redisdb.SessionCache, jwtSecret string, log zerolog.Logger) *SessionResolver {
	return &SessionResolver{auth: auth, cache: cache, jwtSecret: jwtSecret, log: log}
}

// Resolve is the echo middleware entry point.
func (r *SessionResolver) Resolve() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookieHeader := c.Request().Header.Get("Cookie")

			// All backend calls made while serving this request forward the
			// visitor's cookies; cookies the backend sets on the way (a
			// refreshed credential, or login/register issuing the first
			// ones) are relayed back to the visitor. The relay runs as a
			// response Before hook so the headers land before any handler
			// commits the response. A cookieless visitor still gets the
			// recorder: login has to deliver the first credential.
			ctx, rec := transport.WithVisitor(c.Request().Context(), cookieHeader)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Before(func() {
				for _, cookie := range rec.Cookies() {
					c.SetCookie(cookie)
				}
			})

			if cookieHeader == "" {
				c.Set(userContextKey, (*domain.User)(nil))
				metrics.SessionResolutionsTotal.WithLabelValues("anonymous").Inc()
				return next(c)
			}

			fingerprint := redisdb.Fingerprint(cookieHeader)
			user, source := r.resolve(c, fingerprint)
			c.Set(userContextKey, user)
			metrics.SessionResolutionsTotal.WithLabelValues(source).Inc()
			return next(c)
		}
	}
}

func (r *SessionResolver) resolve(c echo.Context, fingerprint string) (*domain.User, string) {
	ctx := c.Request().Context()

	if r.cache != nil {
		if user, ok, err := r.cache.Get(ctx, fingerprint); err != nil {
			r.log.Warn().Err(err).Msg("session cache unavailable")
		} else if ok {
			return user, "cache"
		}
	}

	if r.jwtSecret != "" {
		if user := r.verifyAccessToken(c); user != nil {
			r.store(ctx, fingerprint, user)
			return user, "token"
		}
	}

	// Full hydration against the backend: probe, refresh once, reprobe.
	st := session.NewStore()
	session.NewHydrator(r.auth, st, r.log).Run(ctx)
	user := st.Current()
	if user != nil {
		r.store(ctx, fingerprint, user)
		return user, "backend"
	}
	return nil, "anonymous"
}

// verifyAccessToken validates the credential cookie locally and builds the
// session from its claims. Any defect falls through to backend resolution;
// an expired token is routine here, not an error.
func (r *SessionResolver) verifyAccessToken(c echo.Context) *domain.User {
	cookie, err := c.Cookie(accessTokenCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(r.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil
	}

	id, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	roleStr, _ := claims["role"].(string)
	role := domain.Role(roleStr)
	if id == "" || !role.Valid() {
		return nil
	}

	user := &domain.User{ID: id, Email: email, Role: role, IsActive: true}
	if name, ok := claims["name"].(string); ok && name != "" {
		user.Name = &name
	}
	return user
}

func (r *SessionResolver) store(ctx context.Context, fingerprint string, user *domain.User) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, fingerprint, user); err != nil {
		r.log.Warn().Err(err).Msg("session cache store failed")
	}
}
