package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/newsdesk/portal-gateway/internal/api/handler"
	"github.com/newsdesk/portal-gateway/internal/api/middleware"
	"github.com/newsdesk/portal-gateway/internal/client"
	"github.com/newsdesk/portal-gateway/internal/core/domain"
	redisdb "github.com/newsdesk/portal-gateway/internal/infrastructure/db/redis"
)

// Deps bundles everything the router needs.
type Deps struct {
	Backend      *client.Client
	Redis        *redis.Client // nil disables the session cache
	SessionCache *redisdb.SessionCache
	JWTSecret    string
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	resolver := middleware.NewSessionResolver(deps.Backend, deps.SessionCache, deps.JWTSecret, deps.Logger)
	e.Use(resolver.Resolve())

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Backend, deps.SessionCache, deps.Logger)
	contentHandler := handler.NewContentHandler(deps.Backend)
	interactions := handler.NewInteractionHandler(deps.Backend, deps.Backend, deps.Logger)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me)

	// --- Public pages ---
	e.GET("/", handler.Page("home"))
	e.GET("/login", handler.Page("login"))
	e.GET("/signup", handler.Page("signup"))
	e.GET("/about", handler.Page("about"))
	e.GET("/contact", handler.Page("contact"))
	e.GET("/terms", handler.Page("terms"))
	e.GET("/privacy", handler.Page("privacy"))
	e.GET("/unauthorized", handler.Page("unauthorized"))

	// --- Content (public) ---
	e.GET("/articles", contentHandler.Articles)
	e.GET("/articles/:slug", contentHandler.ArticleBySlug)
	e.GET("/categories", contentHandler.Categories)
	e.GET("/categories/:slug", contentHandler.CategoryBySlug)

	// --- Interactions ---
	e.GET("/comments/:articleId", interactions.Comments)
	e.POST("/comments", interactions.CreateComment)
	e.PUT("/comments/:id", interactions.UpdateComment)
	e.DELETE("/comments/:id", interactions.DeleteComment)
	e.POST("/bookmarks/toggle", interactions.ToggleBookmark)

	// --- Staff dashboard (role gated) ---
	dash := e.Group("/dashboard", middleware.Guard(domain.StaffRoles...))
	dash.GET("", handler.Page("dashboard"))

	admin := e.Group("/dashboard/admin", middleware.Guard(domain.RoleAdmin))
	admin.GET("", handler.Page("dashboard/admin"))
	admin.GET("/categories", handler.Page("dashboard/admin/categories"))
	admin.GET("/users", handler.Page("dashboard/admin/users"))

	editor := e.Group("/dashboard/editor", middleware.Guard(domain.RoleAdmin, domain.RoleEditor))
	editor.GET("", handler.Page("dashboard/editor"))
	editor.GET("/articles", handler.Page("dashboard/editor/articles"))

	reporter := e.Group("/dashboard/reporter", middleware.Guard(domain.RoleAdmin, domain.RoleReporter))
	reporter.GET("", handler.Page("dashboard/reporter"))
	reporter.GET("/articles", handler.Page("dashboard/reporter/articles"))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Backend, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
