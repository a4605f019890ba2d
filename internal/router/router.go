package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/digital-notice-board/internal/handler"    // handlers that implement business logic
	"github.com/iliyamo/digital-notice-board/internal/middleware" // middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not belong to any feature
// group: the health check used by load balancers and the Prometheus
// metrics endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the authentication routes and the protected
// identity endpoint. Unauthenticated operations live under /v1/auth;
// /v1/me sits behind the access control gate. There is no logout
// route: tokens are stateless, so ending a session means the client
// discards its token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	me := e.Group("/v1/me")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.GET("", a.Me)
}

// RegisterPublic registers the unauthenticated read endpoints. The
// notice listing is deliberately open (it is the feed the polling
// clients reconcile against) and is fronted by the response cache and
// rate limiter middleware passed in (either may be a pass-through when
// Redis is unavailable).
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/v1/notices", p.ListNotices, mw...)
	e.GET("/v1/categories", p.ListCategories, mw...)
}

// RegisterAdmin registers every mutating route behind the access
// control gate with the admin role required: notice CRUD, user-role
// management and category management.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1")
	// The gate runs first: missing token -> 401, bad token -> 400.
	g.Use(middleware.JWTAuth(jwtSecret))
	// Then the role check: any valid non-admin token -> 403.
	g.Use(middleware.RequireRole("admin"))

	g.POST("/notices", a.CreateNotice)
	g.PUT("/notices/:id", a.UpdateNotice)
	g.DELETE("/notices/:id", a.DeleteNotice)

	g.GET("/users", a.ListUsers)
	g.PUT("/users/:id/role", a.UpdateUserRole)

	g.POST("/categories", a.CreateCategory)
	g.DELETE("/categories/:id", a.DeleteCategory)
}
