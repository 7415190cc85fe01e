// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and the route table, mapping each
// (method, path) to its handler.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fnvalidacpf/internal/handler"
	"github.com/deppfellow/fnvalidacpf/internal/middleware"
	"github.com/deppfellow/fnvalidacpf/internal/server"
	"github.com/deppfellow/fnvalidacpf/internal/service"
)

// route is one entry of the route table.
type route struct {
	method      string
	path        string
	handler     echo.HandlerFunc
	middlewares []echo.MiddlewareFunc
}

// NewRouter builds the Echo instance: global middleware in order, the error
// handler, then every route of the table. It is called once at process start.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: request id before the context logger, New Relic
	// transaction before anything that reads it, Recover innermost.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Global.BodyLimit(),
		middlewares.Global.Recover(),
	)

	routes := append(systemRoutes(h), functionRoutes(s, h, middlewares)...)
	for _, r := range routes {
		router.Add(r.method, r.path, r.handler, r.middlewares...)
	}

	return router
}

// New wires services, handlers and the router for an already built server.
func New(s *server.Server) *echo.Echo {
	services := service.NewServices(s)
	handlers := handler.NewHandlers(s, services)

	return NewRouter(s, handlers)
}
