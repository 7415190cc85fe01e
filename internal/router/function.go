package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fnvalidacpf/internal/handler"
	"github.com/deppfellow/fnvalidacpf/internal/middleware"
	"github.com/deppfellow/fnvalidacpf/internal/server"
)

// functionRoutes exposes the CPF validation function at function.route.
func functionRoutes(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) []route {
	return []route{
		{
			method:      http.MethodPost,
			path:        s.Config.Function.Route,
			handler:     handler.HandleText(h.CPF.Handler, h.CPF.ValidateCPF, http.StatusOK, handler.NewValidateCPFRequest),
			middlewares: []echo.MiddlewareFunc{m.RateLimit.Limit()},
		},
	}
}
