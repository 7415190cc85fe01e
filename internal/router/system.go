package router

import (
	"net/http"

	"github.com/deppfellow/fnvalidacpf/internal/handler"
)

// systemRoutes are endpoints that are not part of the function itself.
func systemRoutes(h *handler.Handlers) []route {
	return []route{
		{method: http.MethodGet, path: "/status", handler: h.Health.CheckHealth},
	}
}
