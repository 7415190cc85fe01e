package handler

import (
	"github.com/deppfellow/fnvalidacpf/internal/server"
	"github.com/deppfellow/fnvalidacpf/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one value around.
type Handlers struct {
	CPF    *CPFHandler
	Health *HealthHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		CPF:    NewCPFHandler(s, services.CPF),
		Health: NewHealthHandler(s),
	}
}
