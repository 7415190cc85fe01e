// Package service contains the business logic.
//
// It sits between the handler layer and the domain packages. It receives
// validated data from the handler and performs the business operation.
package service

import (
	"github.com/deppfellow/fnvalidacpf/internal/server"
)

// Services groups every business service so router wiring passes a single value.
type Services struct {
	CPF *CPFService
}

// NewServices builds all services.
func NewServices(s *server.Server) *Services {
	return &Services{
		CPF: NewCPFService(s),
	}
}
