package service

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/fnvalidacpf/internal/cpf"
	"github.com/deppfellow/fnvalidacpf/internal/logger"
	"github.com/deppfellow/fnvalidacpf/internal/server"
)

type CPFService struct {
	server *server.Server
}

func NewCPFService(s *server.Server) *CPFService {
	return &CPFService{
		server: s,
	}
}

// Validate runs the CPF checksum on candidate.
//
// The outcome is logged at debug level and attached to the New Relic
// transaction in ctx, if any.
// The candidate itself is never recorded.
func (s *CPFService) Validate(ctx context.Context, candidate string) bool {
	valid := cpf.Validate(candidate)

	logger.FromContext(ctx).Debug().Bool("valid", valid).Msg("CPF checksum evaluated")

	if txn := newrelic.FromContext(ctx); txn != nil {
		txn.AddAttribute("cpf.valid", valid)
	}

	return valid
}
