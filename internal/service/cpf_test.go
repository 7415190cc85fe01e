package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/fnvalidacpf/internal/config"
	"github.com/deppfellow/fnvalidacpf/internal/server"
)

func TestCPFService_Validate(t *testing.T) {
	logger := zerolog.Nop()
	s, err := server.New(config.DefaultConfig(), &logger, nil)
	require.NoError(t, err)

	services := NewServices(s)

	assert.True(t, services.CPF.Validate(context.Background(), "111.444.777-35"))
	assert.False(t, services.CPF.Validate(context.Background(), "111.444.777-36"))
	assert.False(t, services.CPF.Validate(context.Background(), ""))
}
