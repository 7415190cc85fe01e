// Package handler is the serverless entry point. Platforms that invoke an
// exported http.HandlerFunc (one process per cold start) call Handler.
package handler

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fnvalidacpf/internal/config"
	"github.com/deppfellow/fnvalidacpf/internal/logger"
	"github.com/deppfellow/fnvalidacpf/internal/router"
	"github.com/deppfellow/fnvalidacpf/internal/server"
)

var (
	initOnce sync.Once
	initErr  error
	cached   *echo.Echo
)

// setup builds config, logger, server and router once per cold start.
func setup() {
	cfg, err := config.LoadConfig()
	if err != nil {
		initErr = err
		return
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		initErr = err
		return
	}

	cached = router.New(srv)
}

// Handler is the serverless entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(setup)

	if initErr != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cached.ServeHTTP(w, r)
}
