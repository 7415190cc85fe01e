package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/deppfellow/fnvalidacpf/internal/errs"
	"github.com/deppfellow/fnvalidacpf/internal/server"
)

// RateLimitMiddleware enforces a per-client request budget.
//
// Clients are identified by their real IP. The budget is kept in Redis when
// the server has a Redis client (shared between instances) and in process
// memory otherwise.
type RateLimitMiddleware struct {
	server *server.Server
	store  middleware.RateLimiterStore
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	cfg := s.Config.RateLimit

	var store middleware.RateLimiterStore
	if s.Redis != nil {
		store = NewRedisRateLimiterStore(s.Redis, cfg, s.Logger)
	} else {
		store = middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RPS),
			Burst:     cfg.Burst,
			ExpiresIn: cfg.ExpiresIn,
		})
	}

	return &RateLimitMiddleware{
		server: s,
		store:  store,
	}
}

// Limit returns the rate limiting middleware, or a pass-through when
// rate_limit.enabled is false.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	if !r.server.Config.RateLimit.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: r.store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			GetLogger(c).Warn().
				Str("identifier", identifier).
				Msg("rate limit exceeded")

			r.RecordRateLimitHit(c.Path())

			return errs.NewTooManyRequestsError("Too many requests")
		},
	})
}

// RecordRateLimitHit records a RateLimitHit custom event on New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
