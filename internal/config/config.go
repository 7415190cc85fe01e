// Package config manages environment variables.
//
// It reads variables (optionally from a `.env` file), loads them into
// structured Go types on top of sane defaults, and validates the result so
// the process fails fast on bad configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of every environment variable read by LoadConfig.
	EnvPrefix = "CPFVALIDATOR_"

	// CustomHandlerPortEnv is set by the Azure Functions host when the binary
	// runs as a custom handler. It wins over server.port.
	CustomHandlerPortEnv = "FUNCTIONS_CUSTOMHANDLER_PORT"

	serviceName = "fnvalidacpf"
)

/*
	Keys are normalized by the env provider callback:
	  - the CPFVALIDATOR_ prefix is removed
	  - the rest is lowercased
	  - a double underscore marks nesting
	e.g. CPFVALIDATOR_SERVER__READ_TIMEOUT -> server.read_timeout -> Config.Server.ReadTimeout
*/

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Function      FunctionConfig       `koanf:"function" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// FunctionConfig describes where the CPF validation function is exposed.
type FunctionConfig struct {
	Route string `koanf:"route" validate:"required,startswith=/"`
}

// RateLimitConfig controls per-client request limiting on the function route.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps" validate:"gte=0"`
	Burst   int     `koanf:"burst" validate:"gte=0"`

	// ExpiresIn drops idle per-client limiters (memory store).
	ExpiresIn time.Duration `koanf:"expires_in"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port". Empty means Redis is not used.
type RedisConfig struct {
	Address string `koanf:"address" validate:"omitempty,hostname_port"`
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// DefaultConfig returns the configuration used when no env var overrides a value.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Function: FunctionConfig{Route: "/api/fnvalidacpf"},
		RateLimit: RateLimitConfig{
			Enabled:   true,
			RPS:       20,
			Burst:     40,
			ExpiresIn: 3 * time.Minute,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables on top of
// DefaultConfig, validates it and fills in observability defaults.
//
// Behavior summary:
//   - Loads env vars with prefix CPFVALIDATOR_
//   - Unmarshals into Config (defaults survive for keys that are not set)
//   - Applies FUNCTIONS_CUSTOMHANDLER_PORT when running under Azure Functions
//   - Validates struct tags, then observability rules
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()

	// Unmarshal from the root. mapstructure leaves fields alone when their
	// key is absent, so defaults set above are kept.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if port := os.Getenv(CustomHandlerPortEnv); port != "" {
		mainConfig.Server.Port = port
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is not configurable; environment always follows primary.env.
	mainConfig.Observability.ServiceName = serviceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks struct tags recursively and then the observability rules
// that tags cannot express.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("rate_limit requires rps > 0 and burst >= 1 when enabled")
	}

	if c.RateLimit.ExpiresIn < 0 {
		return fmt.Errorf("rate_limit expires_in must be non-negative")
	}

	if c.Observability == nil {
		return fmt.Errorf("observability config is missing")
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}
