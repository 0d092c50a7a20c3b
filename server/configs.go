package server

import (
	"os"
	"strconv"
	"time"
)

// Config contains the settings of the public HTTP server.
type Config struct {
	// Address is the listen address of the API server.
	Address string `yaml:"address" env:"SERVER_ADDRESS"`

	// APIKey is the shared secret callers must present in the X-API-Key
	// header. An empty value means auth is misconfigured; protected
	// endpoints then refuse every request.
	APIKey string `yaml:"api_key" env:"EDGE_API_KEY"`

	// ShutdownTimeout bounds how long graceful shutdown waits for in-flight
	// requests.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT_S"`
}

// NewConfig creates a server Config from environment variables with
// sensible defaults.
func NewConfig() Config {
	cfg := Config{
		Address:         ":8000",
		APIKey:          os.Getenv("EDGE_API_KEY"),
		ShutdownTimeout: 10 * time.Second,
	}

	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		cfg.Address = addr
	}
	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT_S"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ShutdownTimeout = time.Duration(n) * time.Second
		}
	}

	return cfg
}
