package metrics

import "os"

// Config holds settings for the metrics HTTP server.
type Config struct {
	// Address the /metrics server listens on, e.g. ":9090".
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// ServiceName is applied as a constant "service" label on all metrics.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// EnableDefaultCollectors registers the Go, process and build info
	// collectors in addition to the domain metrics.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_DEFAULT_COLLECTORS"`
}

// NewConfig reads the metrics configuration from environment variables.
func NewConfig() Config {
	address := os.Getenv("METRICS_ADDRESS")
	if address == "" {
		address = ":9090"
	}

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "rag-api"
	}

	return Config{
		Address:                 address,
		ServiceName:             service,
		EnableDefaultCollectors: os.Getenv("METRICS_DEFAULT_COLLECTORS") != "false",
	}
}
