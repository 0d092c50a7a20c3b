package tracer

import "os"

// Config holds the tracer settings.
type Config struct {
	// ServiceName identifies this service in traces.
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`

	// AppEnv tags spans with the deployment environment (e.g. "production").
	AppEnv string `yaml:"app_env" env:"APP_ENV"`

	// EnableExport controls whether spans are shipped to an OTLP collector.
	// When false the provider is still installed so span creation stays
	// cheap and code paths do not diverge between environments.
	EnableExport bool `yaml:"enable_export" env:"TRACING_ENABLE_EXPORT"`
}

// NewConfig reads the tracer configuration from environment variables.
func NewConfig() Config {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "rag-api"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	return Config{
		ServiceName:  service,
		AppEnv:       env,
		EnableExport: os.Getenv("TRACING_ENABLE_EXPORT") == "true",
	}
}
