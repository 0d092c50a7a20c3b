package generation

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// BaseURL of the Ollama server, e.g. "http://localhost:11434".
	BaseURL string `yaml:"base_url" env:"OLLAMA_BASE_URL"`

	// Model identifier passed on every generate call.
	Model string `yaml:"model" env:"OLLAMA_MODEL"`

	// NumPredict is the hard cap on generated tokens.
	NumPredict int `yaml:"num_predict" env:"OLLAMA_NUM_PREDICT"`

	// Temperature biases generation; low values keep answers concise.
	Temperature float64 `yaml:"temperature" env:"OLLAMA_TEMPERATURE"`

	// HTTPTimeoutS bounds a single generate call at the transport level.
	// Per-request context deadlines still apply on top of this.
	HTTPTimeoutS int `yaml:"http_timeout_s" env:"OLLAMA_HTTP_TIMEOUT_SECONDS"`
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "llama3.2:1b"
	}

	numPredict := 80
	if v := os.Getenv("OLLAMA_NUM_PREDICT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			numPredict = n
		}
	}

	temperature := 0.2
	if v := os.Getenv("OLLAMA_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			temperature = f
		}
	}

	timeout := 120
	if v := os.Getenv("OLLAMA_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}

	return &Config{
		BaseURL:      baseURL,
		Model:        model,
		NumPredict:   numPredict,
		Temperature:  temperature,
		HTTPTimeoutS: timeout,
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("generation: missing OLLAMA_BASE_URL")
	}
	if c.Model == "" {
		return fmt.Errorf("generation: missing OLLAMA_MODEL")
	}
	return nil
}
