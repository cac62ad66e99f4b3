// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the replyglot server. Values come
// from environment variables; a .env file in the working directory is
// applied first when present.
type Config struct {
	// OpenAIAPIKey is the credential passed to every chat-completions call.
	// Requests are rejected with a fixed user-facing message when empty.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	// OpenAIBaseURL points at an OpenAI-compatible API.
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	// Model is the model identifier used for classification and translation.
	Model string `env:"REPLYGLOT_MODEL" envDefault:"gpt-4o-mini"`
	// Port is the HTTP listen port.
	Port int `env:"REPLYGLOT_PORT" envDefault:"8080"`
	// LogLevel is one of: debug, info, warn, error.
	LogLevel string `env:"REPLYGLOT_LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
