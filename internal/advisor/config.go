package advisor

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the AI advisory adapter settings. An empty APIKey is a
// valid configuration that disables the adapter entirely.
type Config struct {
	APIKey      string  `envconfig:"API_KEY"`
	Endpoint    string  `envconfig:"ENDPOINT" default:"https://api.groq.com/openai/v1"`
	Model       string  `envconfig:"MODEL" default:"llama-3.1-8b-instant"`
	TimeoutMs   int     `envconfig:"TIMEOUT_MS" default:"15000"`
	MaxRetries  int     `envconfig:"MAX_RETRIES" default:"1"`
	Temperature float64 `envconfig:"TEMPERATURE" default:"0.7"`
	MaxTokens   int     `envconfig:"MAX_TOKENS" default:"1024"`
}

// Load reads advisor configuration from MULTIBUILD_ADVISOR_* variables.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("multibuild_advisor", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading advisor config: %w", err)
	}
	return cfg, nil
}

// Enabled reports whether an API key is present.
func (c Config) Enabled() bool {
	return c.APIKey != ""
}
