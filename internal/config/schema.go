package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackzampolin/cardscan/internal/card"
)

// Config holds cardscan configuration.
// It is loaded once at process start and never mutated afterwards.
type Config struct {
	OpenAI    OpenAICfg    `mapstructure:"openai" yaml:"openai"`
	Server    ServerCfg    `mapstructure:"server" yaml:"server"`
	Extractor ExtractorCfg `mapstructure:"extractor" yaml:"extractor"`
}

// OpenAICfg configures the inference client.
type OpenAICfg struct {
	APIKey         string `mapstructure:"api_key" yaml:"api_key"`                 // API key (supports ${ENV_VAR} syntax)
	Model          string `mapstructure:"model" yaml:"model"`                     // Vision model name
	BaseURL        string `mapstructure:"base_url" yaml:"base_url"`               // Optional API base URL
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // 0 = no timeout
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host        string `mapstructure:"host" yaml:"host"`
	Port        string `mapstructure:"port" yaml:"port"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

// ExtractorCfg configures the response extractor.
type ExtractorCfg struct {
	// Strategy is "greedy" (first '{' to last '}') or "balanced".
	Strategy string `mapstructure:"strategy" yaml:"strategy"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OpenAI: OpenAICfg{
			APIKey:         "${OPENAI_API_KEY}",
			Model:          "gpt-4o",
			TimeoutSeconds: 0,
		},
		Server: ServerCfg{
			Host:        "127.0.0.1",
			Port:        "8080",
			MaxUploadMB: 10,
		},
		Extractor: ExtractorCfg{
			Strategy: string(card.StrategyGreedy),
		},
	}
}

// ResolvedAPIKey returns the API key with ${ENV_VAR} references expanded.
func (c *Config) ResolvedAPIKey() string {
	return strings.TrimSpace(ResolveEnvVars(c.OpenAI.APIKey))
}

// Timeout returns the inference HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.OpenAI.TimeoutSeconds) * time.Second
}

// MaxUploadBytes returns the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// Strategy returns the parsed extractor strategy.
func (c *Config) Strategy() (card.Strategy, error) {
	return card.ParseStrategy(c.Extractor.Strategy)
}

// Validate checks values that would otherwise fail later at runtime.
// A missing API key is not an error here: offline commands don't need one.
func (c *Config) Validate() error {
	if _, err := c.Strategy(); err != nil {
		return fmt.Errorf("extractor.strategy: %w", err)
	}
	if c.OpenAI.TimeoutSeconds < 0 {
		return fmt.Errorf("openai.timeout_seconds must not be negative")
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive")
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("server.port is required")
	}
	return nil
}
