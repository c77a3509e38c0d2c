package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for environment overrides, e.g. CARDSCAN_OPENAI_MODEL.
const EnvPrefix = "CARDSCAN"

// ErrMissingAPIKey is returned when a command needs the inference service but
// no API key is configured.
var ErrMissingAPIKey = errors.New("openai.api_key is not set (export OPENAI_API_KEY or add it to .env)")

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// LoadEnvFiles loads KEY=value pairs into the process environment.
// Missing files are skipped; existing variables are never overwritten.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat %s: %w", p, err)
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from defaults, the config file, and CARDSCAN_*
// environment variables, in increasing precedence.
// An empty cfgFile searches ./config.yaml and $HOME/.cardscan/config.yaml; a
// missing file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("openai.api_key", defaults.OpenAI.APIKey)
	v.SetDefault("openai.model", defaults.OpenAI.Model)
	v.SetDefault("openai.base_url", defaults.OpenAI.BaseURL)
	v.SetDefault("openai.timeout_seconds", defaults.OpenAI.TimeoutSeconds)
	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.max_upload_mb", defaults.Server.MaxUploadMB)
	v.SetDefault("extractor.strategy", defaults.Extractor.Strategy)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.cardscan")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	return envVarPattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# cardscan configuration
# API keys use ${ENV_VAR} syntax to reference environment variables.
# Set OPENAI_API_KEY in your shell or in a .env file next to the binary.
# Any key can be overridden with CARDSCAN_<SECTION>_<KEY>, e.g. CARDSCAN_OPENAI_MODEL.

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
