package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/cardscan/internal/api"
	"github.com/jackzampolin/cardscan/internal/config"
	"github.com/jackzampolin/cardscan/internal/home"
	"github.com/jackzampolin/cardscan/internal/providers"
	"github.com/jackzampolin/cardscan/internal/scanner"
	"github.com/jackzampolin/cardscan/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "cardscan",
	Short: "Extract contact details from business card images with a vision model",
	Long: `cardscan reads a photo of a business card, asks a multimodal model to
transcribe it, and returns ten fixed contact fields:

  First Name, Last Name, Designation, Company Name, Email, Contact Number,
  Fax Number, Website, Address, Social Media Handle

Cards may be in English, Arabic, or both. Run "cardscan serve" for the web
upload page and JSON API, or "cardscan scan <image>" to scan locally.`,
	Version:       version.GitRelease,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.cardscan/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "cardscan home directory (default: ~/.cardscan)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn, or error",
	)

	// Validate global flags before any command runs
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, err := api.ParseFormat(outputFormat)
		if err != nil {
			return err
		}
		api.SetFormat(format)
		_, err = parseLogLevel(logLevel)
		return err
	}

	rootCmd.AddCommand(versionCmd)
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// newLogger builds the text logger for w at the --log-level threshold.
func newLogger(w io.Writer) *slog.Logger {
	level, _ := parseLogLevel(logLevel)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// loadConfig reads .env files and the config file.
// Precedence for the file: --config, ./config.yaml, then <home>/config.yaml.
func loadConfig(logger *slog.Logger) (*config.Config, *home.Dir, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}

	if err := config.LoadEnvFiles(h.EnvFiles()...); err != nil {
		return nil, nil, err
	}

	path := h.ConfigFile(cfgFile)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("configuration loaded", "file", path, "model", cfg.OpenAI.Model, "strategy", cfg.Extractor.Strategy)
	return cfg, h, nil
}

// newVisionClient returns the OpenAI client, or the mock client when useMock is set.
func newVisionClient(cfg *config.Config, useMock bool) (providers.VisionClient, error) {
	if useMock {
		return providers.NewMockClient(), nil
	}
	key := cfg.ResolvedAPIKey()
	if key == "" {
		return nil, config.ErrMissingAPIKey
	}
	return providers.NewOpenAIClient(providers.OpenAIConfig{
		APIKey:  key,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: cfg.Timeout(),
	}), nil
}

// newScanner wires config, client, and logger into a scanner service.
func newScanner(cfg *config.Config, logger *slog.Logger, useMock bool) (*scanner.Service, error) {
	client, err := newVisionClient(cfg, useMock)
	if err != nil {
		return nil, err
	}
	strategy, err := cfg.Strategy()
	if err != nil {
		return nil, err
	}
	return scanner.New(scanner.Config{
		Client:   client,
		Model:    cfg.OpenAI.Model,
		Strategy: strategy,
		Logger:   logger,
	})
}

// output writes v to the command's stdout in the --output format.
func output(cmd *cobra.Command, v any) error {
	return api.Print(cmd, v)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
