package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/cardscan/internal/config"
	"github.com/jackzampolin/cardscan/internal/server"
)

var (
	serveHost string
	servePort string
	serveMock bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cardscan server",
	Long: `Start the cardscan HTTP server.

The server provides:
  - /              - Upload page; shows the extracted fields as a read-only form
  - /api/scan      - Scan an uploaded image (multipart field "file"), JSON result
  - /api/extract   - Run only the extractor on raw model output
  - /api/fields    - Card fields and display layout
  - /health        - Basic server health check
  - /ready         - Readiness check (includes the vision client)
  - /swagger       - API documentation

Without an API key the server still starts, but scans return 503.

Examples:
  cardscan serve                    # Start on default port 8080
  cardscan serve --port 3000        # Start on custom port
  cardscan serve --host 0.0.0.0     # Bind to all interfaces
  cardscan serve --mock             # Canned answers, no API key needed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger := newLogger(os.Stdout)

		cfg, _, err := loadConfig(logger)
		if err != nil {
			return err
		}

		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		sc, err := newScanner(cfg, logger, serveMock)
		if err != nil {
			if !errors.Is(err, config.ErrMissingAPIKey) {
				return err
			}
			logger.Warn("scanning disabled", "reason", err)
		}

		srv, err := server.New(server.Config{
			Host:           host,
			Port:           port,
			MaxUploadBytes: cfg.MaxUploadBytes(),
			ScanTimeout:    cfg.Timeout(),
			Scanner:        sc,
			AppConfig:      cfg,
			Logger:         logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to (overrides server.host)")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&serveMock, "mock", false, "Use the mock vision client instead of OpenAI")

	rootCmd.AddCommand(serveCmd)
}
