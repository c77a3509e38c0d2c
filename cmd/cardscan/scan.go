package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/cardscan/internal/imaging"
	"github.com/jackzampolin/cardscan/internal/scanner"
)

var (
	scanMock bool
	scanRaw  bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <image>",
	Short: "Scan a business card image locally (no server needed)",
	Long: `Scan runs the full pipeline in-process: decode the image, send it to the
vision model, and extract the card fields.

Examples:
  cardscan scan card.jpg
  cardscan scan card.png -o json
  cardscan scan card.png --raw         # include the model's raw answer
  cardscan scan card.png --mock        # canned answer, no API key needed`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(os.Stderr)

		cfg, _, err := loadConfig(logger)
		if err != nil {
			return err
		}

		path := args[0]
		if !imaging.AllowedFile(path) {
			return fmt.Errorf("%s: %w", path, imaging.ErrUnsupportedFormat)
		}

		sc, err := newScanner(cfg, logger, scanMock)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()

		res, err := sc.ScanReader(cmd.Context(), f)
		if err != nil {
			if scanRaw && errors.Is(err, scanner.ErrNoFields) && res != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), res.RawText)
			}
			return fmt.Errorf("%s: %w", scanner.UserMessage(err), err)
		}

		if !scanRaw {
			res.RawText = ""
		}
		return output(cmd, res)
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanMock, "mock", false, "Use the mock vision client instead of OpenAI")
	scanCmd.Flags().BoolVar(&scanRaw, "raw", false, "Include the raw model output")

	rootCmd.AddCommand(scanCmd)
}
