package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/cardscan/internal/card"
	"github.com/jackzampolin/cardscan/internal/server/endpoints"
)

var extractStrategy string

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Run the response extractor on saved model output",
	Long: `Extract parses raw model output (from a file, or stdin when no file or "-"
is given) exactly as a scan would, without calling the model.

Examples:
  cardscan extract answer.txt
  echo '{"Email": "a@b.com"}' | cardscan extract
  cardscan extract answer.txt --strategy balanced`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig(newLogger(os.Stderr))
		if err != nil {
			return err
		}

		strategy, err := cfg.Strategy()
		if err != nil {
			return err
		}
		if extractStrategy != "" {
			if strategy, err = card.ParseStrategy(extractStrategy); err != nil {
				return err
			}
		}

		text, err := endpoints.ReadTextArg(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		return output(cmd, endpoints.NewExtractResponse(strategy, text))
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractStrategy, "strategy", "", "Extraction strategy: greedy or balanced (default from config)")

	rootCmd.AddCommand(extractCmd)
}
