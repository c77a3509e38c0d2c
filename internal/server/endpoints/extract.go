package endpoints

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/cardscan/internal/api"
	"github.com/jackzampolin/cardscan/internal/card"
	"github.com/jackzampolin/cardscan/internal/svcctx"
)

// ExtractRequest carries raw model output.
type ExtractRequest struct {
	Text string `json:"text"`
}

// ExtractResponse is the extractor result for ExtractRequest.Text.
type ExtractResponse struct {
	Strategy  card.Strategy `json:"strategy"`
	Fields    card.Record   `json:"fields"`
	RawFields card.Record   `json:"raw_fields"`
	Missing   []string      `json:"missing,omitempty"`
	Warnings  []string      `json:"warnings,omitempty"`
}

// NewExtractResponse runs strategy over text.
func NewExtractResponse(strategy card.Strategy, text string) ExtractResponse {
	rec, drift := strategy.Analyze(text)
	return ExtractResponse{
		Strategy:  strategy,
		Fields:    card.Display(rec),
		RawFields: rec,
		Missing:   card.Missing(rec),
		Warnings:  drift,
	}
}

// ExtractEndpoint handles POST /api/extract.
type ExtractEndpoint struct{}

var _ api.Endpoint = (*ExtractEndpoint)(nil)

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/extract", e.handler
}

func (e *ExtractEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Extract fields from model text
//	@Description	Runs only the response extractor on raw model output text
//	@Tags			cards
//	@Accept			json
//	@Produce		json
//	@Param			request		body		ExtractRequest	true	"Raw model output"
//	@Param			strategy	query		string			false	"greedy or balanced (defaults to the configured strategy)"
//	@Success		200			{object}	ExtractResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/api/extract [post]
func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	strategy := svcctx.StrategyFrom(r.Context())
	if q := r.URL.Query().Get("strategy"); q != "" {
		s, err := card.ParseStrategy(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		strategy = s
	}

	writeJSON(w, http.StatusOK, NewExtractResponse(strategy, req.Text))
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	var strategy string
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Send raw model output (file or stdin) to the server's extractor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := ReadTextArg(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			path := "/api/extract"
			if strategy != "" {
				path += "?strategy=" + strategy
			}
			client := api.NewClient(getServerURL())
			var resp ExtractResponse
			if err := client.Post(cmd.Context(), path, ExtractRequest{Text: text}, &resp); err != nil {
				return err
			}
			return api.Print(cmd, resp)
		},
	}
	cmd.Flags().StringVar(&strategy, "strategy", "", "Extraction strategy: greedy or balanced")
	return cmd
}

// ReadTextArg reads args[0] as a file, or stdin when no argument or "-" is given.
func ReadTextArg(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
