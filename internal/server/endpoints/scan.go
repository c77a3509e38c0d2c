package endpoints

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/cardscan/internal/api"
	"github.com/jackzampolin/cardscan/internal/card"
	"github.com/jackzampolin/cardscan/internal/scanner"
	"github.com/jackzampolin/cardscan/internal/svcctx"
)

// ScanResponse is the JSON result of a scan.
type ScanResponse struct {
	ID string `json:"id"`
	// Fields holds all ten canonical fields, missing ones as "".
	Fields card.Record `json:"fields"`
	// RawFields is the extractor output unchanged.
	RawFields  card.Record   `json:"raw_fields"`
	Missing    []string      `json:"missing,omitempty"`
	Warnings   []string      `json:"warnings,omitempty"`
	Model      string        `json:"model,omitempty"`
	Usage      scanner.Usage `json:"usage"`
	DurationMS int64         `json:"duration_ms"`
}

func newScanResponse(res *scanner.Result) ScanResponse {
	return ScanResponse{
		ID:         res.ID,
		Fields:     res.Fields,
		RawFields:  res.Extracted,
		Missing:    res.Missing,
		Warnings:   res.Warnings,
		Model:      res.Model,
		Usage:      res.Usage,
		DurationMS: res.Duration.Milliseconds(),
	}
}

// scanStatus maps a scan error to an HTTP status.
func scanStatus(err error) int {
	switch scanner.KindOf(err) {
	case scanner.KindImage, scanner.KindParse:
		return http.StatusUnprocessableEntity
	case scanner.KindService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ScanEndpoint handles POST /api/scan.
type ScanEndpoint struct {
	MaxUploadBytes int64
}

var _ api.Endpoint = (*ScanEndpoint)(nil)

func (e *ScanEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/scan", e.handler
}

func (e *ScanEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Scan a business card image
//	@Description	Runs one scan: encode the image, call the vision model, and extract the card fields
//	@Tags			cards
//	@Accept			mpfd
//	@Produce		json
//	@Param			file	formData	file	true	"Business card image"
//	@Success		200		{object}	ScanResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/api/scan [post]
func (e *ScanEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sc := svcctx.ScannerFrom(r.Context())
	if sc == nil {
		writeError(w, http.StatusServiceUnavailable, "vision client not configured")
		return
	}
	logger := svcctx.LoggerFrom(r.Context())

	up, err := readUpload(w, r, e.MaxUploadBytes)
	if err != nil {
		status, msg := uploadStatus(err)
		writeError(w, status, msg)
		return
	}
	logger.Info("scan requested", "file", up.Name, "bytes", len(up.Data))

	res, err := sc.ScanReader(r.Context(), bytes.NewReader(up.Data))
	if err != nil {
		logger.Error("scan failed", "file", up.Name, "kind", scanner.KindOf(err), "error", err)
		writeJSON(w, scanStatus(err), ErrorResponse{
			Error: scanner.UserMessage(err),
			Kind:  string(scanner.KindOf(err)),
		})
		return
	}

	writeJSON(w, http.StatusOK, newScanResponse(res))
}

func (e *ScanEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "scan <image>",
		Short: "Upload a business card image to the server and print the fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ScanResponse
			if err := client.PostFile(cmd.Context(), "/api/scan", UploadField, args[0], &resp); err != nil {
				return fmt.Errorf("scan %s: %w", args[0], err)
			}
			return api.Print(cmd, resp)
		},
	}
}
