package endpoints

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/cardscan/internal/api"
	"github.com/jackzampolin/cardscan/internal/card"
	"github.com/jackzampolin/cardscan/internal/imaging"
	"github.com/jackzampolin/cardscan/internal/scanner"
	"github.com/jackzampolin/cardscan/internal/svcctx"
	"github.com/jackzampolin/cardscan/web"
)

const (
	PageTitle   = "AI Business Card Scanner"
	PageCaption = "Powered by GPT-4o Vision"
)

// PageTemplates returns the parsed page templates. Parsing happens once.
var PageTemplates = sync.OnceValues(web.Templates)

// PageData is the view model for the upload/result page.
type PageData struct {
	Title    string
	Caption  string
	Accept   string
	FileName string
	// ImageURL is a data URL preview of the upload.
	ImageURL template.URL
	Error    string
	Sections []card.RenderedSection
	Warnings []string
	ScanID   string
}

func newPageData() PageData {
	return PageData{
		Title:   PageTitle,
		Caption: PageCaption,
		Accept:  strings.Join(imaging.AllowedExtensions, ","),
	}
}

// previewURL builds an inline data URL for the uploaded bytes.
func previewURL(data []byte) template.URL {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return ""
	}
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data))
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, data PageData) {
	renderTemplate(w, r, status, web.PageTemplate, data)
}

// renderTemplate executes an embedded template into a buffer first so a
// failed render never leaves a half-written page.
func renderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	tmpl, err := PageTemplates()
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Error("page templates unavailable", "error", err)
		http.Error(w, "Page not available", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		svcctx.LoggerFrom(r.Context()).Error("page render failed", "template", name, "error", err)
		http.Error(w, "Page not available", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// PageEndpoint handles GET / and renders the upload form.
type PageEndpoint struct{}

var _ api.Endpoint = (*PageEndpoint)(nil)

func (e *PageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/{$}", e.handler
}

func (e *PageEndpoint) RequiresInit() bool { return false }

func (e *PageEndpoint) Command(_ func() string) *cobra.Command { return nil }

func (e *PageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, newPageData())
}

// PageScanEndpoint handles POST / from the upload form and renders the
// extracted fields as read-only controls.
type PageScanEndpoint struct {
	MaxUploadBytes int64
}

var _ api.Endpoint = (*PageScanEndpoint)(nil)

func (e *PageScanEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/{$}", e.handler
}

// RequiresInit is false so a missing scanner renders the page error instead
// of a JSON 503.
func (e *PageScanEndpoint) RequiresInit() bool { return false }

func (e *PageScanEndpoint) Command(_ func() string) *cobra.Command { return nil }

func (e *PageScanEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	data := newPageData()
	logger := svcctx.LoggerFrom(r.Context())

	sc := svcctx.ScannerFrom(r.Context())
	if sc == nil {
		data.Error = scanner.FailureMessage
		renderPage(w, r, http.StatusServiceUnavailable, data)
		return
	}

	up, err := readUpload(w, r, e.MaxUploadBytes)
	if err != nil {
		status, msg := uploadStatus(err)
		data.Error = msg
		renderPage(w, r, status, data)
		return
	}
	data.FileName = up.Name
	data.ImageURL = previewURL(up.Data)

	res, err := sc.ScanReader(r.Context(), bytes.NewReader(up.Data))
	if err != nil {
		logger.Error("scan failed", "file", up.Name, "kind", scanner.KindOf(err), "error", err)
		data.Error = scanner.UserMessage(err)
		renderPage(w, r, scanStatus(err), data)
		return
	}

	data.ScanID = res.ID
	data.Sections = card.Render(res.Extracted)
	data.Warnings = res.Warnings
	renderPage(w, r, http.StatusOK, data)
}
