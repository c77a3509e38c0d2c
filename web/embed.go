// Package web provides the embedded HTML templates and static assets for the
// cardscan upload page.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	// PageTemplate is the upload/result page.
	PageTemplate = "index.html"
	// SwaggerTemplate hosts Swagger UI for the API document.
	SwaggerTemplate = "swagger.html"
)

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// StaticFS returns the embedded static assets with "static" as the root,
// so files are accessed directly (e.g., "style.css").
func StaticFS() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
