package endpoints

import (
	"fmt"
	"net/http"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/swaggo/swag"

	"github.com/jackzampolin/cardscan/internal/api"
	"github.com/jackzampolin/cardscan/web"

	// Registers the OpenAPI document with swag.
	_ "github.com/jackzampolin/cardscan/docs"
)

// SwaggerDocPath is where the registered OpenAPI document is served.
const SwaggerDocPath = "/swagger.json"

// SwaggerEndpoint serves the OpenAPI document registered by package docs.
type SwaggerEndpoint struct{}

var _ api.Endpoint = (*SwaggerEndpoint)(nil)

func (e *SwaggerEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", SwaggerDocPath, e.handler
}

func (e *SwaggerEndpoint) RequiresInit() bool { return false }

func (e *SwaggerEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "API document not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, doc)
}

func (e *SwaggerEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		file      string
		pathsOnly bool
	)
	cmd := &cobra.Command{
		Use:   "swagger",
		Short: "Fetch the server's OpenAPI document",
		RunE: func(cmd *cobra.Command, args []string) error {
			var doc map[string]any
			if err := api.NewClient(getServerURL()).Get(cmd.Context(), SwaggerDocPath, &doc); err != nil {
				return err
			}

			if pathsOnly {
				paths, _ := doc["paths"].(map[string]any)
				names := make([]string, 0, len(paths))
				for p := range paths {
					names = append(names, p)
				}
				sort.Strings(names)
				return api.Print(cmd, names)
			}
			if file == "" {
				return api.Print(cmd, doc)
			}

			f, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("create %s: %w", file, err)
			}
			defer f.Close()
			return api.Encode(f, api.FormatJSON, doc)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "write the document to this file as JSON")
	cmd.Flags().BoolVar(&pathsOnly, "paths", false, "list only the documented paths")
	return cmd
}

// SwaggerUIEndpoint serves Swagger UI pointed at SwaggerDocPath.
type SwaggerUIEndpoint struct{}

var _ api.Endpoint = (*SwaggerUIEndpoint)(nil)

func (e *SwaggerUIEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/swagger", e.handler
}

func (e *SwaggerUIEndpoint) RequiresInit() bool { return false }

func (e *SwaggerUIEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, http.StatusOK, web.SwaggerTemplate, struct {
		Title  string
		DocURL string
	}{
		Title:  "cardscan API",
		DocURL: SwaggerDocPath,
	})
}

// Command has no HTTP call to make; it prints where the UI lives.
func (e *SwaggerUIEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:    "swagger-ui",
		Hidden: true,
		Short:  "Print the Swagger UI URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), getServerURL()+"/swagger")
			return nil
		},
	}
}
