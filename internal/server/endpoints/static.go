package endpoints

import (
	"net/http"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/cardscan/internal/api"
	"github.com/jackzampolin/cardscan/web"
)

var staticHandler = sync.OnceValues(func() (http.Handler, error) {
	assets, err := web.StaticFS()
	if err != nil {
		return nil, err
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(assets))), nil
})

// StaticEndpoint serves the page stylesheet from the embedded assets.
type StaticEndpoint struct{}

var _ api.Endpoint = (*StaticEndpoint)(nil)

func (e *StaticEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/static/{path...}", e.handler
}

func (e *StaticEndpoint) RequiresInit() bool { return false }

func (e *StaticEndpoint) Command(func() string) *cobra.Command { return nil }

func (e *StaticEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	h, err := staticHandler()
	if err != nil {
		http.Error(w, "assets unavailable", http.StatusInternalServerError)
		return
	}
	// Assets are compiled into the binary.
	w.Header().Set("Cache-Control", "public, max-age=3600")
	h.ServeHTTP(w, r)
}
