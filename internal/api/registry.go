package api

import (
	"net/http"

	"github.com/spf13/cobra"
)

// Registry is the ordered set of endpoints exposed over HTTP and mirrored
// under "cardscan api".
type Registry struct {
	endpoints []Endpoint
}

// NewRegistry returns a registry holding eps.
func NewRegistry(eps ...Endpoint) *Registry {
	r := &Registry{}
	r.Register(eps...)
	return r
}

// Register appends endpoints.
func (r *Registry) Register(eps ...Endpoint) {
	r.endpoints = append(r.endpoints, eps...)
}

// Endpoints returns the registered endpoints in registration order.
func (r *Registry) Endpoints() []Endpoint {
	return r.endpoints
}

// Patterns returns the ServeMux pattern of every route, e.g. "POST /api/scan".
func (r *Registry) Patterns() []string {
	out := make([]string, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		method, path, _ := ep.Route()
		out = append(out, method+" "+path)
	}
	return out
}

// Mount adds every route to mux. Routes whose endpoint needs the vision
// client are wrapped in gate first.
func (r *Registry) Mount(mux *http.ServeMux, gate func(http.HandlerFunc) http.HandlerFunc) {
	for _, ep := range r.endpoints {
		method, path, h := ep.Route()
		if ep.RequiresInit() && gate != nil {
			h = gate(h)
		}
		mux.HandleFunc(method+" "+path, h)
	}
}

// Command builds the "api" command. Browser-only endpoints have no
// subcommand.
func (r *Registry) Command(getServerURL func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Call a running cardscan server",
		Long: `Commands under "api" talk to a server started with "cardscan serve".
Point them elsewhere with --server.

Examples:
  cardscan api ready
  cardscan api fields -o json
  cardscan api scan card.jpg
  cardscan api extract response.txt --strategy balanced`,
	}
	for _, ep := range r.endpoints {
		if sub := ep.Command(getServerURL); sub != nil {
			cmd.AddCommand(sub)
		}
	}
	return cmd
}
