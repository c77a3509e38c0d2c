package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/cardscan/internal/api"
	"github.com/jackzampolin/cardscan/internal/card"
)

// FieldsResponse describes the card record.
type FieldsResponse struct {
	Fields []string        `json:"fields" yaml:"fields"`
	Layout []card.Section  `json:"layout" yaml:"layout"`
	Schema json.RawMessage `json:"schema,omitempty" yaml:"-"`
}

// FieldsEndpoint handles GET /api/fields.
type FieldsEndpoint struct{}

var _ api.Endpoint = (*FieldsEndpoint)(nil)

func (e *FieldsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/fields", e.handler
}

func (e *FieldsEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Card fields
//	@Description	Lists the canonical card fields in schema order and their display layout
//	@Tags			cards
//	@Produce		json
//	@Success		200	{object}	FieldsResponse
//	@Router			/api/fields [get]
func (e *FieldsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FieldsResponse{
		Fields: card.Fields,
		Layout: card.Layout(),
		Schema: json.RawMessage(card.SchemaJSON),
	})
}

func (e *FieldsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "Show the card fields and display layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp FieldsResponse
			if err := client.Get(cmd.Context(), "/api/fields", &resp); err != nil {
				return err
			}
			return api.Print(cmd, resp)
		},
	}
}
