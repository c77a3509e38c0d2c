package main

import (
	"github.com/jackzampolin/cardscan/internal/api"
	"github.com/jackzampolin/cardscan/internal/server/endpoints"
)

var serverURL string

func init() {
	reg := api.NewRegistry(endpoints.All(endpoints.Config{})...)

	// serverURL is read when a subcommand runs, after flags are parsed.
	apiCmd := reg.Command(func() string { return serverURL })
	apiCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "cardscan server URL")

	rootCmd.AddCommand(apiCmd)
}
