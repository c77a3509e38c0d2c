package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/cardscan/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output(cmd, version.Get())
	},
}
