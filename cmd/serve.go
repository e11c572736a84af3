// =============================================================================
// PO Tracker - Serve Command
// =============================================================================
//
// Runs the HTTP import surface so browser clients can upload spreadsheets
// and download templates.
//
// COMMAND USAGE:
//   po-tracker serve
//   po-tracker serve --config ./config.yaml
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/apiclient"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/config"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/importer"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP import surface",

	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	mainConfig, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := apiclient.New(mainConfig.APIBaseURL, mainConfig.APIToken, mainConfig.APITimeout())
	imp := importer.New(client, mainConfig.ParseConfig())

	fmt.Printf("Listening on %s (backend: %s)\n", mainConfig.ListenAddr, mainConfig.APIBaseURL)
	return server.New(imp, client).Run(mainConfig.ListenAddr)
}
