// =============================================================================
// PO Tracker - Root Command
// =============================================================================
//
// Root of the Cobra CLI. Command tree:
//
//   po-tracker
//   ├── import    (import a purchase-order or shipment spreadsheet)
//   ├── template  (emit an xlsx import template)
//   ├── serve     (run the HTTP import surface)
//   └── version
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the main configuration file.
// Overridden with the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "po-tracker",
	Short: "PO Tracker - Import purchase-order and shipment spreadsheets",
	Long: `PO Tracker ingests vendor purchase-order and shipment spreadsheets,
validates and groups them, and submits one create-call per grouped entity to
the tracking backend.

Uploads are bounded before anything is parsed: 5 MiB size cap, xlsx/xls/csv
only, 10 second parse timeout, 10,000 row and 10 sheet ceilings. Validation
problems are reported all at once, before any network call is made.

Example Usage:
  po-tracker import --flow purchase-orders --file ./po.xlsx
  po-tracker template --flow shipments --out ./shipments.xlsx
  po-tracker serve`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
