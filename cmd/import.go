// =============================================================================
// PO Tracker - Import Command
// =============================================================================
//
// Runs one import from the command line: reads the spreadsheet, pushes it
// through the ingestion pipeline, and prints the per-entity accounting.
//
// COMMAND USAGE:
//   po-tracker import --flow purchase-orders --file ./po.xlsx
//   po-tracker import --flow shipments --file ./shipments.csv
//
// Create-calls are issued sequentially, one grouped entity at a time, so a
// failure is always attributable to a specific entity.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/apiclient"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/config"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/importer"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/upload"
)

// importFile is the path of the spreadsheet to import.
var importFile string

// importFlow selects the import profile (purchase-orders or shipments).
var importFlow string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a purchase-order or shipment spreadsheet",
	Long: `The import command validates and parses a spreadsheet, groups its rows
into domain entities, and submits one create-call per entity to the backend.

Validation problems (size, type, missing columns, empty file) are reported
before anything is sent. A failing entity never blocks its siblings; the
command reports how many entities succeeded out of the total.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport()
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importFile, "file", "", "Path to the spreadsheet to import")
	importCmd.Flags().StringVar(&importFlow, "flow", importer.PurchaseOrders.Name, "Import flow: purchase-orders or shipments")
	importCmd.MarkFlagRequired("file")
}

func runImport() error {
	profile, err := importer.ProfileByName(importFlow)
	if err != nil {
		return err
	}

	mainConfig, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	info, err := os.Stat(importFile)
	if err != nil {
		return fmt.Errorf("failed to stat input file: %w", err)
	}
	data, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	candidate := &upload.Candidate{
		Name: filepath.Base(importFile),
		Size: info.Size(),
	}

	client := apiclient.New(mainConfig.APIBaseURL, mainConfig.APIToken, mainConfig.APITimeout())
	imp := importer.New(client, mainConfig.ParseConfig())

	outcome, err := imp.Run(context.Background(), candidate, data, profile)
	if err != nil {
		return err
	}

	if len(outcome.ValidationErrors) > 0 {
		fmt.Println("Import rejected:")
		for _, e := range outcome.ValidationErrors {
			fmt.Printf("  ✗ %s\n", e)
		}
		return fmt.Errorf("validation failed")
	}

	fmt.Printf("\n=== Import Complete (%s) ===\n", outcome.Flow)
	fmt.Printf("Rows read:       %d\n", outcome.RowCount)
	fmt.Printf("Entities:        %d\n", outcome.Total)
	fmt.Printf("Succeeded:       %d\n", outcome.Succeeded)
	if outcome.Truncated {
		fmt.Println("Note: the sheet was truncated at the row cap.")
	}
	for _, entityErr := range outcome.Errors {
		fmt.Printf("  ✗ %s: %s\n", entityErr.Key, entityErr.Message)
	}
	if len(outcome.Errors) > 0 {
		return fmt.Errorf("%d of %d entities failed", len(outcome.Errors), outcome.Total)
	}
	return nil
}
