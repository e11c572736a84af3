// =============================================================================
// PO Tracker - Template Command
// =============================================================================
//
// Emits a blank xlsx import template for a flow, with dropdown validation
// lists filled from the backend's current reference data (vendors,
// transporters, existing purchase orders).
//
// COMMAND USAGE:
//   po-tracker template --flow purchase-orders
//   po-tracker template --flow shipments --out ./shipments.xlsx
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/apiclient"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/config"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/importer"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/template"
)

// templateFlow selects which flow's template to emit.
var templateFlow string

// templateOut is the output path; defaults to a uuid-stamped name.
var templateOut string

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Emit an xlsx import template with reference-data dropdowns",

	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplate()
	},
}

func init() {
	rootCmd.AddCommand(templateCmd)

	templateCmd.Flags().StringVar(&templateFlow, "flow", importer.PurchaseOrders.Name, "Import flow: purchase-orders or shipments")
	templateCmd.Flags().StringVar(&templateOut, "out", "", "Output path (default: <flow>-template-<id>.xlsx)")
}

func runTemplate() error {
	profile, err := importer.ProfileByName(templateFlow)
	if err != nil {
		return err
	}

	mainConfig, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := apiclient.New(mainConfig.APIBaseURL, mainConfig.APIToken, mainConfig.APITimeout())
	ctx := context.Background()

	ref := template.ReferenceData{}
	switch profile.Name {
	case importer.PurchaseOrders.Name:
		if ref.Vendors, err = client.ListVendors(ctx); err != nil {
			return fmt.Errorf("failed to fetch vendors: %w", err)
		}
	case importer.Shipments.Name:
		if ref.Transporters, err = client.ListTransporters(ctx); err != nil {
			return fmt.Errorf("failed to fetch transporters: %w", err)
		}
		if ref.PurchaseOrders, err = client.ListPurchaseOrders(ctx); err != nil {
			return fmt.Errorf("failed to fetch purchase orders: %w", err)
		}
	}

	payload, err := template.Emit(profile, ref)
	if err != nil {
		return err
	}

	out := templateOut
	if out == "" {
		out = fmt.Sprintf("%s-template-%s.xlsx", profile.Name, uuid.New().String()[:8])
	}
	if err := os.WriteFile(out, payload, 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	fmt.Printf("Template written to %s\n", out)
	return nil
}
