// =============================================================================
// PO Tracker - Main Entry Point
// =============================================================================
//
// USAGE:
//   po-tracker import    - Import a purchase-order or shipment spreadsheet
//   po-tracker template  - Emit an xlsx import template
//   po-tracker serve     - Run the HTTP import surface
//   po-tracker version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : ingestion pipeline, collaborator client, HTTP surface
//
// =============================================================================

package main

import (
	"github.com/bhikandeshmukh/po-tracker-sub001/cmd"
)

func main() {
	cmd.Execute()
}
