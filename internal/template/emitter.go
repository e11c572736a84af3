// =============================================================================
// PO Tracker - Template Emitter
// =============================================================================
//
// The inverse path of the import pipeline: given reference data fetched from
// the collaborator, produce a downloadable xlsx template with the profile's
// header row and cell-level dropdown validation lists, so users fill in valid
// vendor/transporter/PO identifiers instead of guessing.
//
// =============================================================================

package template

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/importer"
	"github.com/bhikandeshmukh/po-tracker-sub001/internal/types"
)

// sheetNameLimit is the platform limit on sheet name length.
const sheetNameLimit = 31

// dropdownRows is how many data rows each dropdown validation covers.
const dropdownRows = 1000

// ReferenceData carries the collaborator entities offered in dropdowns.
type ReferenceData struct {
	Vendors        []types.Vendor
	Transporters   []types.Transporter
	PurchaseOrders []types.PurchaseOrder
}

// Emit builds an xlsx template for the given profile and returns its bytes.
func Emit(profile importer.Profile, ref ReferenceData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SanitizeSheetName(profile.Name + " template")
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(profile.Columns))
	for i, col := range profile.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for column, values := range dropdowns(profile, ref) {
		if err := addDropdown(f, sheet, columnIndex(profile.Columns, column), values); err != nil {
			return nil, fmt.Errorf("failed to add %s dropdown: %w", column, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize template: %w", err)
	}
	return buf.Bytes(), nil
}

// dropdowns maps profile columns to their allowed values.
func dropdowns(profile importer.Profile, ref ReferenceData) map[string][]string {
	lists := map[string][]string{}

	switch profile.Name {
	case importer.PurchaseOrders.Name:
		lists["vendorId"] = vendorIDs(ref.Vendors)
	case importer.Shipments.Name:
		lists["transporterId"] = transporterIDs(ref.Transporters)
		lists["poNumber"] = poNumbers(ref.PurchaseOrders)
	}

	for column, values := range lists {
		if len(values) == 0 {
			delete(lists, column)
		}
	}
	return lists
}

// addDropdown attaches a drop-list validation to one column over the first
// dropdownRows data rows. The xlsx drop-list formula is capped at 255
// characters, so the value list is trimmed to fit.
func addDropdown(f *excelize.File, sheet string, col int, values []string) error {
	if col < 0 {
		return nil
	}
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return err
	}

	dv := excelize.NewDataValidation(true)
	dv.Sqref = fmt.Sprintf("%s2:%s%d", name, name, dropdownRows+1)
	if err := dv.SetDropList(trimToFormulaLimit(values)); err != nil {
		return err
	}
	return f.AddDataValidation(sheet, dv)
}

// trimToFormulaLimit keeps as many values as fit in the 255-character
// drop-list formula budget (values are comma-joined and quoted).
func trimToFormulaLimit(values []string) []string {
	const budget = 250
	total := 0
	for i, v := range values {
		total += len(v) + 1
		if total > budget {
			return values[:i]
		}
	}
	return values
}

func columnIndex(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}

func vendorIDs(vendors []types.Vendor) []string {
	ids := make([]string, 0, len(vendors))
	for _, v := range vendors {
		if v.ID != "" {
			ids = append(ids, v.ID)
		}
	}
	return ids
}

func transporterIDs(transporters []types.Transporter) []string {
	ids := make([]string, 0, len(transporters))
	for _, t := range transporters {
		if t.ID != "" {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func poNumbers(orders []types.PurchaseOrder) []string {
	numbers := make([]string, 0, len(orders))
	for _, po := range orders {
		if po.PONumber != "" {
			numbers = append(numbers, po.PONumber)
		}
	}
	return numbers
}

// SanitizeSheetName strips the characters xlsx forbids in sheet names and
// truncates to the 31-character platform limit.
func SanitizeSheetName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, name)

	if len(cleaned) > sheetNameLimit {
		cleaned = cleaned[:sheetNameLimit]
	}
	if cleaned == "" {
		cleaned = "Sheet1"
	}
	return cleaned
}
