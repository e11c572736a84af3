// =============================================================================
// PO Tracker - Record Structure Validator
// =============================================================================
//
// Checks a projected record set against an import profile's required-field
// contract. These are expected, user-correctable conditions (missing columns,
// empty file), so the validator is a total function: every failure is a
// structured result, never a panic or an error return.
//
// The required-field check deliberately samples only the FIRST record. Rows
// beyond the first can be missing fields without failing validation; widening
// the check would change observable behavior for existing callers.
//
// =============================================================================

package importer

import (
	"strings"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/workbook"
)

// ValidationResult is the structured outcome of a structure check.
// It is a pure value, never retained beyond the call that produced it.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	RowCount int      `json:"rowCount"`
}

// ValidateStructure checks that records form a usable, non-empty sequence and
// that the first record carries every required field.
//
// Missing fields are reported as one combined message listing all missing
// names, comma-joined, in requiredFields order.
func ValidateStructure(records []workbook.Record, requiredFields []string) ValidationResult {
	if records == nil {
		return ValidationResult{Valid: false, Errors: []string{"Data must be an array"}}
	}
	if len(records) == 0 {
		return ValidationResult{Valid: false, Errors: []string{"No data found in file"}}
	}

	if len(requiredFields) > 0 {
		first := records[0]
		var missing []string
		for _, field := range requiredFields {
			if _, ok := first[field]; !ok {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			return ValidationResult{
				Valid:    false,
				Errors:   []string{"Missing required fields: " + strings.Join(missing, ", ")},
				RowCount: len(records),
			}
		}
	}

	return ValidationResult{Valid: true, Errors: []string{}, RowCount: len(records)}
}
