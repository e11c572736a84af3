// =============================================================================
// PO Tracker - Row Projector
// =============================================================================
//
// Converts a sheet into an ordered sequence of flat records, using row 1 as
// the header row. Row order is meaningful downstream: error messages refer to
// "row N of the sheet".
//
// Header names synthesized from untrusted sheets must never be able to poison
// anything: the reserved-key denylist below is enforced unconditionally.
//
// =============================================================================

package workbook

import "fmt"

// reservedKeys are header names that are never emitted as record keys,
// regardless of sheet content.
var reservedKeys = map[string]bool{
	"__proto__":   true,
	"constructor": true,
	"prototype":   true,
}

// Record is one data row as a flat header-to-value mapping. Values are
// primitives produced by Cell.Normalize: string, float64, or "".
type Record map[string]any

// Projection is the result of projecting one sheet.
type Projection struct {
	// Headers is the derived header list in column order. Go maps carry no
	// order, so callers needing first-seen column order read it here.
	Headers []string

	// Records holds one entry per contributing data row, in sheet row order.
	Records []Record

	// Truncated reports that accumulation stopped at the row cap.
	Truncated bool
}

// Project converts a sheet's rows into records.
//
// Header derivation: each row-1 cell names its column; empty cells fall back
// to a positional "Column<N>" name so every column has a usable key. Data
// rows wider than the header row have no header for the extra cells and those
// cells are skipped. Fully empty rows are dropped silently.
//
// Accumulation stops at maxRows; the cap is authoritative and reported via
// Truncated rather than raised.
func Project(sheet *Sheet, maxRows int) Projection {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	if sheet == nil || len(sheet.Rows) == 0 {
		return Projection{}
	}

	headerRow := sheet.Rows[0]
	headers := make([]string, len(headerRow))
	for i, cell := range headerRow {
		name := cell.headerString()
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}
		headers[i] = name
	}

	proj := Projection{Headers: headers}
	for _, row := range sheet.Rows[1:] {
		if len(proj.Records) >= maxRows {
			proj.Truncated = true
			break
		}

		record := Record{}
		populated := false
		for i, cell := range row {
			// No header was derived for columns beyond the header row.
			if i >= len(headers) {
				continue
			}
			key := headers[i]
			if reservedKeys[key] {
				continue
			}

			value := cell.Normalize()
			record[key] = value
			if !isEmptyValue(value) {
				populated = true
			}
		}

		if populated {
			proj.Records = append(proj.Records, record)
		}
	}

	return proj
}

// isEmptyValue reports whether a normalized value counts as unpopulated.
// Numbers are always populated, including zero.
func isEmptyValue(v any) bool {
	s, ok := v.(string)
	return ok && s == ""
}
