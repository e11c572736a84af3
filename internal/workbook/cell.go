package workbook

import (
	"strconv"
	"time"
)

// CellKind tags the variant a cell carries. Normalization pattern-matches on
// this tag rather than probing the payload.
type CellKind int

const (
	// CellEmpty is a cell with no value.
	CellEmpty CellKind = iota
	// CellString is a plain text cell.
	CellString
	// CellNumber is a numeric cell.
	CellNumber
	// CellDate is a date or datetime cell.
	CellDate
	// CellFormula is a formula cell; Value holds the evaluated result.
	CellFormula
	// CellRichText is a rich-text cell; Value holds the concatenated runs.
	CellRichText
)

// Cell is one cell of a sheet as a tagged union. Exactly one payload field is
// meaningful, selected by Kind: Value for String/Formula/RichText, Number for
// Number, Time for Date.
type Cell struct {
	Kind   CellKind
	Value  string
	Number float64
	Time   time.Time
}

// Sheet is one named grid of cells. Row 1 is reserved for column headers.
type Sheet struct {
	Name string
	Rows [][]Cell
}

// Workbook is the transient in-memory form of an uploaded spreadsheet.
// It is owned by a single import attempt and never persisted.
type Workbook struct {
	Sheets []Sheet
}

// First returns the first sheet, or nil for an empty workbook.
func (w *Workbook) First() *Sheet {
	if w == nil || len(w.Sheets) == 0 {
		return nil
	}
	return &w.Sheets[0]
}

// Normalize resolves a cell to a primitive value, in priority order:
// formula result, rich text, date (full ISO-8601), number, plain string.
// Empty cells resolve to "" rather than a null-like value.
func (c Cell) Normalize() any {
	switch c.Kind {
	case CellFormula:
		return c.Value
	case CellRichText:
		return c.Value
	case CellDate:
		return c.Time.UTC().Format(time.RFC3339)
	case CellNumber:
		return c.Number
	case CellString:
		return c.Value
	default:
		return ""
	}
}

// headerString renders a cell for use as a column header.
// Empty cells render as "" so the caller can apply a positional fallback.
func (c Cell) headerString() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		return c.Time.UTC().Format(time.RFC3339)
	case CellEmpty:
		return ""
	default:
		return c.Value
	}
}
