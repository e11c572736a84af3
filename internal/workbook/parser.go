// =============================================================================
// PO Tracker - Bounded Spreadsheet Parser
// =============================================================================
//
// Loads a workbook from raw upload bytes under hard resource bounds:
//   - the upload must first pass the acceptance policy (re-checked here),
//   - decoding races a wall-clock timeout,
//   - the result must have between 1 and MaxSheets sheets.
//
// The caller only ever observes one settled outcome. If the timeout fires
// first, the in-flight decode is abandoned; its eventual result is discarded
// through a buffered channel.
//
// CSV uploads decode through encoding/csv into a single-sheet workbook so the
// rest of the pipeline is container-agnostic. Excel uploads decode through
// excelize.
//
// =============================================================================

package workbook

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bhikandeshmukh/po-tracker-sub001/internal/upload"
)

// Default resource bounds, applied when the caller leaves a field zero.
const (
	DefaultTimeout   = 10 * time.Second
	DefaultMaxRows   = 10000
	DefaultMaxSheets = 10
)

// Sentinel errors for the parse failure categories.
var (
	// ErrRejected wraps acceptance-policy failures surfaced through Parse.
	ErrRejected = errors.New("file validation failed")
	// ErrParseTimeout indicates decoding did not finish within the timeout.
	ErrParseTimeout = errors.New("parsing timed out")
	// ErrNoSheets indicates the container decoded but holds no sheets.
	ErrNoSheets = errors.New("no sheets found in file")
	// ErrTooManySheets indicates the sheet count exceeds the ceiling.
	ErrTooManySheets = errors.New("too many sheets in file")
)

// ParseConfig bounds one parse call. Zero fields take the defaults above.
type ParseConfig struct {
	Timeout   time.Duration
	MaxRows   int
	MaxSheets int
}

func (c ParseConfig) withDefaults() ParseConfig {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRows <= 0 {
		c.MaxRows = DefaultMaxRows
	}
	if c.MaxSheets <= 0 {
		c.MaxSheets = DefaultMaxSheets
	}
	return c
}

// Parser decodes uploads into workbooks.
type Parser struct {
	// decode is swapped in tests to simulate slow or malformed containers.
	decode func(name string, data []byte) (*Workbook, error)
}

// NewParser returns a parser using the real decoders.
func NewParser() *Parser {
	return &Parser{decode: decode}
}

// Parse loads a workbook from the candidate's bytes under the given bounds.
//
// Acceptance is re-validated first; any violation surfaces as a single
// ErrRejected-wrapped message joining the individual errors, and no decoding
// is attempted. Decode failures are wrapped with their underlying cause.
func (p *Parser) Parse(ctx context.Context, candidate *upload.Candidate, data []byte, cfg ParseConfig) (*Workbook, error) {
	cfg = cfg.withDefaults()

	if res := upload.Validate(candidate); !res.Valid {
		return nil, fmt.Errorf("%w: %s", ErrRejected, strings.Join(res.Errors, "; "))
	}

	type outcome struct {
		wb  *Workbook
		err error
	}

	// Buffered so an abandoned decode can still complete and be collected by
	// the garbage collector instead of leaking a goroutine.
	done := make(chan outcome, 1)
	go func() {
		wb, err := p.decode(candidate.Name, data)
		done <- outcome{wb: wb, err: err}
	}()

	timer := time.NewTimer(cfg.Timeout)
	defer timer.Stop()

	var wb *Workbook
	select {
	case o := <-done:
		if o.err != nil {
			return nil, fmt.Errorf("failed to parse file: %w", o.err)
		}
		wb = o.wb
	case <-timer.C:
		return nil, fmt.Errorf("%w after %s", ErrParseTimeout, cfg.Timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if len(wb.Sheets) == 0 {
		return nil, ErrNoSheets
	}
	if len(wb.Sheets) > cfg.MaxSheets {
		return nil, fmt.Errorf("%w: %d sheets, limit is %d", ErrTooManySheets, len(wb.Sheets), cfg.MaxSheets)
	}

	return wb, nil
}

// decode dispatches on the file extension.
func decode(name string, data []byte) (*Workbook, error) {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return decodeCSV(name, data)
	}
	return decodeExcel(data)
}

// decodeCSV reads the bytes as a CSV document and wraps it as a one-sheet
// workbook named after the file.
func decodeCSV(name string, data []byte) (*Workbook, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV content: %w", err)
	}

	sheetName := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	sheet := Sheet{Name: sheetName}
	for _, row := range rows {
		cells := make([]Cell, len(row))
		for i, v := range row {
			if v == "" {
				cells[i] = Cell{Kind: CellEmpty}
			} else {
				cells[i] = Cell{Kind: CellString, Value: v}
			}
		}
		sheet.Rows = append(sheet.Rows, cells)
	}

	return &Workbook{Sheets: []Sheet{sheet}}, nil
}

// decodeExcel reads the bytes as an OOXML workbook through excelize.
func decodeExcel(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb := &Workbook{}
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
		}

		sheet := Sheet{Name: sheetName}
		for r, row := range rows {
			cells := make([]Cell, len(row))
			for c, formatted := range row {
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, fmt.Errorf("failed to address cell in sheet %q: %w", sheetName, err)
				}
				cells[c] = readCell(f, sheetName, axis, formatted)
			}
			sheet.Rows = append(sheet.Rows, cells)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}

// dateLayouts are the formats excelize renders date-styled cells with,
// plus the ISO forms users type by hand.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06 15:04",
}

// readCell classifies one cell into the tagged union.
func readCell(f *excelize.File, sheet, axis, formatted string) Cell {
	if formatted == "" {
		return Cell{Kind: CellEmpty}
	}

	// Formula cells carry their evaluated (cached) result as the value.
	if formula, err := f.GetCellFormula(sheet, axis); err == nil && formula != "" {
		return Cell{Kind: CellFormula, Value: formatted}
	}

	// Rich text runs collapse to their concatenated text.
	if runs, err := f.GetCellRichText(sheet, axis); err == nil && len(runs) > 1 {
		var b strings.Builder
		for _, run := range runs {
			b.WriteString(run.Text)
		}
		return Cell{Kind: CellRichText, Value: b.String()}
	}

	// Date-styled cells arrive pre-formatted; recover the instant.
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, formatted); err == nil {
			return Cell{Kind: CellDate, Time: t}
		}
	}

	if n, err := strconv.ParseFloat(formatted, 64); err == nil {
		return Cell{Kind: CellNumber, Number: n}
	}

	return Cell{Kind: CellString, Value: formatted}
}
