package workbook

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) Cell { return Cell{Kind: CellString, Value: s} }
func num(n float64) Cell { return Cell{Kind: CellNumber, Number: n} }

func TestProjectHeaderFallback(t *testing.T) {
	sheet := &Sheet{Rows: [][]Cell{
		{str("poNumber"), {Kind: CellEmpty}, str("poQty")},
		{str("PO-1"), str("something"), num(5)},
	}}

	proj := Project(sheet, 0)

	require.Equal(t, []string{"poNumber", "Column2", "poQty"}, proj.Headers)
	require.Len(t, proj.Records, 1)
	assert.Equal(t, "something", proj.Records[0]["Column2"])
}

func TestProjectReservedHeadersNeverEmitted(t *testing.T) {
	sheet := &Sheet{Rows: [][]Cell{
		{str("__proto__"), str("constructor"), str("prototype"), str("name")},
		{str("poison"), str("poison"), str("poison"), str("ok")},
	}}

	proj := Project(sheet, 0)

	require.Len(t, proj.Records, 1)
	record := proj.Records[0]
	assert.NotContains(t, record, "__proto__")
	assert.NotContains(t, record, "constructor")
	assert.NotContains(t, record, "prototype")
	assert.Equal(t, "ok", record["name"])
}

func TestProjectIsIdempotent(t *testing.T) {
	sheet := &Sheet{Rows: [][]Cell{
		{str("a"), str("b")},
		{str("1"), num(2)},
		{num(3), str("4")},
	}}

	first := Project(sheet, 0)
	second := Project(sheet, 0)

	require.Equal(t, first, second, "no hidden counters or timestamps")
}

func TestProjectDropsEmptyRowsSilently(t *testing.T) {
	sheet := &Sheet{Rows: [][]Cell{
		{str("a"), str("b")},
		{{Kind: CellEmpty}, {Kind: CellEmpty}},
		{str("x"), {Kind: CellEmpty}},
		{},
	}}

	proj := Project(sheet, 0)

	require.Len(t, proj.Records, 1)
	assert.Equal(t, "x", proj.Records[0]["a"])
	assert.False(t, proj.Truncated)
}

func TestProjectStopsAtRowCap(t *testing.T) {
	rows := [][]Cell{{str("n")}}
	for i := 0; i < 5; i++ {
		rows = append(rows, []Cell{str(fmt.Sprintf("row-%d", i))})
	}
	sheet := &Sheet{Rows: rows}

	proj := Project(sheet, 2)

	// Accumulation stops at the cap; the cap is reported, not raised.
	require.Len(t, proj.Records, 2)
	assert.True(t, proj.Truncated)
	assert.Equal(t, "row-0", proj.Records[0]["n"])
	assert.Equal(t, "row-1", proj.Records[1]["n"])
}

func TestProjectSkipsCellsBeyondHeaderRow(t *testing.T) {
	sheet := &Sheet{Rows: [][]Cell{
		{str("only")},
		{str("kept"), str("dropped: no header derived for this column")},
	}}

	proj := Project(sheet, 0)

	require.Len(t, proj.Records, 1)
	require.Len(t, proj.Records[0], 1)
	assert.Equal(t, "kept", proj.Records[0]["only"])
}

func TestNormalizePriorityOrder(t *testing.T) {
	when := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cell Cell
		want any
	}{
		{"formula result wins", Cell{Kind: CellFormula, Value: "42"}, "42"},
		{"rich text collapses", Cell{Kind: CellRichText, Value: "bold text"}, "bold text"},
		{"date renders ISO-8601", Cell{Kind: CellDate, Time: when}, "2025-01-01T00:00:00Z"},
		{"number passes through", Cell{Kind: CellNumber, Number: 50}, float64(50)},
		{"string passes through", Cell{Kind: CellString, Value: "PO-1"}, "PO-1"},
		{"empty resolves to empty string, never nil", Cell{Kind: CellEmpty}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cell.Normalize())
		})
	}
}

func TestProjectEmptySheet(t *testing.T) {
	assert.Empty(t, Project(&Sheet{}, 0).Records)
	assert.Empty(t, Project(nil, 0).Records)
}
