package parser

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ukaji3/exreader-go/pkg/exreader/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Marker values delimiting a game data table.
const (
	TypeMarker       = "type"
	EndMarker        = "###"
	AnnotationMarker = "ps"
)

// ErrMarkerNotFound indicates a sentinel marker is missing from its scan window.
var ErrMarkerNotFound = errors.New("marker not found")

// ErrNoHeaderRow indicates the type marker sits on the first row, leaving no header above it.
var ErrNoHeaderRow = errors.New("no header row above type marker")

// SentinelParams holds parameters for sentinel table extraction.
type SentinelParams struct {
	// ScanRows is the number of leading rows searched for the type marker.
	ScanRows int
}

// DefaultSentinelParams returns default sentinel extraction parameters.
func DefaultSentinelParams() SentinelParams {
	return SentinelParams{
		ScanRows: 20,
	}
}

// IndexInColumn returns the index of the first row whose cell at col equals
// marker exactly. Only string cells match. The bool is false when no row matches.
func IndexInColumn(rows []models.Row, col int, marker string) (int, bool) {
	for i, row := range rows {
		if s, ok := row.Cell(col).(string); ok && s == marker {
			return i, true
		}
	}
	return -1, false
}

// IndexInRow returns the index of the first cell of row equal to marker exactly.
// The bool is false when no cell matches.
func IndexInRow(row models.Row, marker string) (int, bool) {
	for i, v := range row.Cells {
		if s, ok := v.(string); ok && s == marker {
			return i, true
		}
	}
	return -1, false
}

// ExtractTable extracts the sentinel-delimited table from the rows of a sheet,
// as returned by ReadGrid. Blank rows count as rows and become all-null records.
//
// The first column of the leading params.ScanRows rows must contain "type".
// The row above it names the fields, the row below it is discarded, and the
// first "###" cell of the type row bounds the columns. Rows annotated "ps"
// in the first column are dropped, and the table ends before the row that
// precedes the first "###" in the first column.
func ExtractTable(rows []models.Row, params SentinelParams) (*models.Table, models.Bounds, error) {
	var b models.Bounds

	window := rows
	if params.ScanRows > 0 && len(window) > params.ScanRows {
		window = window[:params.ScanRows]
	}

	typeRow, ok := IndexInColumn(window, 0, TypeMarker)
	if !ok {
		return nil, b, fmt.Errorf("%w: %q in first column of the first %d rows", ErrMarkerNotFound, TypeMarker, len(window))
	}
	if typeRow == 0 {
		return nil, b, fmt.Errorf("%w: %q found on row %d", ErrNoHeaderRow, TypeMarker, rows[0].Num)
	}
	b.TypeRow = typeRow
	b.HeaderRow = typeRow - 1
	b.InfoRow = typeRow + 1

	endCol, ok := IndexInRow(rows[typeRow], EndMarker)
	if !ok {
		return nil, b, fmt.Errorf("%w: %q in type row %d", ErrMarkerNotFound, EndMarker, rows[typeRow].Num)
	}
	b.EndCol = endCol

	columns := HeaderNames(rows[b.HeaderRow], endCol)

	// Data rows follow the header, skipping the type and info rows.
	var data []models.Row
	for i := b.HeaderRow + 1; i < len(rows); i++ {
		if i == b.TypeRow || i == b.InfoRow {
			continue
		}
		data = append(data, rows[i])
	}
	data = dropAnnotations(data)

	endRow, ok := IndexInColumn(data, 0, EndMarker)
	if !ok {
		return nil, b, fmt.Errorf("%w: %q in first column below the header", ErrMarkerNotFound, EndMarker)
	}
	b.EndRow = endRow

	// The row preceding the end marker is trimmed along with the marker.
	keep := endRow - 1
	if keep < 0 {
		keep = 0
	}
	data = data[:keep]

	table := &models.Table{Columns: columns, Rows: make([][]interface{}, 0, len(data))}
	for _, row := range data {
		table.Rows = append(table.Rows, rowValues(row, endCol))
	}
	b.Rows = len(table.Rows)

	last := rows[b.HeaderRow].Num
	if len(data) > 0 {
		last = data[len(data)-1].Num
	}
	b.Range = rangeRef(rows[b.HeaderRow].Num, last, endCol)

	return table, b, nil
}

// BuildTable uses the first sheet row as field names and every later row,
// blank or not, as a record. All columns up to the widest row are kept.
func BuildTable(rows []models.Row) *models.Table {
	table := &models.Table{Columns: []string{}, Rows: [][]interface{}{}}
	if len(rows) == 0 {
		return table
	}

	width := 0
	for _, row := range rows {
		if len(row.Cells) > width {
			width = len(row.Cells)
		}
	}

	table.Columns = HeaderNames(rows[0], width)
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, rowValues(row, width))
	}
	return table
}

// HeaderNames returns width field names taken from row.
// Empty cells are named "Unnamed: <col>" and repeated names get ".1", ".2" suffixes.
func HeaderNames(row models.Row, width int) []string {
	names := make([]string, width)
	used := make(map[string]bool, width)
	next := make(map[string]int, width)
	for i := 0; i < width; i++ {
		base := CellText(row.Cell(i))
		if base == "" {
			base = "Unnamed: " + strconv.Itoa(i)
		}
		name := base
		for used[name] {
			next[base]++
			name = base + "." + strconv.Itoa(next[base])
		}
		used[name] = true
		names[i] = name
	}
	return names
}

// CellText renders a cell value as text for use as a field name.
func CellText(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02T15:04:05.000")
	default:
		return fmt.Sprint(x)
	}
}

// dropAnnotations removes rows whose first cell is "ps" in any letter case.
func dropAnnotations(rows []models.Row) []models.Row {
	lower := cases.Lower(language.Und)
	kept := rows[:0:0]
	for _, row := range rows {
		if s, ok := row.Cell(0).(string); ok && lower.String(s) == AnnotationMarker {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

// rowValues returns the first width cells of row, padding with nil.
func rowValues(row models.Row, width int) []interface{} {
	values := make([]interface{}, width)
	copy(values, row.Cells)
	return values
}

// rangeRef converts 1-based rows and an exclusive column bound to A1 notation.
func rangeRef(firstRow, lastRow, endCol int) string {
	if endCol < 1 {
		return ""
	}
	startCell, _ := excelize.CoordinatesToCellName(1, firstRow)
	endCell, _ := excelize.CoordinatesToCellName(endCol, lastRow)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}
