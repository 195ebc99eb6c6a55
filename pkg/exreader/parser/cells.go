package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/exreader-go/pkg/exreader/models"
	"github.com/xuri/excelize/v2"
)

// ReadGrid reads the rows of a sheet with native cell values, in on-disk
// order: rows[i] is sheet row i+1. Blank rows are kept with nil cells;
// trailing blank rows are dropped. When maxRows is positive, reading stops
// after that many sheet rows.
func ReadGrid(f *excelize.File, sheetName string, maxRows int) ([]models.Row, error) {
	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := newDateStyles(f)
	var result []models.Row
	rowNum := 0
	for rows.Next() {
		rowNum++
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}

		row := models.Row{Num: rowNum, Cells: make([]interface{}, len(cols))}
		for colIdx, raw := range cols {
			if raw == "" {
				continue
			}
			cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			row.Cells[colIdx] = cellValue(f, sheetName, cellName, raw, dates)
		}
		if row.IsBlank() {
			row.Cells = nil
		}
		result = append(result, row)
		if maxRows > 0 && rowNum >= maxRows {
			break
		}
	}
	if err := rows.Error(); err != nil {
		return nil, err
	}

	for len(result) > 0 && result[len(result)-1].IsBlank() {
		result = result[:len(result)-1]
	}
	return result, nil
}

// cellValue converts a raw cell value according to the cell's stored type.
func cellValue(f *excelize.File, sheetName, cellName, raw string, dates *dateStyles) interface{} {
	typ, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return parseValue(raw)
	}

	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return raw
	case excelize.CellTypeDate:
		if t, ok := parseDateText(raw); ok {
			return t
		}
		return raw
	}

	// Numbers (explicit or untyped) and cached formula results.
	v := parseValue(raw)
	switch n := v.(type) {
	case int64:
		if dates.isDate(sheetName, cellName) {
			return dates.toTime(float64(n), raw)
		}
	case float64:
		if dates.isDate(sheetName, cellName) {
			return dates.toTime(n, raw)
		}
	}
	return v
}

// dateTextLayouts are the ISO-8601 forms stored in t="d" cells.
var dateTextLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"20060102T150405",
}

// parseDateText parses the stored text of a date-typed cell.
func parseDateText(s string) (time.Time, bool) {
	for _, layout := range dateTextLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
