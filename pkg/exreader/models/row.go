// Package models defines data structures for spreadsheet extraction.
package models

// Row represents a single sheet row. Blank rows have no cells.
type Row struct {
	// Num is the sheet row number (1-based).
	Num int `json:"r"`
	// Cells holds the cell values in column order (0-based). Empty cells are nil.
	// Values are string, int64, float64, bool or time.Time.
	Cells []interface{} `json:"c"`
}

// Cell returns the value at column col, or nil when the row is shorter.
func (r Row) Cell(col int) interface{} {
	if col < 0 || col >= len(r.Cells) {
		return nil
	}
	return r.Cells[col]
}

// IsBlank reports whether every cell in the row is empty.
func (r Row) IsBlank() bool {
	for _, v := range r.Cells {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		return false
	}
	return true
}
