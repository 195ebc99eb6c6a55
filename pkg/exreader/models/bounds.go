package models

import "fmt"

// Bounds records where the sentinel markers were found during extraction.
// Row indexes are 0-based sheet rows in on-disk order; EndRow counts rows of
// the header-applied, annotation-filtered table.
type Bounds struct {
	// SheetName is the sheet the table was extracted from.
	SheetName string `json:"sheet_name"`
	// HeaderRow is the index of the field-name row.
	HeaderRow int `json:"header_row"`
	// TypeRow is the index of the row holding the "type" marker.
	TypeRow int `json:"type_row"`
	// InfoRow is the index of the discarded metadata row.
	InfoRow int `json:"info_row"`
	// EndCol is the exclusive column bound (index of the "###" column marker).
	EndCol int `json:"end_col"`
	// EndRow is the index of the "###" row marker in the filtered table.
	EndRow int `json:"end_row"`
	// Rows is the number of retained data rows.
	Rows int `json:"total_rows"`
	// Range is the A1-style range spanning the header and retained rows.
	Range string `json:"range,omitempty"`
}

func (b Bounds) String() string {
	return fmt.Sprintf("sheet: %q, header_row: %d, type_row: %d, info_row: %d, end_col: %d, end_row: %d, total_rows: %d, range: %s",
		b.SheetName, b.HeaderRow, b.TypeRow, b.InfoRow, b.EndCol, b.EndRow, b.Rows, b.Range)
}
