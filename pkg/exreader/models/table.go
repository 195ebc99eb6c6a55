package models

// Table represents rows of named fields read from a sheet.
type Table struct {
	// SheetName is the sheet the table was read from.
	SheetName string `json:"sheet_name"`
	// Columns holds the field names in header order.
	Columns []string `json:"columns"`
	// Rows holds one value slice per record, aligned with Columns.
	Rows [][]interface{} `json:"rows"`
}

// Field is a single named value of a record.
type Field struct {
	Name  string
	Value interface{}
}

// Record is one table row with its fields in header order.
type Record []Field

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Records returns the table rows as records. Missing trailing values are nil.
func (t *Table) Records() []Record {
	records := make([]Record, 0, t.Len())
	for _, row := range t.Rows {
		rec := make(Record, len(t.Columns))
		for i, name := range t.Columns {
			rec[i].Name = name
			if i < len(row) {
				rec[i].Value = row[i]
			}
		}
		records = append(records, rec)
	}
	return records
}
