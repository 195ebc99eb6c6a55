package models

// WorkbookInfo describes a resolved workbook.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Path is the absolute path the file name resolved to.
	Path string `json:"path"`
	// Sheets lists sheet names in file order.
	Sheets []string `json:"sheets"`
}
