package exreader

import (
	"os"
	"path/filepath"

	"github.com/richardlehane/mscfb"
	"github.com/ukaji3/exreader-go/pkg/exreader/models"
	"github.com/xuri/excelize/v2"
)

// SheetNames returns the sheet names of filename in file order.
func (w *Workspace) SheetNames(filename string) ([]string, error) {
	info, err := w.Catalog(filename)
	if err != nil {
		return nil, err
	}
	return info.Sheets, nil
}

// Catalog resolves filename and lists its sheets without reading cell data.
func (w *Workspace) Catalog(filename string) (*models.WorkbookInfo, error) {
	path, err := w.resolve("sheets", filename)
	if err != nil {
		return nil, err
	}

	f, err := w.open("sheets", path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return &models.WorkbookInfo{
		BookName: filepath.Base(path),
		Path:     path,
		Sheets:   f.GetSheetList(),
	}, nil
}

// open opens the workbook at path. Compound files that excelize cannot
// decrypt are reported as unsupported legacy workbooks.
func (w *Workspace) open(op, path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path, excelize.Options{Password: w.opts.Password})
	if err == nil {
		return f, nil
	}
	if isLegacyWorkbook(path) {
		err = errCompoundFile
	}
	return nil, NewError(KindIOFailure, op, path, err)
}

// isLegacyWorkbook reports whether path is a BIFF workbook inside a compound file.
func isLegacyWorkbook(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	doc, err := mscfb.New(file)
	if err != nil {
		return false
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry.Name == "Workbook" || entry.Name == "Book" {
			return true
		}
	}
	return false
}

// firstSheet returns the first sheet of f.
func firstSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] == "" {
		return "", errEmptyCatalog
	}
	return sheets[0], nil
}
