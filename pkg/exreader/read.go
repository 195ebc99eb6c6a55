package exreader

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ukaji3/exreader-go/pkg/exreader/models"
	"github.com/ukaji3/exreader-go/pkg/exreader/parser"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads a whole sheet of filename. The first sheet row names
// the fields and every later row becomes a record. An empty sheetName selects
// the first sheet.
func (w *Workspace) ReadSheet(filename, sheetName string) (*models.Table, error) {
	path, err := w.resolve("read", filename)
	if err != nil {
		return nil, err
	}

	f, err := w.open("read", path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheetName == "" {
		if sheetName, err = firstSheet(f); err != nil {
			return nil, NewError(KindInvalidInput, "read", filename, err)
		}
	} else if !slices.Contains(f.GetSheetList(), sheetName) {
		return nil, NewError(KindInvalidInput, "read", filename, fmt.Errorf("%w: %q", errUnknownSheet, sheetName))
	}

	rows, err := parser.ReadGrid(f, sheetName, 0)
	if err != nil {
		return nil, readError("read", filename, err)
	}

	table := parser.BuildTable(rows)
	table.SheetName = sheetName
	w.opts.logger().Debug("sheet read", "file", filename, "sheet", sheetName, "rows", table.Len())
	return table, nil
}

// readError classifies an error raised while reading sheet rows.
func readError(op, filename string, err error) error {
	var missing excelize.ErrSheetNotExist
	if errors.As(err, &missing) {
		return NewError(KindInvalidInput, op, filename, err)
	}
	return NewError(KindIOFailure, op, filename, err)
}
