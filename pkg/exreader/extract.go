package exreader

import (
	"errors"
	"os"

	"github.com/ukaji3/exreader-go/pkg/exreader/models"
	"github.com/ukaji3/exreader-go/pkg/exreader/output"
	"github.com/ukaji3/exreader-go/pkg/exreader/parser"
)

// ExtractGameTable extracts the sentinel-delimited table from the first sheet
// of filename and reports where its markers were found.
func (w *Workspace) ExtractGameTable(filename string) (*models.Table, models.Bounds, error) {
	var bounds models.Bounds

	path, err := w.resolve("extract", filename)
	if err != nil {
		return nil, bounds, err
	}

	f, err := w.open("extract", path)
	if err != nil {
		return nil, bounds, err
	}
	defer f.Close()

	sheetName, err := firstSheet(f)
	if err != nil {
		return nil, bounds, NewError(KindInvalidInput, "extract", filename, err)
	}

	rows, err := parser.ReadGrid(f, sheetName, 0)
	if err != nil {
		return nil, bounds, readError("extract", filename, err)
	}

	table, bounds, err := parser.ExtractTable(rows, w.opts.sentinelParams())
	if err != nil {
		if errors.Is(err, parser.ErrMarkerNotFound) || errors.Is(err, parser.ErrNoHeaderRow) {
			return nil, bounds, NewError(KindMalformedTable, "extract", filename, err)
		}
		return nil, bounds, NewError(KindIOFailure, "extract", filename, err)
	}
	table.SheetName = sheetName
	bounds.SheetName = sheetName

	w.opts.logger().Info("game table extracted",
		"file", filename,
		"sheet", sheetName,
		"header_row", bounds.HeaderRow,
		"type_row", bounds.TypeRow,
		"info_row", bounds.InfoRow,
		"end_col", bounds.EndCol,
		"end_row", bounds.EndRow,
		"total_rows", bounds.Rows,
		"range", bounds.Range)

	w.writeArtifact(table)
	return table, bounds, nil
}

// writeArtifact stores a copy of an extracted table at the artifact path.
// Failures are logged and do not affect the extraction result.
func (w *Workspace) writeArtifact(table *models.Table) {
	if w.opts.ArtifactPath == "" {
		return
	}
	data, err := output.RecordsJSON(table, w.opts.Encoding)
	if err == nil {
		err = os.WriteFile(w.opts.ArtifactPath, data, 0644)
	}
	if err != nil {
		w.opts.logger().Warn("failed to write extraction artifact", "path", w.opts.ArtifactPath, "error", err)
	}
}
