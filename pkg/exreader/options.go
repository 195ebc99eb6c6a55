// Package exreader locates spreadsheet files in resource folders and
// converts their sheets into records.
package exreader

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ukaji3/exreader-go/pkg/exreader/output"
	"github.com/ukaji3/exreader-go/pkg/exreader/parser"
)

// DefaultArtifactPath is where extracted game tables are also written.
const DefaultArtifactPath = "output.json"

// Options configures a Workspace.
type Options struct {
	// Folders lists absolute resource folders in search order.
	Folders []string
	// Encoding selects the JSON encoding of records.
	Encoding output.Encoding
	// ArtifactPath receives a copy of each extracted game table. Empty disables it.
	ArtifactPath string
	// ScanRows is the number of leading rows searched for the type marker.
	// Zero means the default of 20.
	ScanRows int
	// Password opens encrypted workbooks.
	Password string
	// Logger receives diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default options with no resource folders.
func DefaultOptions() Options {
	return Options{
		ArtifactPath: DefaultArtifactPath,
		ScanRows:     parser.DefaultSentinelParams().ScanRows,
	}
}

// ParseFolders splits a comma-separated folder list. Each entry is trimmed,
// stripped of trailing separators and made absolute; empty entries are skipped.
func ParseFolders(raw string) []string {
	folders := []string{}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		entry = filepath.Clean(entry)
		if abs, err := filepath.Abs(entry); err == nil {
			entry = abs
		}
		folders = append(folders, entry)
	}
	return folders
}

func (o Options) sentinelParams() parser.SentinelParams {
	params := parser.DefaultSentinelParams()
	if o.ScanRows > 0 {
		params.ScanRows = o.ScanRows
	}
	return params
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}
