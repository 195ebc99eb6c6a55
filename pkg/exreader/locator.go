package exreader

import (
	"os"
	"path/filepath"
)

// SpreadsheetExtensions lists the file extensions returned by SpreadsheetFiles, in listing order.
var SpreadsheetExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".xls"}

// Workspace answers requests against one configuration.
// It holds no open files or parsed sheets between calls.
type Workspace struct {
	opts Options
}

// New creates a Workspace for opts.
func New(opts Options) *Workspace {
	return &Workspace{opts: opts}
}

// ResourceFolders returns the configured resource folders in search order.
func (w *Workspace) ResourceFolders() []string {
	folders := make([]string, len(w.opts.Folders))
	copy(folders, w.opts.Folders)
	return folders
}

// Resolve returns the path of filename in the first resource folder containing it.
// Folders missing on disk are skipped. Names that are absolute or leave the
// folder never resolve.
func (w *Workspace) Resolve(filename string) (string, bool) {
	if filename == "" || !filepath.IsLocal(filename) {
		return "", false
	}
	for _, folder := range w.opts.Folders {
		if !isDir(folder) {
			continue
		}
		candidate := filepath.Join(folder, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// SpreadsheetFiles lists spreadsheet files across all existing resource folders.
func (w *Workspace) SpreadsheetFiles() ([]string, error) {
	files := []string{}
	for _, folder := range w.opts.Folders {
		if !isDir(folder) {
			continue
		}
		for _, ext := range SpreadsheetExtensions {
			matches, err := filepath.Glob(filepath.Join(globEscape(folder), "*"+ext))
			if err != nil {
				return nil, NewError(KindIOFailure, "list", folder, err)
			}
			files = append(files, matches...)
		}
	}
	return files, nil
}

// resolve is Resolve reporting a NotFound error.
func (w *Workspace) resolve(op, filename string) (string, error) {
	path, ok := w.Resolve(filename)
	if !ok {
		return "", NewError(KindNotFound, op, filename, errFileNotFound)
	}
	return path, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// globEscape escapes glob metacharacters in a literal path.
func globEscape(path string) string {
	escaped := make([]byte, 0, len(path))
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '*', '?', '[', '\\':
			if filepath.Separator != '\\' {
				escaped = append(escaped, '\\')
			}
		}
		escaped = append(escaped, path[i])
	}
	return string(escaped)
}
