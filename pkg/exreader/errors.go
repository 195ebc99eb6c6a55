package exreader

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation.
type Kind string

const (
	// KindNotFound indicates a file name did not resolve against the resource folders.
	KindNotFound Kind = "not_found"
	// KindInvalidInput indicates an empty or unknown sheet name, or an empty sheet catalog.
	KindInvalidInput Kind = "invalid_input"
	// KindMalformedTable indicates a required sentinel marker is missing.
	KindMalformedTable Kind = "malformed_table"
	// KindIOFailure indicates the file could not be read or parsed.
	KindIOFailure Kind = "io_failure"
)

// Sentinel errors matched by errors.Is against any *Error of the same kind.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrMalformedTable = errors.New("malformed table")
	ErrIOFailure      = errors.New("io failure")
)

var kindErrors = map[Kind]error{
	KindNotFound:       ErrNotFound,
	KindInvalidInput:   ErrInvalidInput,
	KindMalformedTable: ErrMalformedTable,
	KindIOFailure:      ErrIOFailure,
}

// Error represents a failed operation on a spreadsheet file.
type Error struct {
	Kind Kind
	Op   string // "resolve", "sheets", "read", "extract", "list"
	File string
	Err  error
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.File, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for e's kind.
func (e *Error) Is(target error) bool {
	return kindErrors[e.Kind] == target
}

// NewError creates a new Error.
func NewError(kind Kind, op, file string, err error) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		File: file,
		Err:  err,
	}
}

// KindOf returns the kind of err. Errors not raised by this package are IO failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindIOFailure
}

var (
	errFileNotFound = errors.New("file not found in resource folders")
	errEmptyCatalog = errors.New("workbook has no sheets")
	errCompoundFile = errors.New("legacy binary workbook (compound file) is not supported; save it as .xlsx")
	errUnknownSheet = errors.New("sheet does not exist")
)
