package etl

import "fmt"

// FileAccessError reports an input file that is missing or unreadable.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("open %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// ParseError reports a file that is not well-formed tabular data.
// Line is 0 when the failure is not tied to a line (empty file, missing column).
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError describes why one row was rejected.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// PersistenceError aborts a load pass at record Index.
type PersistenceError struct {
	Index  int
	Record Record
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("load record %d (%s / %s): %v", e.Index, e.Record.StoreName, e.Record.ProductName, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
