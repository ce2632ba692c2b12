package ingest

import "fmt"

// MalformedInputError reports a record with fewer fields than a resolved
// column needs.
type MalformedInputError struct {
	File   string
	Line   int // 1-based, header is line 1
	Fields int
	Column string
	Index  int
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("input file %s is broken: line %d has %d fields, column %s needs index %d",
		e.File, e.Line, e.Fields, e.Column, e.Index)
}

// NoInputError reports a missing, unreadable or empty input directory.
type NoInputError struct {
	Dir string
	Err error
}

func (e *NoInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no input file found in %s: %v", e.Dir, e.Err)
	}
	return fmt.Sprintf("no input file found in %s", e.Dir)
}

func (e *NoInputError) Unwrap() error { return e.Err }
