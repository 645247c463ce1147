package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is wrapped when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedValue is wrapped when a cell cannot be parsed.
	ErrMalformedValue = errors.New("malformed value")
)

// DataSourceError reports an unreadable or malformed record source. It is
// fatal for loading and never retried.
type DataSourceError struct {
	Source string
	Line   int
	Column string
	Err    error
}

func (e *DataSourceError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("data source %s: line %d, column %q: %v", e.Source, e.Line, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("data source %s: column %q: %v", e.Source, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("data source %s: line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("data source %s: %v", e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }
