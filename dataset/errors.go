package dataset

import "fmt"

// DataLoadError reports a table that could not be read or is not shaped like
// the layout expects. Line is 1-based; zero means the whole source.
type DataLoadError struct {
	Source string
	Line   int
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("could not load %s (line %d): %v", e.Source, e.Line, e.Err)
	}

	return fmt.Sprintf("could not load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

func loadErr(source string, line int, format string, args ...interface{}) *DataLoadError {
	return &DataLoadError{Source: source, Line: line, Err: fmt.Errorf(format, args...)}
}
