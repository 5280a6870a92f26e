package etl

import "fmt"

// ResourceError means the input could not be opened or read.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("cannot read input '%s': %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// FormatError means a line did not split into the expected number of tokens.
type FormatError struct {
	Path string
	Line int
	Text string
	Want int
	Got  int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: expected %d tokens, got %d in %q", e.Path, e.Line, e.Want, e.Got, e.Text)
}

// PersistenceError means a chunk could not be stored. Index is the position
// of the failing record within the chunk, or -1 when the failure was not
// tied to a record.
type PersistenceError struct {
	Op    string
	Index int
	Err   error
}

func (e *PersistenceError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s failed at chunk item %d: %v", e.Op, e.Index, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
