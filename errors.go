package canvastable

import (
	"errors"
	"fmt"
)

// Sentinel errors for table rendering failure conditions.
var (
	ErrNotGenerated = errors.New("canvastable: table has not been generated, call Generate first")
	ErrNotAvailable = errors.New("canvastable: not available on this surface")
	ErrInvalidParam = errors.New("canvastable: invalid parameter")
	errStageOrder   = errors.New("canvastable: render stage out of order")
)

// TableError represents an error that occurred during a specific table
// operation. It wraps an underlying error and includes the operation name.
type TableError struct {
	Op  string // operation name, e.g. "Generate", "RenderToBuffer"
	Err error  // underlying error
}

func (e *TableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("canvastable.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("canvastable.%s: unknown error", e.Op)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

func newTableError(op string, err error) *TableError {
	return &TableError{Op: op, Err: err}
}
