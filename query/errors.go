package query

import (
	"errors"
	"fmt"
)

// Parse failures
var (
	// ErrInvalidSyntax is returned when the statement does not match SELECT ... FROM ... [WHERE ...]
	ErrInvalidSyntax = errors.New("invalid SQL")

	// ErrInvalidColumn is returned for a select item that is not *, an identifier or COUNT(...)
	ErrInvalidColumn = errors.New("invalid column token in SELECT")

	// ErrInvalidTable is returned for a table reference with characters outside [A-Za-z0-9_-]
	ErrInvalidTable = errors.New("invalid table name")

	// ErrInvalidWhere is returned when the condition is not column op value
	ErrInvalidWhere = errors.New("invalid WHERE clause")
)

// Execution failures
var (
	// ErrTableNotFound is returned when the data source for a table does not exist
	ErrTableNotFound = errors.New("table/file not found")

	// ErrLoadFailed is returned when a data source exists but cannot be read
	ErrLoadFailed = errors.New("failed to load table")

	// ErrColumnNotFound is returned when a referenced column is not in the table
	ErrColumnNotFound = errors.New("column not found")

	// ErrUnsupportedComparison is returned when a numeric value is compared with text
	ErrUnsupportedComparison = errors.New("unsupported comparison between types")

	// ErrMixedAggregate is returned when COUNT is combined with other select items
	ErrMixedAggregate = errors.New("only a single COUNT aggregate is supported")

	// ErrInvalidAggregate is returned for an aggregate token the executor cannot evaluate
	ErrInvalidAggregate = errors.New("invalid COUNT token")
)

// ParseError reports a statement that does not match the supported grammar
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string { return e.Msg }

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(sentinel error, format string, args ...interface{}) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Err: sentinel}
}

// ExecutionError reports a failure while loading, filtering or projecting.
// No partial result accompanies it.
type ExecutionError struct {
	Msg string
	Err error
}

func (e *ExecutionError) Error() string { return e.Msg }

func (e *ExecutionError) Unwrap() error { return e.Err }

func execErrorf(sentinel error, format string, args ...interface{}) *ExecutionError {
	return &ExecutionError{Msg: fmt.Sprintf(format, args...), Err: sentinel}
}

// IsParseError reports whether err is or wraps a *ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsExecutionError reports whether err is or wraps an *ExecutionError
func IsExecutionError(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee)
}
