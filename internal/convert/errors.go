package convert

import (
	"errors"
	"fmt"
)

var (
	// ErrBadHeader is returned for a problem line that is not of the form
	// "p cnf <variables> <clauses>", or for a second problem line.
	ErrBadHeader = errors.New("bad header")

	// ErrMissingHeader is returned for a clause line that comes before the
	// problem line.
	ErrMissingHeader = errors.New("clause line before header")

	// ErrBadClause is returned for a clause line with a token that is not an
	// integer.
	ErrBadClause = errors.New("bad clause line")

	// ErrLiteralRange is returned for a literal that refers to a variable
	// outside of [1, variables].
	ErrLiteralRange = errors.New("literal out of range")

	// ErrMappingSize is returned when there are fewer variable pairs than
	// variables to map.
	ErrMappingSize = errors.New("not enough variable pairs")
)

// LineError reports an error on a specific input line. Use errors.Is to test
// the kind of error.
type LineError struct {
	Line int    // 1-based
	Text string // raw content of the line
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
