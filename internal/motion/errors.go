package motion

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	// ErrDataUnavailable reports that the motion file does not exist.
	ErrDataUnavailable = errors.New("motion data unavailable")

	// ErrMalformedData reports a data row that could not be parsed.
	ErrMalformedData = errors.New("malformed motion data")
)

// ParseError describes the first offending line of a motion file.
type ParseError struct {
	Line  int    // 1-based line number in the file
	Token string // offending token, empty for width mismatches
	Err   error  // underlying cause
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("line %d: invalid number %q: %v", e.Line, e.Token, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Is makes every ParseError match ErrMalformedData.
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedData
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
