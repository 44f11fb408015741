package compare

import "errors"

var (
	// ErrShapeMismatch reports recordings that do not share a time base.
	ErrShapeMismatch = errors.New("recordings are not aligned")

	// ErrNoData reports a recording without rows.
	ErrNoData = errors.New("recording has no samples")
)
