package audit

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrDecode reports a file that is not a readable PNG, JPEG or GIF.
	ErrDecode = errors.New("failed to decode image")

	// ErrRegion reports a crop region that is malformed or outside the image.
	ErrRegion = errors.New("invalid region")

	// ErrMismatch reports an artifact that differs from what was expected.
	ErrMismatch = errors.New("artifact mismatch")
)
