package metrics

import "errors"

// Sentinel error kinds for this package.
var (
	ErrRegister = errors.New("metrics: register collector")
	ErrWrite    = errors.New("metrics: write textfile")
)
