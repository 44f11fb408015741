package raster

import "errors"

// ErrWrite reports that an output image could not be encoded or written.
var ErrWrite = errors.New("failed to write image")
