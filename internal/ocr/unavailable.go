//go:build !ocr

package ocr

import "image"

// Available reports whether recognition is compiled in.
func Available() bool { return false }

// ReadFile always fails with ErrUnavailable in this build.
func ReadFile(path, lang string) (*Result, error) { return nil, ErrUnavailable }

// ReadImage always fails with ErrUnavailable in this build.
func ReadImage(img image.Image, lang string) (*Result, error) { return nil, ErrUnavailable }

// Version returns an empty string in this build.
func Version() string { return "" }
