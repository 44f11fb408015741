// Package ocr reads text back out of rendered images using Tesseract.
//
// Recognition is optional. It needs the Tesseract C library and its English
// training data, so it is only compiled in with the "ocr" build tag:
//
//	go build -tags ocr ./cmd/visualgen
//
// Ubuntu/Debian: apt-get install libtesseract-dev tesseract-ocr-eng
// macOS: brew install tesseract
//
// Without the tag every entry point returns ErrUnavailable, and Available
// reports false.
package ocr
