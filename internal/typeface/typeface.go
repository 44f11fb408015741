// Package typeface acquires font faces for rendered text.
//
// Acquisition is two-step: try a preferred Source, and when that fails for any
// reason use the built-in 7x13 bitmap face, which is always available. The
// failure is reported in the Resolution rather than returned as an error, so
// callers can log a warning and carry on.
package typeface

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrInvalidSize is returned for non-positive face sizes.
var ErrInvalidSize = errors.New("font size must be positive")

// Source produces a face at a pixel size.
type Source interface {
	Name() string
	Face(size float64) (font.Face, error)
}

// File is a TrueType or OpenType font on disk.
type File struct {
	Path string
}

// Name implements Source.
func (f File) Name() string { return f.Path }

// Face implements Source.
func (f File) Face(size float64) (font.Face, error) {
	if f.Path == "" {
		return nil, errors.New("no font path configured")
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return newFace(data, size)
}

// Embedded is a font compiled into the binary.
type Embedded struct {
	Label string
	Data  []byte
}

// Name implements Source.
func (e Embedded) Name() string { return e.Label }

// Face implements Source.
func (e Embedded) Face(size float64) (font.Face, error) {
	return newFace(e.Data, size)
}

// Go font family, used for diagrams where typography must not vary by host.
var (
	GoRegular = Embedded{Label: "Go Regular", Data: goregular.TTF}
	GoBold    = Embedded{Label: "Go Bold", Data: gobold.TTF}
	GoItalic  = Embedded{Label: "Go Italic", Data: goitalic.TTF}
)

func newFace(data []byte, size float64) (font.Face, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // size is in pixels
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return face, nil
}

// BuiltinName identifies the fallback face in a Resolution.
const BuiltinName = "basicfont 7x13"

// Builtin returns the guaranteed-available fallback face.
func Builtin() font.Face {
	return basicfont.Face7x13
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Face     font.Face
	Name     string
	Fallback bool  // true when the preferred source could not be used
	Cause    error // why the preferred source failed; nil unless Fallback
}

// Resolve acquires preferred at size, or the built-in face when that fails.
// A nil preferred source goes straight to the fallback.
func Resolve(preferred Source, size float64) Resolution {
	if preferred == nil {
		return Resolution{Face: Builtin(), Name: BuiltinName, Fallback: true, Cause: errors.New("no preferred font")}
	}
	face, err := preferred.Face(size)
	if err != nil {
		return Resolution{Face: Builtin(), Name: BuiltinName, Fallback: true, Cause: err}
	}
	return Resolution{Face: face, Name: preferred.Name()}
}

// MustFace returns an embedded face and panics on failure. The Go fonts are
// compiled in, so failure here is a programming error (a bad size).
func MustFace(e Embedded, size float64) font.Face {
	face, err := e.Face(size)
	if err != nil {
		panic(fmt.Sprintf("typeface: %s at %.1fpx: %v", e.Label, size, err))
	}
	return face
}

// ChartFont returns Go Regular parsed for the freetype renderer used by charts.
func ChartFont() (*truetype.Font, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart font: %w", err)
	}
	return f, nil
}
