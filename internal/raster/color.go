package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// Hex parses "#RRGGBB" or "#RGB".
func Hex(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustHex is Hex for compile-time constants.
func MustHex(s string) color.NRGBA {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its opacity replaced by a in [0, 1].
func WithAlpha(c color.Color, a float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	switch {
	case a <= 0:
		n.A = 0
	case a >= 1:
		n.A = 255
	default:
		n.A = uint8(a*255 + 0.5)
	}
	return n
}

// Blend mixes a and b in RGB space; t=0 yields a.
func Blend(a, b color.Color, t float64) color.NRGBA {
	ca, _ := colorful.MakeColor(opaque(a))
	cb, _ := colorful.MakeColor(opaque(b))
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: 255}
}

func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}

// RampPalette returns a palette holding base, every ink, and steps-2
// intermediate blends between base and each ink, which covers the
// antialiased edges of ink drawn on base.
func RampPalette(base color.Color, inks []color.Color, steps int) color.Palette {
	if steps < 2 {
		steps = 2
	}
	seen := make(map[color.NRGBA]bool)
	var pal color.Palette
	add := func(c color.NRGBA) {
		if !seen[c] && len(pal) < 256 {
			seen[c] = true
			pal = append(pal, c)
		}
	}
	add(color.NRGBAModel.Convert(opaque(base)).(color.NRGBA))
	for _, ink := range inks {
		add(color.NRGBAModel.Convert(opaque(ink)).(color.NRGBA))
	}
	for _, ink := range inks {
		for i := 1; i < steps-1; i++ {
			add(Blend(base, ink, float64(i)/float64(steps-1)))
		}
	}
	return pal
}

// Quantize maps img onto pal, choosing the nearest palette entry per pixel.
func Quantize(img image.Image, pal color.Palette) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	draw.Draw(p, p.Bounds(), img, b.Min, draw.Src)
	return p
}
