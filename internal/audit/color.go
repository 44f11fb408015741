package audit

import (
	"fmt"
	"image"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor is an 8-bit RGB triple.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSLColor is a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorFrequency is a quantized color and the share of pixels it covers.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // "#RRGGBB" (quantized)
	Percentage float64  `json:"percentage"` // 0-100
	RGB        RGBColor `json:"rgb"`
	HSL        HSLColor `json:"hsl"`
}

// DominantColors returns at most count of the most common quantized colors
// in img, most common first.
//
// Parameters:
//   - img: The image to analyze. Every pixel is visited.
//   - count: Maximum number of colors to return; non-positive returns none.
//
// Colors covering the same share are ordered by hex value so that repeated
// runs report identical lists.
func DominantColors(img image.Image, count int) []ColorFrequency {
	if count <= 0 {
		return nil
	}
	bounds := img.Bounds()
	counts := make(map[RGBColor]int)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			counts[RGBColor{quantize(r), quantize(g), quantize(b)}]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	out := make([]ColorFrequency, 0, len(counts))
	for c, n := range counts {
		out = append(out, newFrequency(c, float64(n)*100/float64(total)))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Percentage != out[j].Percentage {
			return out[i].Percentage > out[j].Percentage
		}
		return out[i].Hex < out[j].Hex
	})
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func quantize(v uint32) uint8 {
	return uint8((v >> 8) / 16 * 16)
}

func newFrequency(c RGBColor, pct float64) ColorFrequency {
	cf := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	h, s, l := cf.Hsl()
	return ColorFrequency{
		Hex:        fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		Percentage: pct,
		RGB:        c,
		HSL:        HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}
