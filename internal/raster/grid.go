package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// GridOptions controls GridOverlay.
type GridOptions struct {
	Step            float64     // grid spacing in world units
	Color           color.Color // nil for semi-transparent red
	ShowCoordinates bool
}

// GridOverlay returns a copy of img with a world-unit grid from vp drawn on
// top. img must be the logical-size image the viewport was laid out on.
func GridOverlay(img image.Image, vp Viewport, opts GridOptions) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	gridColor := opts.Color
	if gridColor == nil {
		gridColor = color.NRGBA{255, 0, 0, 128}
	}
	if opts.Step <= 0 {
		return result
	}
	line := image.NewUniform(gridColor)

	x0, y0, x1, y1 := vp.World()
	xs := ticks(x0, x1, opts.Step)
	ys := ticks(y0, y1, opts.Step)

	for _, x := range xs {
		px := bounds.Min.X + int(math.Round(vp.Pt(x, y0).X))
		r := image.Rect(px, bounds.Min.Y, px+1, bounds.Max.Y)
		draw.Draw(result, r, line, image.Point{}, draw.Over)
	}
	for _, y := range ys {
		py := bounds.Min.Y + int(math.Round(vp.Pt(x0, y).Y))
		r := image.Rect(bounds.Min.X, py, bounds.Max.X, py+1)
		draw.Draw(result, r, line, image.Point{}, draw.Over)
	}

	if opts.ShowCoordinates {
		labelColor := color.RGBA{255, 255, 255, 255}
		bgColor := color.NRGBA{0, 0, 0, 180}
		for _, y := range ys {
			for _, x := range xs {
				p := vp.Pt(x, y)
				label := formatTick(x) + "," + formatTick(y)
				drawLabel(result, bounds.Min.X+int(math.Round(p.X))+2, bounds.Min.Y+int(math.Round(p.Y))+2, label, labelColor, bgColor)
			}
		}
	}
	return result
}

func ticks(lo, hi, step float64) []float64 {
	var out []float64
	for i := math.Ceil(lo/step - 1e-9); ; i++ {
		v := i * step
		if v > hi+1e-9 {
			break
		}
		out = append(out, v)
	}
	return out
}

func formatTick(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// drawLabel draws text with its top-left corner at (x, y) on a filled box.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.Color) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	box := image.Rect(x-1, y-1, x+w+1, y+face.Height)
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
}
