package diagram

import (
	"image"
	"image/color"

	"github.com/gaitlab/visualgen/internal/raster"
	"github.com/gaitlab/visualgen/internal/typeface"
)

// DefaultDPI is used when Options.DPI is zero.
const DefaultDPI = 150

// Options controls rendering of both diagram kinds.
type Options struct {
	DPI         int  // pixels per inch; DefaultDPI when zero
	Supersample int  // supersampling factor; 2 when zero
	DebugGrid   bool // overlay a one-unit world grid with coordinates
}

func (o Options) withDefaults() Options {
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.Supersample <= 0 {
		o.Supersample = 2
	}
	return o
}

// pt converts a size in points to logical pixels.
func (o Options) pt(v float64) float64 { return v * float64(o.DPI) / 72 }

// Rendered is a finished diagram and the mapping it was drawn with.
type Rendered struct {
	Image    image.Image
	Viewport raster.Viewport
}

var (
	boldFont   = typeface.GoBold
	italicFont = typeface.GoItalic

	ink       = color.RGBA{0, 0, 0, 255}
	shadowInk = raster.WithAlpha(color.Black, 0.25)
)

// sheet allocates the canvas for a figure of the given size in inches.
func sheet(wIn, hIn float64, o Options) *raster.Canvas {
	return raster.New(int(wIn*float64(o.DPI)), int(hIn*float64(o.DPI)), color.White, o.Supersample)
}

// plotArea is the pixel rectangle below the title band, inset by a fixed
// side margin and the given bottom margin.
func plotArea(c *raster.Canvas, o Options, bottom float64) raster.Rect {
	w, h := c.Size()
	m := o.pt(10)
	return raster.R(m, o.pt(40), float64(w)-m, float64(h)-bottom)
}

func drawTitle(c *raster.Canvas, title string, size float64, o Options) {
	if title == "" {
		return
	}
	w, _ := c.Size()
	face := c.Face(boldFont, size)
	c.Text(face, title, raster.Pt{X: float64(w) / 2, Y: o.pt(22)}, raster.Center, raster.Middle, ink)
}

func finish(c *raster.Canvas, vp raster.Viewport, o Options) *Rendered {
	img := c.Image()
	if o.DebugGrid {
		img = raster.GridOverlay(img, vp, raster.GridOptions{Step: 1, ShowCoordinates: true})
	}
	return &Rendered{Image: img, Viewport: vp}
}

// Write saves r as PNG recording the DPI it was rendered at.
func (r *Rendered) Write(path string, dpi int) error {
	return raster.SavePNG(path, r.Image, dpi)
}
