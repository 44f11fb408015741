package raster

import (
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// Shadow paints onto a transparent layer covering area, blurs the layer
// with a gaussian of the given radius and composites it under offset.
// Everything paint draws outside area plus three radii is clipped.
func (c *Canvas) Shadow(area Rect, offset Pt, radius float64, paint func(layer *Canvas)) {
	a := area.Inset(-3 * radius)
	lo, hi := c.dev(a.Min), c.dev(a.Max)
	r := image.Rect(
		int(math.Floor(lo.X)), int(math.Floor(lo.Y)),
		int(math.Ceil(hi.X)), int(math.Ceil(hi.Y)),
	)
	if r.Empty() {
		return
	}

	layer := &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())),
		w:      c.w,
		h:      c.h,
		scale:  c.scale,
		origin: Pt{c.origin.X - float64(r.Min.X), c.origin.Y - float64(r.Min.Y)},
		faces:  c.faces,
	}
	paint(layer)

	blurred := blur.Gaussian(layer.img, radius*c.scale)
	shift := image.Pt(int(math.Round(offset.X*c.scale)), int(math.Round(offset.Y*c.scale)))
	draw.Draw(c.img, r.Add(shift), blurred, image.Point{}, draw.Over)
}
