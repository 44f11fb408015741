package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/vector"
)

// Canvas is a drawing surface addressed in logical pixels.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	img    *image.RGBA
	w, h   int     // logical size
	scale  float64 // device pixels per logical pixel
	origin Pt      // device offset applied after scaling
	faces  map[faceKey]font.Face
}

type faceKey struct {
	label string
	size  float64
}

// New returns a w x h canvas filled with bg and supersampled by scale.
// A scale below 1 is treated as 1.
func New(w, h int, bg color.Color, scale int) *Canvas {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{
		img:   img,
		w:     w,
		h:     h,
		scale: float64(scale),
		faces: make(map[faceKey]font.Face),
	}
}

// FromImage returns an unscaled canvas holding a copy of img.
func FromImage(img image.Image) *Canvas {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Canvas{
		img:   dst,
		w:     b.Dx(),
		h:     b.Dy(),
		scale: 1,
		faces: make(map[faceKey]font.Face),
	}
}

// Size returns the logical width and height.
func (c *Canvas) Size() (int, int) { return c.w, c.h }

// Bounds returns the logical bounds as a Rect.
func (c *Canvas) Bounds() Rect { return R(0, 0, float64(c.w), float64(c.h)) }

// Scale returns the supersampling factor.
func (c *Canvas) Scale() float64 { return c.scale }

// Image returns the canvas at its logical size. Without supersampling the
// backing image itself is returned and later drawing will show through.
func (c *Canvas) Image() image.Image {
	if c.scale == 1 {
		return c.img
	}
	return imaging.Resize(c.img, c.w, c.h, imaging.Lanczos)
}

func (c *Canvas) dev(p Pt) Pt {
	return Pt{p.X*c.scale + c.origin.X, p.Y*c.scale + c.origin.Y}
}

// fillPolys fills closed polygons given in logical pixels with col.
// Callers normalise winding; see positive and ring.
func (c *Canvas) fillPolys(polys [][]Pt, col color.Color) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	devPolys := make([][]Pt, 0, len(polys))
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		d := make([]Pt, len(poly))
		for i, p := range poly {
			q := c.dev(p)
			d[i] = q
			minX, minY = math.Min(minX, q.X), math.Min(minY, q.Y)
			maxX, maxY = math.Max(maxX, q.X), math.Max(maxY, q.Y)
		}
		devPolys = append(devPolys, d)
	}
	if len(devPolys) == 0 {
		return
	}

	r := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, d := range devPolys {
		z.MoveTo(float32(d[0].X-ox), float32(d[0].Y-oy))
		for _, q := range d[1:] {
			z.LineTo(float32(q.X-ox), float32(q.Y-oy))
		}
		z.ClosePath()
	}
	z.Draw(c.img, r, image.NewUniform(col), image.Point{})
}

// FillPolygon fills an arbitrary simple polygon.
func (c *Canvas) FillPolygon(pts []Pt, col color.Color) {
	c.fillPolys([][]Pt{positive(pts)}, col)
}

// FillRect fills r.
func (c *Canvas) FillRect(r Rect, col color.Color) {
	c.FillPolygon(rectPoly(r), col)
}

// StrokeRect outlines r with a line of the given width centred on its edge.
// A non-empty dash pattern (on, off, on, off, ...) draws a dashed outline.
func (c *Canvas) StrokeRect(r Rect, width float64, col color.Color, dash ...float64) {
	if len(dash) > 0 {
		pts := rectPoly(r)
		pts = append(pts, pts[0])
		c.DashedPolyline(pts, width, dash, col)
		return
	}
	c.fillPolys(ring(rectPoly(r.Inset(-width/2)), rectPoly(r.Inset(width/2))), col)
}

// FillRoundedRect fills r with corners of the given radius.
func (c *Canvas) FillRoundedRect(r Rect, radius float64, col color.Color) {
	c.FillPolygon(roundedRectPoly(r, radius, c.arcSteps(radius)), col)
}

// StrokeRoundedRect outlines a rounded rectangle.
func (c *Canvas) StrokeRoundedRect(r Rect, radius, width float64, col color.Color) {
	outer := roundedRectPoly(r.Inset(-width/2), radius+width/2, c.arcSteps(radius+width/2))
	inner := roundedRectPoly(r.Inset(width/2), math.Max(radius-width/2, 0), c.arcSteps(radius))
	c.fillPolys(ring(outer, inner), col)
}

// FillCircle fills a circle.
func (c *Canvas) FillCircle(center Pt, radius float64, col color.Color) {
	c.FillPolygon(circlePoly(center, radius, c.circleSteps(radius)), col)
}

// StrokeCircle outlines a circle.
func (c *Canvas) StrokeCircle(center Pt, radius, width float64, col color.Color) {
	n := c.circleSteps(radius + width/2)
	c.fillPolys(ring(circlePoly(center, radius+width/2, n), circlePoly(center, math.Max(radius-width/2, 0), n)), col)
}

// Line draws a straight segment with butt ends.
func (c *Canvas) Line(a, b Pt, width float64, col color.Color) {
	c.Polyline([]Pt{a, b}, width, col)
}

// Polyline draws connected segments with round joins.
func (c *Canvas) Polyline(pts []Pt, width float64, col color.Color) {
	c.fillPolys(c.strokePolys(pts, width), col)
}

// DashedPolyline draws pts with the dash pattern (on, off, ...), in pixels.
func (c *Canvas) DashedPolyline(pts []Pt, width float64, dash []float64, col color.Color) {
	var polys [][]Pt
	for _, piece := range dashPieces(pts, dash) {
		polys = append(polys, c.strokePolys(piece, width)...)
	}
	c.fillPolys(polys, col)
}

// Arrow draws a shaft from a to b ending in a filled head at b.
func (c *Canvas) Arrow(a, b Pt, width, headLen, headWidth float64, col color.Color) {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return
	}
	u := d.Mul(1 / l)
	if headLen > l {
		headLen = l
	}
	base := b.Sub(u.Mul(headLen))
	polys := c.strokePolys([]Pt{a, base.Add(u.Mul(math.Min(width, headLen) / 2))}, width)
	polys = append(polys, positive(headPoly(b, u, headLen, headWidth)))
	c.fillPolys(polys, col)
}

// DoubleArrow draws a shaft between a and b with heads at both ends.
func (c *Canvas) DoubleArrow(a, b Pt, width, headLen, headWidth float64, col color.Color) {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return
	}
	u := d.Mul(1 / l)
	if 2*headLen > l {
		headLen = l / 2
	}
	pad := math.Min(width, headLen) / 2
	s0 := a.Add(u.Mul(headLen - pad))
	s1 := b.Sub(u.Mul(headLen - pad))
	polys := c.strokePolys([]Pt{s0, s1}, width)
	polys = append(polys,
		positive(headPoly(b, u, headLen, headWidth)),
		positive(headPoly(a, u.Mul(-1), headLen, headWidth)),
	)
	c.fillPolys(polys, col)
}

func headPoly(tip, u Pt, length, width float64) []Pt {
	n := Pt{-u.Y, u.X}.Mul(width / 2)
	base := tip.Sub(u.Mul(length))
	return []Pt{tip, base.Add(n), base.Sub(n)}
}

func (c *Canvas) strokePolys(pts []Pt, width float64) [][]Pt {
	var polys [][]Pt
	hw := width / 2
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		d := b.Sub(a)
		l := d.Len()
		if l == 0 {
			continue
		}
		n := Pt{-d.Y / l * hw, d.X / l * hw}
		polys = append(polys, positive([]Pt{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}))
	}
	for i := 1; i+1 < len(pts); i++ {
		polys = append(polys, positive(circlePoly(pts[i], hw, c.circleSteps(hw))))
	}
	return polys
}

// dashPieces splits a polyline into the "on" parts of a dash pattern.
func dashPieces(pts []Pt, dash []float64) [][]Pt {
	total := 0.0
	for _, d := range dash {
		total += d
	}
	if len(dash) == 0 || total <= 0 {
		return [][]Pt{pts}
	}

	var pieces [][]Pt
	var cur []Pt
	idx, left := 0, dash[0]
	on := true
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		seg := b.Sub(a)
		segLen := seg.Len()
		pos := 0.0
		for segLen-pos > 1e-9 {
			step := math.Min(left, segLen-pos)
			p0 := a.Add(seg.Mul(pos / segLen))
			p1 := a.Add(seg.Mul((pos + step) / segLen))
			if on {
				if len(cur) == 0 {
					cur = append(cur, p0)
				}
				cur = append(cur, p1)
			}
			pos += step
			left -= step
			if left <= 1e-9 {
				if on && len(cur) > 1 {
					pieces = append(pieces, cur)
				}
				cur = nil
				idx = (idx + 1) % len(dash)
				left = dash[idx]
				on = idx%2 == 0
			}
		}
	}
	if on && len(cur) > 1 {
		pieces = append(pieces, cur)
	}
	return pieces
}

func (c *Canvas) circleSteps(r float64) int {
	n := int(r * c.scale)
	if n < 24 {
		return 24
	}
	if n > 360 {
		return 360
	}
	return n
}

func (c *Canvas) arcSteps(r float64) int {
	return c.circleSteps(r)/4 + 1
}

func rectPoly(r Rect) []Pt {
	return []Pt{r.Min, {r.Max.X, r.Min.Y}, r.Max, {r.Min.X, r.Max.Y}}
}

func circlePoly(center Pt, r float64, n int) []Pt {
	pts := make([]Pt, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = Pt{center.X + r*math.Cos(a), center.Y + r*math.Sin(a)}
	}
	return pts
}

func roundedRectPoly(r Rect, radius float64, steps int) []Pt {
	radius = math.Min(radius, math.Min(r.Dx(), r.Dy())/2)
	if radius <= 0 {
		return rectPoly(r)
	}
	corners := []struct {
		c     Pt
		start float64
	}{
		{Pt{r.Max.X - radius, r.Min.Y + radius}, -math.Pi / 2},
		{Pt{r.Max.X - radius, r.Max.Y - radius}, 0},
		{Pt{r.Min.X + radius, r.Max.Y - radius}, math.Pi / 2},
		{Pt{r.Min.X + radius, r.Min.Y + radius}, math.Pi},
	}
	pts := make([]Pt, 0, 4*(steps+1))
	for _, k := range corners {
		for i := 0; i <= steps; i++ {
			a := k.start + math.Pi/2*float64(i)/float64(steps)
			pts = append(pts, Pt{k.c.X + radius*math.Cos(a), k.c.Y + radius*math.Sin(a)})
		}
	}
	return pts
}

func signedArea(pts []Pt) float64 {
	s := 0.0
	for i := range pts {
		j := (i + 1) % len(pts)
		s += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return s / 2
}

// positive returns pts in positive winding order.
func positive(pts []Pt) []Pt {
	if signedArea(pts) >= 0 {
		return pts
	}
	out := make([]Pt, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

// ring returns the polygons of the area between outer and inner.
func ring(outer, inner []Pt) [][]Pt {
	in := positive(inner)
	rev := make([]Pt, len(in))
	for i, p := range in {
		rev[len(in)-1-i] = p
	}
	return [][]Pt{positive(outer), rev}
}
