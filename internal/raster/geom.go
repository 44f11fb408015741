package raster

import "math"

// Pt is a point in logical pixels.
type Pt struct {
	X, Y float64
}

// Add returns p+q.
func (p Pt) Add(q Pt) Pt { return Pt{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Pt) Sub(q Pt) Pt { return Pt{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Pt) Mul(k float64) Pt { return Pt{p.X * k, p.Y * k} }

// Len returns the Euclidean length of p.
func (p Pt) Len() float64 { return math.Hypot(p.X, p.Y) }

// Rect is an axis-aligned rectangle in logical pixels; Min is the top-left corner.
type Rect struct {
	Min, Max Pt
}

// R is shorthand for a Rect from its corner coordinates.
func R(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Pt{x0, y0}, Pt{x1, y1}}
}

// Dx returns the width.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Center returns the midpoint.
func (r Rect) Center() Pt { return Pt{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2} }

// Inset shrinks r by d on every side; a negative d grows it.
func (r Rect) Inset(d float64) Rect {
	return Rect{Pt{r.Min.X + d, r.Min.Y + d}, Pt{r.Max.X - d, r.Max.Y - d}}
}

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		Pt{math.Min(r.Min.X, s.Min.X), math.Min(r.Min.Y, s.Min.Y)},
		Pt{math.Max(r.Max.X, s.Max.X), math.Max(r.Max.Y, s.Max.Y)},
	}
}

// Viewport maps world coordinates (Y up) onto a logical pixel rectangle (Y down).
type Viewport struct {
	world  Rect // Min = (xmin, ymin), Max = (xmax, ymax) in world units
	px     Rect
	sx, sy float64
	ox, oy float64 // pixel position of world (xmin, ymax)
}

// NewViewport fits the world window [x0,x1]x[y0,y1] into px. With equalAspect
// one world unit has the same pixel length on both axes and the world window
// is centred in px.
func NewViewport(x0, y0, x1, y1 float64, px Rect, equalAspect bool) Viewport {
	w := R(x0, y0, x1, y1)
	v := Viewport{world: w, px: px}
	v.sx = px.Dx() / w.Dx()
	v.sy = px.Dy() / w.Dy()
	v.ox, v.oy = px.Min.X, px.Min.Y
	if equalAspect {
		s := math.Min(v.sx, v.sy)
		v.ox += (px.Dx() - w.Dx()*s) / 2
		v.oy += (px.Dy() - w.Dy()*s) / 2
		v.sx, v.sy = s, s
	}
	return v
}

// Pt maps a world point to logical pixels.
func (v Viewport) Pt(x, y float64) Pt {
	return Pt{v.ox + (x-v.world.Min.X)*v.sx, v.oy + (v.world.Max.Y-y)*v.sy}
}

// Rect maps a world rectangle with lower-left (x, y) and size (w, h) to pixels.
func (v Viewport) Rect(x, y, w, h float64) Rect {
	a := v.Pt(x, y)
	b := v.Pt(x+w, y+h)
	return R(a.X, a.Y, b.X, b.Y)
}

// LenX converts a horizontal world length to pixels.
func (v Viewport) LenX(d float64) float64 { return d * v.sx }

// LenY converts a vertical world length to pixels.
func (v Viewport) LenY(d float64) float64 { return d * v.sy }

// World returns the world window.
func (v Viewport) World() (x0, y0, x1, y1 float64) {
	return v.world.Min.X, v.world.Min.Y, v.world.Max.X, v.world.Max.Y
}

// Pixels returns the pixel rectangle the viewport was fitted into.
func (v Viewport) Pixels() Rect { return v.px }
