package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gaitlab/visualgen/internal/typeface"
)

// HAlign is the horizontal anchor of a text run.
type HAlign int

const (
	Left HAlign = iota
	Center
	Right
)

// VAlign is the vertical anchor of a text run.
type VAlign int

const (
	Top VAlign = iota
	Middle
	Bottom
	Baseline
)

// LineSpacing is the default distance between baselines as a multiple of
// the face height.
const LineSpacing = 1.2

// TextMetrics describes one line of text in logical pixels. Bounds is the
// ink box relative to the dot, so Bounds.Min.Y is negative for glyphs above
// the baseline.
type TextMetrics struct {
	Bounds  Rect
	Advance float64
}

// Face returns e at size logical pixels, rendered at the canvas scale.
// Faces are cached per canvas.
func (c *Canvas) Face(e typeface.Embedded, size float64) font.Face {
	k := faceKey{label: e.Label, size: size}
	if f, ok := c.faces[k]; ok {
		return f
	}
	f := typeface.MustFace(e, size*c.scale)
	c.faces[k] = f
	return f
}

// Measure returns the metrics of s in face. The face must have been
// obtained for this canvas scale.
func (c *Canvas) Measure(face font.Face, s string) TextMetrics {
	b, adv := font.BoundString(face, s)
	return TextMetrics{
		Bounds: Rect{
			Pt{fromFixed(b.Min.X) / c.scale, fromFixed(b.Min.Y) / c.scale},
			Pt{fromFixed(b.Max.X) / c.scale, fromFixed(b.Max.Y) / c.scale},
		},
		Advance: fromFixed(adv) / c.scale,
	}
}

// Text draws s anchored at p by its ink box and returns that box.
func (c *Canvas) Text(face font.Face, s string, p Pt, h HAlign, v VAlign, col color.Color) Rect {
	m := c.Measure(face, s)
	dot := Pt{anchorX(m, p.X, h), p.Y}
	switch v {
	case Top:
		dot.Y = p.Y - m.Bounds.Min.Y
	case Middle:
		dot.Y = p.Y - (m.Bounds.Min.Y+m.Bounds.Max.Y)/2
	case Bottom:
		dot.Y = p.Y - m.Bounds.Max.Y
	}
	c.drawString(face, s, dot, col)
	return Rect{m.Bounds.Min.Add(dot), m.Bounds.Max.Add(dot)}
}

func anchorX(m TextMetrics, x float64, h HAlign) float64 {
	switch h {
	case Center:
		return x - (m.Bounds.Min.X+m.Bounds.Max.X)/2
	case Right:
		return x - m.Bounds.Max.X
	default:
		return x - m.Bounds.Min.X
	}
}

func (c *Canvas) drawString(face font.Face, s string, dot Pt, col color.Color) {
	d := c.dev(dot)
	dr := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(d.X), Y: toFixed(d.Y)},
	}
	dr.DrawString(s)
}

type blockLine struct {
	text string
	dot  Pt
}

// layoutBlock positions lines as one block around p. Every line is aligned
// on its own by h; the block as a whole is anchored by v using the face
// ascent and descent.
func (c *Canvas) layoutBlock(face font.Face, lines []string, p Pt, h HAlign, v VAlign) ([]blockLine, Rect) {
	fm := face.Metrics()
	ascent := fromFixed(fm.Ascent) / c.scale
	descent := fromFixed(fm.Descent) / c.scale
	step := (ascent + descent) * LineSpacing
	height := ascent + descent + step*float64(len(lines)-1)

	top := p.Y
	switch v {
	case Middle:
		top = p.Y - height/2
	case Bottom:
		top = p.Y - height
	case Baseline:
		top = p.Y - ascent
	}

	out := make([]blockLine, len(lines))
	box := Rect{Pt{math.Inf(1), top}, Pt{math.Inf(-1), top + height}}
	for i, s := range lines {
		m := c.Measure(face, s)
		dot := Pt{anchorX(m, p.X, h), top + ascent + step*float64(i)}
		out[i] = blockLine{text: s, dot: dot}
		box.Min.X = math.Min(box.Min.X, dot.X+m.Bounds.Min.X)
		box.Max.X = math.Max(box.Max.X, dot.X+m.Bounds.Max.X)
	}
	if math.IsInf(box.Min.X, 1) {
		box.Min.X, box.Max.X = p.X, p.X
	}
	return out, box
}

// TextBlock draws several lines as one block and returns its box.
func (c *Canvas) TextBlock(face font.Face, lines []string, p Pt, h HAlign, v VAlign, col color.Color) Rect {
	laid, box := c.layoutBlock(face, lines, p, h, v)
	for _, l := range laid {
		c.drawString(face, l.text, l.dot, col)
	}
	return box
}

// LabelStyle describes the rounded box drawn behind a text block.
type LabelStyle struct {
	Fill      color.Color
	Edge      color.Color // nil for no outline
	EdgeWidth float64
	Pad       float64
	Radius    float64
}

// Label draws a text block on a rounded box and returns the box.
func (c *Canvas) Label(face font.Face, lines []string, p Pt, h HAlign, v VAlign, col color.Color, st LabelStyle) Rect {
	laid, box := c.layoutBlock(face, lines, p, h, v)
	box = box.Inset(-st.Pad)
	if st.Fill != nil {
		c.FillRoundedRect(box, st.Radius, st.Fill)
	}
	if st.Edge != nil && st.EdgeWidth > 0 {
		c.StrokeRoundedRect(box, st.Radius, st.EdgeWidth, st.Edge)
	}
	for _, l := range laid {
		c.drawString(face, l.text, l.dot, col)
	}
	return box
}

// TextVertical draws s rotated a quarter turn counter-clockwise with its
// ink box centred on p, as used for y axis labels.
func (c *Canvas) TextVertical(face font.Face, s string, p Pt, col color.Color) {
	b, _ := font.BoundString(face, s)
	w := (b.Max.X - b.Min.X).Ceil() + 2
	h := (b.Max.Y - b.Min.Y).Ceil() + 2
	if w <= 2 || h <= 2 {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	dr := &font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(1) - b.Min.X, Y: fixed.I(1) - b.Min.Y},
	}
	dr.DrawString(s)

	rot := imaging.Rotate90(tmp)
	d := c.dev(p)
	rb := rot.Bounds()
	at := image.Pt(int(math.Round(d.X))-rb.Dx()/2, int(math.Round(d.Y))-rb.Dy()/2)
	draw.Draw(c.img, rb.Sub(rb.Min).Add(at), rot, rb.Min, draw.Over)
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
