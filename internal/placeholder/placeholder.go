package placeholder

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaitlab/visualgen/internal/raster"
	"github.com/gaitlab/visualgen/internal/typeface"
	"golang.org/x/image/font"
)

// Watermark is drawn near the bottom edge of every static placeholder.
const Watermark = "PLACEHOLDER - Replace with actual image"

// DefaultFrameDelay is the display time of one animation frame.
const DefaultFrameDelay = 500 * time.Millisecond

const (
	borderWidth     = 3
	watermarkBottom = 40 // distance of the watermark top from the bottom edge
	lineGutter      = 10
	staticDivisor   = 15 // text size is min(width, height) / staticDivisor
	animDivisor     = 20
	paletteSteps    = 8
)

// DefaultBackground fills static placeholders.
var DefaultBackground = color.RGBA{240, 240, 245, 255}

var (
	borderInk    = color.RGBA{100, 100, 120, 255}
	textInk      = color.RGBA{60, 60, 80, 255}
	watermarkInk = color.RGBA{150, 150, 160, 255}
)

// AnimationPalette holds the background of each animation frame, in order.
var AnimationPalette = []color.Color{
	color.RGBA{240, 240, 245, 255},
	color.RGBA{245, 240, 240, 255},
	color.RGBA{240, 245, 240, 255},
	color.RGBA{245, 245, 240, 255},
}

// Spec describes one placeholder image.
type Spec struct {
	Width, Height int
	Text          string // lines separated by "\n"

	// Background of a static image. Nil means DefaultBackground.
	Background color.Color

	// Frames, when non-empty, makes the image animated with one frame per
	// background color.
	Frames []color.Color

	// FrameDelay is the uniform display time per frame. Zero means
	// DefaultFrameDelay.
	FrameDelay time.Duration
}

// Animated reports whether s describes a multi-frame image.
func (s Spec) Animated() bool { return len(s.Frames) > 0 }

func (s Spec) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidSpec, s.Width, s.Height)
	}
	return nil
}

func (s Spec) delay() time.Duration {
	if s.FrameDelay <= 0 {
		return DefaultFrameDelay
	}
	return s.FrameDelay
}

// Result describes a written placeholder.
type Result struct {
	Path   string
	Frames int
	Font   typeface.Resolution // face used for the main text
}

// Synthesizer renders placeholders with a preferred font.
type Synthesizer struct {
	// Font is tried first at every size; nil always uses the built-in face.
	Font typeface.Source
}

// RenderStatic draws the single-frame placeholder for s.
func (z Synthesizer) RenderStatic(s Spec) (image.Image, typeface.Resolution, error) {
	if err := s.validate(); err != nil {
		return nil, typeface.Resolution{}, err
	}
	bg := s.Background
	if bg == nil {
		bg = DefaultBackground
	}

	size := min(s.Width, s.Height) / staticDivisor
	main := typeface.Resolve(z.Font, float64(size))
	mark := main
	if !main.Fallback {
		mark = typeface.Resolve(z.Font, float64(size/2))
	}

	c := raster.New(s.Width, s.Height, bg, 1)
	drawBorder(c)
	w, h := float64(s.Width), float64(s.Height)
	center := raster.Pt{X: w / 2, Y: h / 2}
	if lines := splitLines(s.Text); len(lines) > 1 {
		c.TextBlock(main.Face, lines, center, raster.Center, raster.Middle, textInk)
	} else {
		c.Text(main.Face, s.Text, center, raster.Center, raster.Middle, textInk)
	}
	c.Text(mark.Face, Watermark, raster.Pt{X: w / 2, Y: h - watermarkBottom}, raster.Center, raster.Top, watermarkInk)
	return c.Image(), main, nil
}

// RenderAnimated draws one paletted frame per entry of s.Frames.
func (z Synthesizer) RenderAnimated(s Spec) ([]*image.Paletted, typeface.Resolution, error) {
	if err := s.validate(); err != nil {
		return nil, typeface.Resolution{}, err
	}
	if !s.Animated() {
		return nil, typeface.Resolution{}, fmt.Errorf("%w: no frame colors", ErrInvalidSpec)
	}

	res := typeface.Resolve(z.Font, float64(min(s.Width, s.Height)/animDivisor))
	n := len(s.Frames)
	frames := make([]*image.Paletted, 0, n)
	for i, bg := range s.Frames {
		lines := append(splitLines(s.Text), fmt.Sprintf("Frame %d/%d", i+1, n))
		c := raster.New(s.Width, s.Height, bg, 1)
		drawBorder(c)
		stackLines(c, res.Face, lines, float64(s.Height/3))
		pal := raster.RampPalette(bg, []color.Color{borderInk, textInk}, paletteSteps)
		frames = append(frames, raster.Quantize(c.Image(), pal))
	}
	return frames, res, nil
}

// Write renders s and writes it to path: a looping GIF when s is animated,
// otherwise a static image in the format given by the path extension.
func (z Synthesizer) Write(s Spec, path string) (*Result, error) {
	if s.Animated() {
		frames, res, err := z.RenderAnimated(s)
		if err != nil {
			return nil, err
		}
		if err := raster.SaveGIF(path, frames, s.delay()); err != nil {
			return nil, err
		}
		return &Result{Path: path, Frames: len(frames), Font: res}, nil
	}

	img, res, err := z.RenderStatic(s)
	if err != nil {
		return nil, err
	}
	if err := raster.Save(path, img); err != nil {
		return nil, err
	}
	return &Result{Path: path, Frames: 1, Font: res}, nil
}

// WriteAll writes every entry of entries under root, stopping at the first
// failure.
func (z Synthesizer) WriteAll(root string, entries []Entry) ([]*Result, error) {
	out := make([]*Result, 0, len(entries))
	for _, e := range entries {
		r, err := z.Write(e.Spec, filepath.Join(root, filepath.FromSlash(e.Path)))
		if err != nil {
			return out, fmt.Errorf("failed to write %s: %w", e.Path, err)
		}
		out = append(out, r)
	}
	return out, nil
}

func drawBorder(c *raster.Canvas) {
	b := c.Bounds()
	c.StrokeRect(b.Inset(borderWidth/2.0), borderWidth, borderInk)
}

// stackLines centres each line horizontally, the first with its top at y,
// advancing by the line's ink height plus a fixed gutter.
func stackLines(c *raster.Canvas, face font.Face, lines []string, y float64) {
	w, _ := c.Size()
	for _, line := range lines {
		box := c.Text(face, line, raster.Pt{X: float64(w) / 2, Y: y}, raster.Center, raster.Top, textInk)
		y += box.Dy() + lineGutter
	}
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
