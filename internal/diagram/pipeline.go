package diagram

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gaitlab/visualgen/internal/raster"
)

// Pipeline layout in world units. Boxes are stacked downwards from StartY;
// each box is drawn BoxPad larger than its nominal size on every side.
const (
	BoxLeft    = 1.0
	BoxWidth   = 4.0
	BoxHeight  = 1.0
	BoxPad     = 0.15
	BoxSpacing = 0.5
	StartY     = 9.0
	CenterX    = BoxLeft + BoxWidth/2

	pipelineWidthIn  = 12
	pipelineHeightIn = 10
	worldRight       = 6.0
)

// DefaultPipelineTitle heads the pipeline diagram.
const DefaultPipelineTitle = "Markerless Biomechanical Analysis Pipeline"

// Marker texts above the first and below the last stage.
const (
	InputLabel  = "INPUT: Raw Smartphone Videos"
	OutputLabel = "OUTPUT: Ground Reaction Forces"
)

// Stage is one step of the pipeline. Title and Subtitle may contain line
// breaks.
type Stage struct {
	Title    string
	Subtitle string
	Color    string // hex, e.g. "#FF6B6B"
}

// DefaultStages returns the seven stages of the markerless pipeline.
func DefaultStages() []Stage {
	return []Stage{
		{"1. Camera\nCalibration", "Intrinsic & Extrinsic\nParameters", "#FF6B6B"},
		{"2. Video\nEnhancement", "Deblurring &\nContrast", "#4ECDC4"},
		{"3. 2D Pose\nEstimation", "AlphaPose\nHALPE-26", "#45B7D1"},
		{"4. Camera\nSynchronization", "Cross-Correlation\nAlignment", "#FFA07A"},
		{"5. 3D\nTriangulation", "Weighted DLT\nReconstruction", "#98D8C8"},
		{"6. Marker\nMapping", "Hungarian\nAlgorithm", "#F7DC6F"},
		{"7. GRF\nEstimation", "OpenSim\nInverse Dynamics", "#BB8FCE"},
	}
}

// Pipeline is a linear sequence of stages drawn top to bottom.
type Pipeline struct {
	Title  string
	Stages []Stage
}

// DefaultPipeline returns the standard pipeline diagram.
func DefaultPipeline() Pipeline {
	return Pipeline{Title: DefaultPipelineTitle, Stages: DefaultStages()}
}

type worldPt struct{ X, Y float64 }

// pipelineLayout is the world geometry of a pipeline.
type pipelineLayout struct {
	boxes  []worldPt    // lower-left corner of each box
	arrows [][2]worldPt // from, to
	input  worldPt
	output worldPt
	yMin   float64
	yMax   float64
}

func stageY(i int) float64 {
	return StartY - float64(i)*(BoxHeight+BoxSpacing)
}

func layoutPipeline(n int) pipelineLayout {
	l := pipelineLayout{boxes: make([]worldPt, n)}
	for i := range l.boxes {
		l.boxes[i] = worldPt{BoxLeft, stageY(i)}
		if i+1 < n {
			l.arrows = append(l.arrows, [2]worldPt{
				{CenterX, stageY(i) - BoxPad},
				{CenterX, stageY(i+1) + BoxHeight + BoxPad},
			})
		}
	}
	// The sheet ends one full step below the last box.
	finalY := stageY(n)
	l.input = worldPt{CenterX, StartY + 1.2}
	l.output = worldPt{CenterX, finalY - 0.5}
	l.yMin = finalY - 1
	l.yMax = StartY + 1.5
	return l
}

var (
	subtitleInk   = raster.WithAlpha(color.White, 0.9)
	stageArrowInk = raster.WithAlpha(color.Black, 0.7)
)

type stageStyle struct {
	fill color.NRGBA
	edge color.NRGBA
}

func parseStages(stages []Stage) ([]stageStyle, error) {
	if len(stages) == 0 {
		return nil, ErrNoStages
	}
	out := make([]stageStyle, len(stages))
	for i, s := range stages {
		if strings.TrimSpace(s.Title) == "" {
			return nil, fmt.Errorf("%w: stage %d has no title", ErrInvalidStage, i+1)
		}
		c, err := raster.Hex(s.Color)
		if err != nil {
			return nil, fmt.Errorf("%w: stage %d: %w", ErrInvalidStage, i+1, err)
		}
		out[i] = stageStyle{fill: raster.WithAlpha(c, 0.9), edge: color.NRGBA{0, 0, 0, 255}}
	}
	return out, nil
}

// RenderPipeline draws one rounded box per stage, stacked top to bottom
// and joined by arrows, between an input marker above the first box and an
// output marker below the last.
func RenderPipeline(p Pipeline, opts Options) (*Rendered, error) {
	opts = opts.withDefaults()
	styles, err := parseStages(p.Stages)
	if err != nil {
		return nil, err
	}
	l := layoutPipeline(len(p.Stages))

	c := sheet(pipelineWidthIn, pipelineHeightIn, opts)
	vp := raster.NewViewport(0, l.yMin, worldRight, l.yMax, plotArea(c, opts, opts.pt(10)), false)
	drawTitle(c, p.Title, opts.pt(16), opts)

	radius := math.Min(vp.LenX(BoxPad), vp.LenY(BoxPad))
	rects := make([]raster.Rect, len(l.boxes))
	for i, b := range l.boxes {
		rects[i] = vp.Rect(b.X-BoxPad, b.Y-BoxPad, BoxWidth+2*BoxPad, BoxHeight+2*BoxPad)
	}

	titleFace := c.Face(boldFont, opts.pt(12))
	subFace := c.Face(italicFont, opts.pt(9))
	for i, r := range rects {
		c.Shadow(r, raster.Pt{X: opts.pt(3), Y: opts.pt(3)}, opts.pt(3), func(layer *raster.Canvas) {
			layer.FillRoundedRect(r, radius, shadowInk)
		})
		c.FillRoundedRect(r, radius, color.White)
		c.FillRoundedRect(r, radius, styles[i].fill)
		c.StrokeRoundedRect(r, radius, opts.pt(2.5), styles[i].edge)

		s := p.Stages[i]
		b := l.boxes[i]
		c.TextBlock(titleFace, lines(s.Title), vp.Pt(CenterX, b.Y+0.7), raster.Center, raster.Middle, color.White)
		if s.Subtitle != "" {
			c.TextBlock(subFace, lines(s.Subtitle), vp.Pt(CenterX, b.Y+0.2), raster.Center, raster.Middle, subtitleInk)
		}
	}

	for _, a := range l.arrows {
		c.Arrow(vp.Pt(a[0].X, a[0].Y), vp.Pt(a[1].X, a[1].Y), opts.pt(3), opts.pt(8), opts.pt(8), stageArrowInk)
	}

	markerFace := c.Face(boldFont, opts.pt(12))
	marker := func(text string, at worldPt, fill color.Color) {
		c.Label(markerFace, []string{text}, vp.Pt(at.X, at.Y), raster.Center, raster.Baseline, ink, raster.LabelStyle{
			Fill:   raster.WithAlpha(fill, 0.8),
			Pad:    opts.pt(4),
			Radius: opts.pt(4),
		})
	}
	marker(InputLabel, l.input, raster.MustHex("#D3D3D3"))
	marker(OutputLabel, l.output, raster.MustHex("#90EE90"))

	return finish(c, vp, opts), nil
}

// WritePipeline renders p and writes it to path as PNG.
func WritePipeline(p Pipeline, path string, opts Options) error {
	opts = opts.withDefaults()
	r, err := RenderPipeline(p, opts)
	if err != nil {
		return err
	}
	return r.Write(path, opts.DPI)
}

func lines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, `\n`, "\n"), "\n")
}
