package compare

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/gaitlab/visualgen/internal/raster"
	"github.com/gaitlab/visualgen/internal/typeface"
)

// FigureTitle is the default overall title of the comparison figure.
const FigureTitle = "Ground Reaction Force Estimation vs. Force Plate"

// Figure size in inches; pixels follow from the DPI.
const (
	figureWidthIn  = 12
	figureHeightIn = 4
)

// DefaultDPI is used when FigureOptions.DPI is zero.
const DefaultDPI = 150

var (
	plateStyle = chart.Style{
		StrokeColor: drawing.Color{R: 0, G: 0, B: 0, A: 255},
		StrokeWidth: 2.5,
	}
	estimateStyle = chart.Style{
		StrokeColor:     drawing.Color{R: 255, G: 0, B: 0, A: 255},
		StrokeWidth:     2,
		StrokeDashArray: []float64{6, 4},
	}
	gridStyle = chart.Style{
		StrokeColor: drawing.Color{R: 0, G: 0, B: 0, A: 77},
		StrokeWidth: 1,
	}
	statsFill = raster.WithAlpha(raster.MustHex("#F5DEB3"), 0.5)
	statsEdge = raster.WithAlpha(color.Black, 0.5)

	// legend mirrors the series styles; dash lengths are in points.
	legend = []legendEntry{
		{name: "Force Plate", color: color.Black},
		{name: "Estimated", color: color.RGBA{R: 255, A: 255}, dash: []float64{6, 4}},
	}
)

type legendEntry struct {
	name  string
	color color.Color
	dash  []float64
}

// FigureOptions controls RenderFigure.
type FigureOptions struct {
	DPI      int       // pixels per inch; DefaultDPI when zero
	Title    string    // FigureTitle when empty
	Channels []Channel // DefaultChannels when empty
}

func (o FigureOptions) withDefaults() FigureOptions {
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.Title == "" {
		o.Title = FigureTitle
	}
	if len(o.Channels) == 0 {
		o.Channels = DefaultChannels
	}
	return o
}

// Figure is a rendered comparison and the statistics shown on it.
type Figure struct {
	Image image.Image
	Stats []ChannelStats
}

// RenderFigure draws one panel per channel side by side under a shared
// title. Each panel overlays both signals on the shared time axis and
// shows the channel RMSE and Pearson r.
func RenderFigure(p Pair, opts FigureOptions) (*Figure, error) {
	opts = opts.withDefaults()
	stats, err := Compare(p.Reference, p.Estimate, opts.Channels)
	if err != nil {
		return nil, err
	}
	font, err := typeface.ChartFont()
	if err != nil {
		return nil, err
	}

	dpi := float64(opts.DPI)
	pt := func(v float64) float64 { return v * dpi / 72 }
	width, height := figureWidthIn*opts.DPI, figureHeightIn*opts.DPI
	band := int(pt(30))   // overall title
	header := int(pt(60)) // panel title and stats box
	panelW := width / len(stats)
	chartH := height - band - header
	if chartH <= 0 {
		return nil, fmt.Errorf("failed to lay out figure: %d dpi is too small", opts.DPI)
	}

	t := p.Reference.Time()
	fig := imaging.New(width, height, color.White)
	for i, cs := range stats {
		a, _ := p.Reference.Column(cs.Index)
		b, _ := p.Estimate.Column(cs.Index)
		panel, err := renderPanel(t, a, b, panelW, chartH, dpi, font)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s panel: %w", cs.Name, err)
		}
		fig = imaging.Paste(fig, panel, image.Pt(i*panelW, band+header))
	}

	c := raster.FromImage(fig)
	c.Text(c.Face(typeface.GoBold, pt(14)), opts.Title,
		raster.Pt{X: float64(width) / 2, Y: float64(band) / 2}, raster.Center, raster.Middle, color.Black)

	head := c.Face(typeface.GoBold, pt(12))
	body := c.Face(typeface.GoRegular, pt(10))
	for i, cs := range stats {
		left, right := float64(i*panelW), float64((i+1)*panelW)
		tb := c.Text(head, cs.Name+" GRF", raster.Pt{X: (left + right) / 2, Y: float64(band) + pt(4)}, raster.Center, raster.Top, color.Black)
		top := tb.Max.Y + pt(9)

		// Legend goes in the header, outside the plot.
		for j, e := range legend {
			y := top + pt(7) + float64(j)*pt(14)
			a, b := raster.Pt{X: left + pt(16), Y: y}, raster.Pt{X: left + pt(40), Y: y}
			if len(e.dash) > 0 {
				c.DashedPolyline([]raster.Pt{a, b}, pt(2), []float64{pt(e.dash[0]), pt(e.dash[1])}, e.color)
			} else {
				c.Line(a, b, pt(2), e.color)
			}
			c.Text(body, e.name, raster.Pt{X: b.X + pt(6), Y: y}, raster.Left, raster.Middle, color.Black)
		}

		lines := []string{
			"RMSE: " + FormatStat(cs.RMSE) + " BW",
			"r = " + FormatStat(cs.R),
		}
		c.Label(body, lines, raster.Pt{X: right - pt(16), Y: top}, raster.Right, raster.Top, color.Black, raster.LabelStyle{
			Fill:      statsFill,
			Edge:      statsEdge,
			EdgeWidth: 1,
			Pad:       pt(4),
			Radius:    pt(4),
		})
	}
	return &Figure{Image: c.Image(), Stats: stats}, nil
}

func renderPanel(t, ref, est []float64, w, h int, dpi float64, font *truetype.Font) (image.Image, error) {
	graph := panelChart(t, ref, est, w, h, dpi, font)
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode chart: %w", err)
	}
	return img, nil
}

// panelChart builds the chart for one channel. It carries no legend
// element; RenderFigure draws the legend in the panel header.
func panelChart(t, ref, est []float64, w, h int, dpi float64, font *truetype.Font) chart.Chart {
	graph := chart.Chart{
		Width:  w,
		Height: h,
		DPI:    dpi,
		Font:   font,
		Background: chart.Style{
			Padding: chart.Box{Top: 10, Left: 20, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:           "Time (s)",
			GridMajorStyle: gridStyle,
		},
		YAxis: chart.YAxis{
			Name:           "Force (BW)",
			GridMajorStyle: gridStyle,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: legend[0].name, XValues: t, YValues: ref, Style: plateStyle},
			chart.ContinuousSeries{Name: legend[1].name, XValues: t, YValues: est, Style: estimateStyle},
		},
	}
	// go-chart rejects a zero-width data range.
	if lo, hi := bounds(t); hi-lo < 1e-9 {
		graph.XAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	if lo, hi := bounds(ref, est); hi-lo < 1e-9 {
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	return graph
}

func bounds(series ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	return lo, hi
}

// Result describes a written comparison figure.
type Result struct {
	Path      string
	Stats     []ChannelStats
	Synthetic bool
	Cause     error // why synthetic data was used
}

// Run loads the recordings at referencePath and estimatePath, falling back
// to synthetic data when either is missing, and writes the figure to
// outPath as PNG.
func Run(referencePath, estimatePath, outPath string, opts FigureOptions) (*Result, error) {
	opts = opts.withDefaults()
	p, err := Load(referencePath, estimatePath)
	if err != nil {
		return nil, err
	}
	fig, err := RenderFigure(p, opts)
	if err != nil {
		return nil, err
	}
	if err := raster.SavePNG(outPath, fig.Image, opts.DPI); err != nil {
		return nil, err
	}
	return &Result{Path: outPath, Stats: fig.Stats, Synthetic: p.Synthetic, Cause: p.Cause}, nil
}
