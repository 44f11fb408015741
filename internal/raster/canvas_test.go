package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gaitlab/visualgen/internal/typeface"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func rgb8(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestFillRect(t *testing.T) {
	c := New(20, 20, white, 1)
	c.FillRect(R(5, 5, 15, 15), red)
	img := c.Image()

	if r, g, b := rgb8(img, 10, 10); r != 255 || g != 0 || b != 0 {
		t.Errorf("inside at (10,10): got (%d,%d,%d), want (255,0,0)", r, g, b)
	}
	if r, g, b := rgb8(img, 2, 2); r != 255 || g != 255 || b != 255 {
		t.Errorf("outside at (2,2): got (%d,%d,%d), want white", r, g, b)
	}
}

func TestImage_Supersampled(t *testing.T) {
	c := New(40, 30, white, 2)
	c.FillRect(R(10, 10, 30, 20), red)
	img := c.Image()

	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Fatalf("size: got %v, want 40x30", img.Bounds())
	}
	r, g, b := rgb8(img, 20, 15)
	if r < 250 || g > 5 || b > 5 {
		t.Errorf("centre: got (%d,%d,%d), want red", r, g, b)
	}
}

func TestStrokeRect_LeavesInteriorEmpty(t *testing.T) {
	c := New(40, 40, white, 1)
	c.StrokeRect(R(10, 10, 30, 30), 2, black)
	img := c.Image()

	if r, _, _ := rgb8(img, 20, 20); r != 255 {
		t.Errorf("interior at (20,20): got r=%d, want 255", r)
	}
	if r, _, _ := rgb8(img, 10, 20); r != 0 {
		t.Errorf("edge at (10,20): got r=%d, want 0", r)
	}
}

func TestStrokeRect_Dashed(t *testing.T) {
	c := New(40, 40, white, 1)
	c.StrokeRect(R(0, 10, 40, 30), 2, black, 4, 4)
	img := c.Image()

	// The top edge starts with a dash and then a gap.
	if r, _, _ := rgb8(img, 1, 10); r != 0 {
		t.Errorf("dash at (1,10): got r=%d, want 0", r)
	}
	if r, _, _ := rgb8(img, 6, 10); r != 255 {
		t.Errorf("gap at (6,10): got r=%d, want 255", r)
	}
}

func TestCircles(t *testing.T) {
	c := New(60, 60, white, 1)
	c.FillCircle(Pt{15, 15}, 8, red)
	c.StrokeCircle(Pt{45, 45}, 10, 2, black)
	img := c.Image()

	if r, g, _ := rgb8(img, 15, 15); r != 255 || g != 0 {
		t.Errorf("filled centre: got (%d,%d), want red", r, g)
	}
	if r, _, _ := rgb8(img, 45, 45); r != 255 {
		t.Errorf("ring centre: got r=%d, want background", r)
	}
	if r, _, _ := rgb8(img, 55, 45); r > 64 {
		t.Errorf("ring edge: got r=%d, want dark", r)
	}
}

func TestRoundedRect(t *testing.T) {
	c := New(40, 40, white, 1)
	c.FillRoundedRect(R(0, 0, 40, 40), 10, red)
	img := c.Image()

	if r, g, _ := rgb8(img, 20, 20); r != 255 || g != 0 {
		t.Errorf("centre: got (%d,%d), want red", r, g)
	}
	if _, g, _ := rgb8(img, 0, 0); g != 255 {
		t.Errorf("rounded corner at (0,0): got g=%d, want background", g)
	}
}

func TestArrow(t *testing.T) {
	c := New(100, 20, white, 1)
	c.Arrow(Pt{5, 10}, Pt{95, 10}, 2, 10, 8, black)
	img := c.Image()

	if r, _, _ := rgb8(img, 40, 10); r != 0 {
		t.Errorf("shaft at (40,10): got r=%d, want 0", r)
	}
	if r, _, _ := rgb8(img, 88, 11); r != 0 {
		t.Errorf("head at (88,11): got r=%d, want 0", r)
	}
	if r, _, _ := rgb8(img, 40, 15); r != 255 {
		t.Errorf("below shaft: got r=%d, want 255", r)
	}
}

func TestArrow_ZeroLength(t *testing.T) {
	c := New(10, 10, white, 1)
	c.Arrow(Pt{5, 5}, Pt{5, 5}, 2, 3, 3, black)
	c.DoubleArrow(Pt{5, 5}, Pt{5, 5}, 2, 3, 3, black)
	if r, _, _ := rgb8(c.Image(), 5, 5); r != 255 {
		t.Errorf("zero length arrow drew at (5,5)")
	}
}

func TestDashPieces(t *testing.T) {
	pieces := dashPieces([]Pt{{0, 0}, {10, 0}}, []float64{2, 2})
	if len(pieces) != 3 {
		t.Fatalf("pieces: got %d, want 3", len(pieces))
	}
	want := [][2]float64{{0, 2}, {4, 6}, {8, 10}}
	for i, p := range pieces {
		start, end := p[0].X, p[len(p)-1].X
		if math.Abs(start-want[i][0]) > 1e-9 || math.Abs(end-want[i][1]) > 1e-9 {
			t.Errorf("piece %d: got [%g,%g], want %v", i, start, end, want[i])
		}
	}
}

func TestDashPieces_AcrossCorner(t *testing.T) {
	pieces := dashPieces([]Pt{{0, 0}, {3, 0}, {3, 3}}, []float64{4, 10})
	if len(pieces) != 1 {
		t.Fatalf("pieces: got %d, want 1", len(pieces))
	}
	if n := len(pieces[0]); n != 3 {
		t.Errorf("points in piece: got %d, want 3", n)
	}
}

func TestPositive(t *testing.T) {
	cw := []Pt{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if signedArea(positive(cw)) < 0 {
		t.Error("positive did not reverse negative winding")
	}
	r := ring(cw, []Pt{{0.2, 0.2}, {0.8, 0.2}, {0.8, 0.8}, {0.2, 0.8}})
	if signedArea(r[0]) <= 0 || signedArea(r[1]) >= 0 {
		t.Errorf("ring windings: outer %g, inner %g", signedArea(r[0]), signedArea(r[1]))
	}
}

func TestViewport(t *testing.T) {
	vp := NewViewport(0, 0, 10, 5, R(0, 0, 100, 100), true)

	// Width limits the scale; the world is centred vertically.
	if got := vp.Pt(0, 5); math.Abs(got.X) > 1e-9 || math.Abs(got.Y-25) > 1e-9 {
		t.Errorf("top-left: got %+v, want (0,25)", got)
	}
	if got := vp.Pt(10, 0); math.Abs(got.X-100) > 1e-9 || math.Abs(got.Y-75) > 1e-9 {
		t.Errorf("bottom-right: got %+v, want (100,75)", got)
	}
	if vp.LenX(1) != vp.LenY(1) {
		t.Errorf("equal aspect: LenX=%g LenY=%g", vp.LenX(1), vp.LenY(1))
	}

	stretched := NewViewport(0, 0, 10, 5, R(0, 0, 100, 100), false)
	if got := stretched.LenY(1); got != 20 {
		t.Errorf("stretched LenY: got %g, want 20", got)
	}
	r := stretched.Rect(0, 0, 10, 5)
	if r.Min != (Pt{0, 0}) || r.Max != (Pt{100, 100}) {
		t.Errorf("Rect: got %+v", r)
	}
}

func TestText_CentredOnAnchor(t *testing.T) {
	c := New(200, 100, white, 2)
	face := c.Face(typeface.GoRegular, 20)

	box := c.Text(face, "Subject", Pt{100, 50}, Center, Middle, black)
	ctr := box.Center()
	if math.Abs(ctr.X-100) > 1 || math.Abs(ctr.Y-50) > 1 {
		t.Errorf("ink centre: got %+v, want (100,50)", ctr)
	}
	if box.Dx() <= 0 || box.Dy() <= 0 {
		t.Fatalf("empty ink box %+v", box)
	}

	img := c.Image()
	dark := 0
	for y := int(box.Min.Y); y <= int(box.Max.Y); y++ {
		for x := int(box.Min.X); x <= int(box.Max.X); x++ {
			if r, _, _ := rgb8(img, x, y); r < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("no ink inside the returned box")
	}
}

func TestText_FaceCache(t *testing.T) {
	c := New(10, 10, white, 2)
	a := c.Face(typeface.GoBold, 12)
	b := c.Face(typeface.GoBold, 12)
	if a != b {
		t.Error("face was not cached")
	}
	if m := c.Measure(a, "Hi"); m.Advance <= 0 {
		t.Errorf("advance: got %g", m.Advance)
	}
}

func TestTextBlock_Alignment(t *testing.T) {
	c := New(300, 200, white, 1)
	face := c.Face(typeface.GoRegular, 16)

	one := c.TextBlock(face, []string{"Camera"}, Pt{150, 100}, Center, Middle, black)
	two := c.TextBlock(face, []string{"Camera", "Calibration"}, Pt{150, 100}, Center, Middle, black)

	if two.Dy() <= one.Dy() {
		t.Errorf("two lines not taller than one: %g <= %g", two.Dy(), one.Dy())
	}
	if math.Abs(two.Center().Y-100) > 1e-6 {
		t.Errorf("block centre y: got %g, want 100", two.Center().Y)
	}
	top := c.TextBlock(face, []string{"A"}, Pt{10, 20}, Left, Top, black)
	if math.Abs(top.Min.Y-20) > 1e-6 {
		t.Errorf("top anchored block starts at %g, want 20", top.Min.Y)
	}
}

func TestLabel_DrawsBox(t *testing.T) {
	c := New(200, 100, white, 1)
	face := c.Face(typeface.GoRegular, 14)
	box := c.Label(face, []string{"Front"}, Pt{100, 50}, Center, Middle, black, LabelStyle{
		Fill:   red,
		Pad:    6,
		Radius: 3,
	})
	img := c.Image()
	if r, g, _ := rgb8(img, int(box.Min.X)+2, int(box.Center().Y)); r != 255 || g != 0 {
		t.Errorf("label background: got (%d,%d), want red", r, g)
	}
}

func TestTextVertical(t *testing.T) {
	c := New(60, 200, white, 1)
	face := c.Face(typeface.GoRegular, 16)
	c.TextVertical(face, "Force (BW)", Pt{30, 100}, black)
	img := c.Image()

	minY, maxY, minX, maxX := 200, -1, 60, -1
	for y := 0; y < 200; y++ {
		for x := 0; x < 60; x++ {
			if r, _, _ := rgb8(img, x, y); r < 128 {
				minY, maxY = min(minY, y), max(maxY, y)
				minX, maxX = min(minX, x), max(maxX, x)
			}
		}
	}
	if maxY < 0 {
		t.Fatal("nothing drawn")
	}
	if maxY-minY <= maxX-minX {
		t.Errorf("text not vertical: %dx%d ink", maxX-minX, maxY-minY)
	}
}

func TestShadow(t *testing.T) {
	c := New(100, 100, white, 1)
	area := R(30, 30, 70, 70)
	c.Shadow(area, Pt{4, 4}, 3, func(l *Canvas) {
		l.FillRect(area, black)
	})
	img := c.Image()

	if r, _, _ := rgb8(img, 54, 54); r > 20 {
		t.Errorf("shadow core: got r=%d, want dark", r)
	}
	if r, _, _ := rgb8(img, 5, 5); r != 255 {
		t.Errorf("far from shadow: got r=%d, want 255", r)
	}
	if r, _, _ := rgb8(img, 73, 50); r == 0 || r == 255 {
		t.Errorf("shadow edge not soft: r=%d", r)
	}
}

func TestFromImage_CopiesSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 25, 15))
	c := FromImage(src)
	if w, h := c.Size(); w != 20 || h != 10 {
		t.Fatalf("size: got %dx%d, want 20x10", w, h)
	}
	c.FillRect(R(0, 0, 20, 10), red)
	if _, _, _, a := src.At(10, 10).RGBA(); a != 0 {
		t.Error("source image was modified")
	}
	if r, _, _ := rgb8(c.Image(), 0, 0); r != 255 {
		t.Errorf("canvas origin not remapped: r=%d", r)
	}
}
