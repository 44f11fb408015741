package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#FF6B6B", color.NRGBA{255, 107, 107, 255}},
		{"#4ecdc4", color.NRGBA{78, 205, 196, 255}},
		{"#fff", color.NRGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		got, err := Hex(tt.in)
		if err != nil {
			t.Errorf("Hex(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Hex(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := Hex("not-a-color"); err == nil {
		t.Error("expected error for invalid color")
	}
}

func TestMustHex_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustHex did not panic")
		}
	}()
	MustHex("#zz")
}

func TestWithAlpha(t *testing.T) {
	if got := WithAlpha(red, 0.5); got.A != 128 || got.R != 255 {
		t.Errorf("WithAlpha(red, .5): got %v", got)
	}
	if got := WithAlpha(red, 2); got.A != 255 {
		t.Errorf("clamp high: got %d", got.A)
	}
	if got := WithAlpha(red, -1); got.A != 0 {
		t.Errorf("clamp low: got %d", got.A)
	}
}

func TestBlend(t *testing.T) {
	if got := Blend(white, black, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("t=0: got %v", got)
	}
	if got := Blend(white, black, 1); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("t=1: got %v", got)
	}
}

func TestRampPalette(t *testing.T) {
	pal := RampPalette(white, []color.Color{black, red}, 4)
	if len(pal) != 7 {
		t.Fatalf("palette size: got %d, want 7", len(pal))
	}
	if pal.Index(white) != 0 {
		t.Error("base is not the first entry")
	}

	img := image.NewRGBA(image.Rect(0, 0, 4, 1))
	img.Set(0, 0, white)
	img.Set(1, 0, black)
	img.Set(2, 0, red)
	img.Set(3, 0, color.RGBA{250, 250, 250, 255})
	p := Quantize(img, pal)
	if p.ColorIndexAt(0, 0) != 0 {
		t.Errorf("white mapped to %d", p.ColorIndexAt(0, 0))
	}
	if got := p.At(2, 0); got != pal[pal.Index(red)] {
		t.Errorf("red mapped to %v", got)
	}
	if p.ColorIndexAt(3, 0) != 0 {
		t.Errorf("near-white mapped to %d, want 0", p.ColorIndexAt(3, 0))
	}
}
