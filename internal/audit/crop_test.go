package audit

import (
	"errors"
	"image"
	"testing"
)

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name   string
		region image.Rectangle
		scale  float64
		wantW  int
		wantH  int
	}{
		{"whole image", image.Rectangle{}, 0, 100, 100},
		{"top-left quadrant", image.Rect(0, 0, 50, 50), 1, 50, 50},
		{"scaled up", image.Rect(10, 10, 30, 20), 3, 60, 30},
		{"whole image halved", image.Rectangle{}, 0.5, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Crop(img, tt.region, tt.scale)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}

	// The top-left quadrant is all red.
	q, _ := Crop(img, image.Rect(0, 0, 50, 50), 1)
	colors := DominantColors(q, 5)
	if len(colors) != 1 || colors[0].Hex != "#F00000" {
		t.Errorf("quadrant colors = %+v, want only #F00000", colors)
	}
}

func TestCrop_Errors(t *testing.T) {
	img := createPatternImage(20, 20)
	if _, err := Crop(img, image.Rect(10, 10, 30, 30), 1); !errors.Is(err, ErrRegion) {
		t.Errorf("outside region: error = %v, want ErrRegion", err)
	}
	if _, err := Crop(img, image.Rectangle{}, 0.01); !errors.Is(err, ErrRegion) {
		t.Errorf("vanishing scale: error = %v, want ErrRegion", err)
	}
}

func TestParseRegion(t *testing.T) {
	r, err := ParseRegion("10, 20,30,40")
	if err != nil {
		t.Fatalf("ParseRegion failed: %v", err)
	}
	if r != image.Rect(10, 20, 30, 40) {
		t.Errorf("got %v", r)
	}

	if r, err := ParseRegion(""); err != nil || !r.Empty() {
		t.Errorf("empty string: got %v, %v", r, err)
	}

	for _, bad := range []string{"1,2,3", "a,b,c,d", "5,5,5,10", "10,0,0,10"} {
		if _, err := ParseRegion(bad); !errors.Is(err, ErrRegion) {
			t.Errorf("ParseRegion(%q) error = %v, want ErrRegion", bad, err)
		}
	}
}
