package audit

import (
	"image"
	"image/color"
	"testing"
)

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDominantColors(t *testing.T) {
	colors := DominantColors(createPatternImage(100, 100), 10)
	if len(colors) != 4 {
		t.Fatalf("got %d colors, want 4", len(colors))
	}

	// Equal shares are ordered by hex.
	want := []string{"#0000F0", "#00F000", "#F00000", "#F0F0F0"}
	for i, c := range colors {
		if c.Hex != want[i] {
			t.Errorf("colors[%d].Hex = %s, want %s", i, c.Hex, want[i])
		}
		if c.Percentage != 25 {
			t.Errorf("colors[%d].Percentage = %v, want 25", i, c.Percentage)
		}
	}
}

func TestDominantColors_Count(t *testing.T) {
	img := createPatternImage(10, 10)

	if got := DominantColors(img, 2); len(got) != 2 {
		t.Errorf("count 2: got %d colors", len(got))
	}
	if got := DominantColors(img, 0); got != nil {
		t.Errorf("count 0: got %v, want nil", got)
	}
	if got := DominantColors(image.NewRGBA(image.Rect(0, 0, 0, 0)), 3); got != nil {
		t.Errorf("empty image: got %v, want nil", got)
	}
}

func TestDominantColors_MostCommonFirst(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := color.RGBA{240, 240, 245, 255}
			if x < 3 {
				// Shades within one quantization step count as one color.
				c = color.RGBA{100, 100, uint8(112 + y), 255}
			}
			img.Set(x, y, c)
		}
	}

	colors := DominantColors(img, 5)
	if len(colors) != 2 {
		t.Fatalf("got %d colors, want 2", len(colors))
	}
	if colors[0].Hex != "#F0F0F0" || colors[0].Percentage != 70 {
		t.Errorf("colors[0] = %s %.1f%%, want #F0F0F0 70%%", colors[0].Hex, colors[0].Percentage)
	}
	if colors[1].Hex != "#606070" || colors[1].Percentage != 30 {
		t.Errorf("colors[1] = %s %.1f%%, want #606070 30%%", colors[1].Hex, colors[1].Percentage)
	}
}

func TestColorFrequencyHSL(t *testing.T) {
	tests := []struct {
		rgb  RGBColor
		want HSLColor
	}{
		{RGBColor{240, 0, 0}, HSLColor{H: 0, S: 100, L: 47}},
		{RGBColor{0, 0, 0}, HSLColor{H: 0, S: 0, L: 0}},
		{RGBColor{0, 240, 0}, HSLColor{H: 120, S: 100, L: 47}},
	}
	for _, tt := range tests {
		got := newFrequency(tt.rgb, 1).HSL
		if got != tt.want {
			t.Errorf("HSL of %+v = %+v, want %+v", tt.rgb, got, tt.want)
		}
	}
}
