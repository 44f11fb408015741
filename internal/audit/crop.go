package audit

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// Crop returns the part of img inside region, resized by scale.
//
// Parameters:
//   - img: The source image.
//   - region: Rectangle in img coordinates; the empty rectangle selects the
//     whole image.
//   - scale: Resize factor applied after cropping (Lanczos). Values <= 0 or
//     equal to 1 leave the size unchanged. Enlarging small text helps OCR.
//
// # Errors
//
//   - Returns an error matching ErrRegion if region is not inside img
func Crop(img image.Image, region image.Rectangle, scale float64) (image.Image, error) {
	bounds := img.Bounds()
	out := img
	if !region.Empty() {
		if !region.In(bounds) {
			return nil, fmt.Errorf("%w: %v outside image bounds %v", ErrRegion, region, bounds)
		}
		out = imaging.Crop(img, region)
	}
	if scale > 0 && scale != 1 {
		b := out.Bounds()
		w := int(float64(b.Dx()) * scale)
		h := int(float64(b.Dy()) * scale)
		if w < 1 || h < 1 {
			return nil, fmt.Errorf("%w: scale %g leaves no pixels", ErrRegion, scale)
		}
		out = imaging.Resize(out, w, h, imaging.Lanczos)
	}
	return out, nil
}

// ParseRegion parses "x1,y1,x2,y2" into a rectangle. The empty string is
// the empty rectangle.
func ParseRegion(s string) (image.Rectangle, error) {
	if strings.TrimSpace(s) == "" {
		return image.Rectangle{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("%w: %q is not x1,y1,x2,y2", ErrRegion, s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("%w: %q: %v", ErrRegion, s, err)
		}
		v[i] = n
	}
	if v[0] >= v[2] || v[1] >= v[3] {
		return image.Rectangle{}, fmt.Errorf("%w: x1 must be < x2 and y1 must be < y2", ErrRegion)
	}
	return image.Rect(v[0], v[1], v[2], v[3]), nil
}
