package audit

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/gaitlab/visualgen/internal/ocr"
	"github.com/gaitlab/visualgen/internal/raster"
)

// DefaultTopColors is the number of dominant colors reported when
// Options.TopColors is zero.
const DefaultTopColors = 5

// Options selects the optional parts of a report.
type Options struct {
	TopColors int    // dominant colors to report; DefaultTopColors when zero
	OCR       bool   // read text back with Tesseract
	Language  string // OCR language; ocr.DefaultLanguage when empty

	// Region limits colors and OCR to part of the image; empty means all.
	Region image.Rectangle

	// Scale resizes the region before OCR; 0 or 1 keeps it.
	Scale float64
}

// Report describes one image file.
type Report struct {
	Path          string `json:"path"`
	Format        string `json:"format"` // "png", "jpeg" or "gif", from the file contents
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	FileSizeBytes int64  `json:"file_size_bytes"`

	// DPI is the density recorded in a PNG pHYs chunk, or 0.
	DPI int `json:"dpi,omitempty"`

	// Frames is 1 for still images.
	Frames int `json:"frames"`

	// DelaysMS holds the display time of each GIF frame.
	DelaysMS []int `json:"delays_ms,omitempty"`

	// LoopCount is the GIF loop count; 0 loops forever, -1 plays once.
	LoopCount *int `json:"loop_count,omitempty"`

	Colors []ColorFrequency `json:"colors"`

	// Text is the recognized text when OCR was requested and available.
	Text *ocr.Result `json:"text,omitempty"`

	// OCRError explains why OCR was requested but produced no text.
	OCRError string `json:"ocr_error,omitempty"`
}

// Inspect reads the file at path and reports on it.
//
// # Errors
//
//   - Returns an error if the file cannot be read
//   - Returns an error matching ErrDecode if it is not a PNG, JPEG or GIF image
//   - Returns an error matching ErrRegion if Options.Region is outside the image
//
// OCR failures never fail the inspection; they are recorded in OCRError.
func Inspect(path string, opts Options) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	b := img.Bounds()
	rep := &Report{
		Path:          path,
		Format:        format,
		Width:         b.Dx(),
		Height:        b.Dy(),
		FileSizeBytes: int64(len(data)),
		Frames:        1,
	}

	switch format {
	case "png":
		if dpi, err := raster.PNGDensity(bytes.NewReader(data)); err == nil {
			rep.DPI = dpi
		}
	case "gif":
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
		}
		rep.Frames = len(g.Image)
		rep.DelaysMS = make([]int, len(g.Delay))
		for i, d := range g.Delay {
			rep.DelaysMS[i] = d * 10
		}
		loop := g.LoopCount
		rep.LoopCount = &loop
	}

	area, err := Crop(img, opts.Region, 1)
	if err != nil {
		return nil, err
	}
	top := opts.TopColors
	if top == 0 {
		top = DefaultTopColors
	}
	rep.Colors = DominantColors(area, top)

	if opts.OCR {
		res, err := readText(path, img, opts)
		switch {
		case errors.Is(err, ocr.ErrUnavailable):
			rep.OCRError = err.Error()
		case err != nil:
			rep.OCRError = fmt.Sprintf("failed to extract text: %v", err)
		default:
			rep.Text = res
		}
	}
	return rep, nil
}

// readText reads the whole file directly, or the cropped and scaled
// region from memory.
func readText(path string, img image.Image, opts Options) (*ocr.Result, error) {
	if opts.Region.Empty() && (opts.Scale <= 0 || opts.Scale == 1) {
		return ocr.ReadFile(path, opts.Language)
	}
	area, err := Crop(img, opts.Region, opts.Scale)
	if err != nil {
		return nil, err
	}
	return ocr.ReadImage(area, opts.Language)
}

// Expect is what an artifact was generated to be. Zero fields are not
// checked.
type Expect struct {
	Width, Height int
	Frames        int
	DelayMS       int // every frame
}

// Verify checks rep against want and lists every difference in one error
// matching ErrMismatch.
func Verify(rep *Report, want Expect) error {
	var diffs []error
	if want.Width != 0 && rep.Width != want.Width {
		diffs = append(diffs, fmt.Errorf("width %d, want %d", rep.Width, want.Width))
	}
	if want.Height != 0 && rep.Height != want.Height {
		diffs = append(diffs, fmt.Errorf("height %d, want %d", rep.Height, want.Height))
	}
	if want.Frames != 0 && rep.Frames != want.Frames {
		diffs = append(diffs, fmt.Errorf("%d frames, want %d", rep.Frames, want.Frames))
	}
	if want.DelayMS != 0 {
		for i, d := range rep.DelaysMS {
			if d != want.DelayMS {
				diffs = append(diffs, fmt.Errorf("frame %d delay %dms, want %dms", i+1, d, want.DelayMS))
			}
		}
	}
	if len(diffs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrMismatch, rep.Path, errors.Join(diffs...))
}
