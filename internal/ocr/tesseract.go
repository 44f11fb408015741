//go:build ocr

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Available reports whether recognition is compiled in.
func Available() bool { return true }

// ReadFile recognizes the text in the image file at path.
//
// Parameters:
//   - path: PNG, JPEG or GIF file. Only the first frame of a GIF is read.
//   - lang: Tesseract language code; empty means DefaultLanguage.
//
// Returns the full text and, when available, per-word boxes with
// confidences scaled to 0..1.
func ReadFile(path, lang string) (*Result, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language(lang)); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return recognize(client)
}

// ReadImage recognizes the text in an in-memory image.
func ReadImage(img image.Image, lang string) (*Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language(lang)); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return recognize(client)
}

func recognize(client *gosseract.Client) (*Result, error) {
	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	res := &Result{FullText: text}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// The text is still useful without boxes.
		return res, nil
	}
	for _, b := range boxes {
		res.Words = append(res.Words, Word{
			Text:       b.Word,
			Confidence: b.Confidence / 100.0,
			Bounds: Bounds{
				X1: b.Box.Min.X,
				Y1: b.Box.Min.Y,
				X2: b.Box.Max.X,
				Y2: b.Box.Max.Y,
			},
		})
	}
	return res, nil
}

// Version returns the linked Tesseract version.
func Version() string {
	return gosseract.Version()
}
