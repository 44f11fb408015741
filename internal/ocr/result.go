package ocr

import (
	"errors"
	"strings"
)

// ErrUnavailable is returned when the binary was built without OCR support.
var ErrUnavailable = errors.New("ocr support not compiled in (build with -tags ocr)")

// DefaultLanguage is the Tesseract language code used when none is given.
const DefaultLanguage = "eng"

// Bounds is a rectangle in pixel coordinates; X2 and Y2 are exclusive.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Word is one recognized word and where it was found.
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0..1
	Bounds     Bounds  `json:"bounds"`
}

// Result holds the text recognized in one image.
type Result struct {
	// FullText keeps Tesseract's line breaks.
	FullText string `json:"full_text"`

	// Words may be empty even when FullText is not, if box extraction fails.
	Words []Word `json:"words,omitempty"`
}

// Contains reports whether every whitespace separated token of phrase was
// recognized, ignoring case and order.
func (r *Result) Contains(phrase string) bool {
	if r == nil {
		return false
	}
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(r.FullText)) {
		seen[tok] = true
	}
	for _, tok := range strings.Fields(strings.ToLower(phrase)) {
		if !seen[tok] {
			return false
		}
	}
	return true
}

func language(lang string) string {
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}
