// Package audit inspects generated artifacts.
//
// Inspect decodes an image file and reports what a reader of the README would
// get: its pixel size, format, recorded density, animation frames and timing,
// the dominant colors, and optionally the text Tesseract can read back from
// it. Verify compares such a report against the size and frame count an
// artifact was generated with.
//
// # Color Quantization
//
// Dominant colors are counted after dropping the low four bits of each RGB
// component, so antialiasing shades of one ink collapse into a single entry:
//
//	quantized = (original / 16) * 16
//
// # Example Usage
//
//	rep, err := audit.Inspect("assets/demos/pose-detection.gif", audit.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(rep.Frames, rep.DelaysMS)
package audit
