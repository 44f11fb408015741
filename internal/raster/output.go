package raster

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/gif"
	"image/png"
	"io"
	"math"
	"os"
	"time"

	"github.com/disintegration/imaging"
)

const (
	pngSignatureLen = 8
	ihdrChunkLen    = 25 // length + type + 13 bytes of data + crc
	metresPerInch   = 0.0254
)

// SavePNG encodes img as PNG at path and records dpi in a pHYs chunk so
// viewers and print tools pick up the intended physical size.
func SavePNG(path string, img image.Image, dpi int) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrWrite, path, err)
	}
	if err := os.WriteFile(path, withPHYs(buf.Bytes(), dpi), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Save writes img in the format implied by the path extension.
func Save(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}

// SaveGIF writes frames as an animated GIF that loops forever with the
// given delay per frame.
func SaveGIF(path string, frames []*image.Paletted, delay time.Duration) error {
	if len(frames) == 0 {
		return fmt.Errorf("%w: %s: no frames", ErrWrite, path)
	}
	anim := &gif.GIF{LoopCount: 0}
	cs := int(delay / (10 * time.Millisecond))
	for _, f := range frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, cs)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	w := bufio.NewWriter(f)
	if err := gif.EncodeAll(w, anim); err != nil {
		f.Close()
		return fmt.Errorf("%w: encode %s: %w", ErrWrite, path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

func withPHYs(data []byte, dpi int) []byte {
	at := pngSignatureLen + ihdrChunkLen
	if dpi <= 0 || len(data) < at {
		return data
	}
	ppm := uint32(math.Round(float64(dpi) / metresPerInch))

	chunk := make([]byte, 21)
	binary.BigEndian.PutUint32(chunk[0:], 9)
	copy(chunk[4:], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:], ppm)
	binary.BigEndian.PutUint32(chunk[12:], ppm)
	chunk[16] = 1 // unit: metre
	binary.BigEndian.PutUint32(chunk[17:], crc32.ChecksumIEEE(chunk[4:17]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:at]...)
	out = append(out, chunk...)
	return append(out, data[at:]...)
}

// ErrNoDensity is returned by PNGDensity when a PNG has no usable pHYs chunk.
var ErrNoDensity = errors.New("no pixel density recorded")

// PNGDensity returns the resolution recorded in the pHYs chunk of a PNG
// stream, in dots per inch.
func PNGDensity(r io.Reader) (int, error) {
	sig := make([]byte, pngSignatureLen)
	if _, err := io.ReadFull(r, sig); err != nil {
		return 0, fmt.Errorf("failed to read png signature: %w", err)
	}
	if string(sig) != "\x89PNG\r\n\x1a\n" {
		return 0, fmt.Errorf("not a png stream")
	}
	head := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, head); err != nil {
			return 0, ErrNoDensity
		}
		n := binary.BigEndian.Uint32(head[0:4])
		typ := string(head[4:8])
		switch typ {
		case "pHYs":
			body := make([]byte, 9)
			if n != 9 {
				return 0, ErrNoDensity
			}
			if _, err := io.ReadFull(r, body); err != nil {
				return 0, ErrNoDensity
			}
			if body[8] != 1 {
				return 0, ErrNoDensity
			}
			ppm := binary.BigEndian.Uint32(body[0:4])
			return int(math.Round(float64(ppm) * metresPerInch)), nil
		case "IDAT", "IEND":
			return 0, ErrNoDensity
		}
		if _, err := io.CopyN(io.Discard, r, int64(n)+4); err != nil {
			return 0, ErrNoDensity
		}
	}
}
