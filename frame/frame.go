/*
Package frame loads single frames of the video and thresholds them into
monochrome pixels.

A frame is a plain PGM file of exactly 128 by 48 samples with a maximum value
of 255. A pixel is lit when its sample is 186 or brighter.
*/
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/lkesteloot/bad-apple-trs-80/pgm"
)

const (
	// Width of a frame in pixels
	Width = 128
	// Height of a frame in pixels
	Height = 48
	// Threshold is the lowest sample value that lights a pixel
	Threshold = 186

	numPixels = Width * Height
	maxValue  = 255
)

// ErrMalformed is returned when a frame file doesn't have the expected
// header or sample data.
var ErrMalformed = errors.New("frame: malformed input")

// Frame is an immutable grid of monochrome pixels.
type Frame struct {
	pix [numPixels]bool
}

// New returns a Frame from numPixels booleans in row-major order.
func New(pix []bool) (*Frame, error) {
	if len(pix) != numPixels {
		return nil, fmt.Errorf("frame: need %d pixels, got %d", numPixels, len(pix))
	}
	f := new(Frame)
	copy(f.pix[:], pix)
	return f, nil
}

// Width returns the width of the frame in pixels.
func (f *Frame) Width() int { return Width }

// Height returns the height of the frame in pixels.
func (f *Frame) Height() int { return Height }

// At reports whether the pixel at (x, y) is lit.
func (f *Frame) At(x, y int) bool {
	return f.pix[y*Width+x]
}

// Read parses a frame from r.
func Read(r io.Reader) (*Frame, error) {
	h, m, err := pgm.DecodeGray(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if h != (pgm.Header{Width: Width, Height: Height, MaxValue: maxValue}) {
		return nil, fmt.Errorf("%w: header is \"%d %d\" max %d, want \"%d %d\" max %d", ErrMalformed, h.Width, h.Height, h.MaxValue, Width, Height, maxValue)
	}

	f := new(Frame)
	for i, v := range m.Pix {
		f.pix[i] = v >= Threshold
	}
	return f, nil
}

// Load reads the frame stored in file.
func Load(file string) (*Frame, error) {
	fh, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return f, nil
}

// FromImage thresholds an arbitrary image of the right size. Colors are
// converted to gray first.
func FromImage(m image.Image) (*Frame, error) {
	b := m.Bounds()
	if b.Dx() != Width || b.Dy() != Height {
		return nil, fmt.Errorf("frame: image is %dx%d, want %dx%d", b.Dx(), b.Dy(), Width, Height)
	}

	f := new(Frame)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := color.GrayModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			f.pix[y*Width+x] = c.Y >= Threshold
		}
	}
	return f, nil
}
