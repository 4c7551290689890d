/*
Package badapple converts the frames of the Bad Apple video into the compact
run-length encoded stream played back by a small TRS-80 routine.

Each frame is thresholded to monochrome, packed into 64 by 16 graphics
characters, run-length encoded and finally rewritten in the compact byte
format of package compact. Frames are independent of each other so they are
encoded concurrently and reassembled in their original order.
*/
package badapple

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/lkesteloot/bad-apple-trs-80/compact"
	"github.com/lkesteloot/bad-apple-trs-80/frame"
	"github.com/lkesteloot/bad-apple-trs-80/glyph"
	"github.com/lkesteloot/bad-apple-trs-80/rle"
)

const (
	// DefaultPattern is where the extracted frames live
	DefaultPattern = "converted_images/bad_apple_%03d.pgm"
	// FirstFrame is the first frame worth playing
	FirstFrame = 35
	// NumFrames is how many frames fit in memory
	NumFrames = 490

	defaultWorkers = 10
)

// ErrVerify is returned when an encoded frame doesn't decode back to the
// characters it was made from.
var ErrVerify = errors.New("badapple: encoded frame does not match")

type Converter struct {
	logger  *log.Logger
	workers int
	verify  bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithWorkers sets the number of frames encoded at once.
func WithWorkers(n int) Option {
	return func(c *Converter) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithVerify decodes every encoded frame again and compares it with the
// source characters.
func WithVerify(verify bool) Option {
	return func(c *Converter) {
		c.verify = verify
	}
}

func New(logger *log.Logger, opts ...Option) *Converter {
	c := &Converter{
		logger:  logger,
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EncodeFrame returns the runs of f and their compact encoding.
func (c *Converter) EncodeFrame(f *frame.Frame) ([]rle.Pair, []byte, error) {
	codes := glyph.Pack(f).Codes()
	pairs := rle.Encode(codes)
	data := compact.Encode(pairs)

	if c.verify {
		decoded, n, err := compact.Decode(data)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrVerify, err)
		}
		if n != len(data) || !bytes.Equal(decoded, codes) {
			return nil, nil, ErrVerify
		}
	}

	return pairs, data, nil
}

// FramePaths expands pattern for count frames starting at first.
func FramePaths(pattern string, first, count int) []string {
	paths := make([]string, 0, count)
	for i := first; i < first+count; i++ {
		paths = append(paths, fmt.Sprintf(pattern, i))
	}
	return paths
}
