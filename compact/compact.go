/*
Package compact implements the frame encoding read by the TRS-80 player.

Nearly every character in a frame is either blank (128) or full (191), so
runs of those two get a one byte encoding and everything else is written
literally. The top two bits of each byte select its meaning:

	00nnnnnn  n blank characters, 1 <= n <= 63
	11nnnnnn  n full characters, 1 <= n <= 63
	10xxxxxx  a single literal character, 128 to 191
	01xxxxxx  unused

A zero byte ends the frame. Runs of length one are written as literals even
for blank and full, longer runs are split into chunks of at most 63.
*/
package compact

import (
	"errors"
	"fmt"

	"github.com/lkesteloot/bad-apple-trs-80/glyph"
	"github.com/lkesteloot/bad-apple-trs-80/rle"
)

const (
	// MaxRun is the longest run a single byte can describe
	MaxRun = 1<<6 - 1
	// Terminator ends each frame
	Terminator = 0x00

	tagMask  = 0xc0
	tagBlank = 0x00
	tagFull  = 0xc0
)

var (
	// ErrTruncated is returned by Decode when the data ends before the
	// end of frame marker.
	ErrTruncated = errors.New("compact: missing end of frame")
	// ErrInvalid is returned by Decode for a byte the player doesn't
	// understand.
	ErrInvalid = errors.New("compact: invalid byte")
)

// Encode converts the runs of one frame, appending the end of frame marker.
// It panics if a run holds something other than a graphics character.
func Encode(pairs []rle.Pair) []byte {
	var b []byte
	for _, p := range pairs {
		if !glyph.Valid(p.Value) {
			panic(fmt.Sprintf("compact: character %d is not a graphics character", p.Value))
		}
		for count := p.Count; count > 0; {
			n := count
			if n > MaxRun {
				n = MaxRun
			}
			switch {
			case n == 1 || (p.Value != glyph.Blank && p.Value != glyph.Full):
				for i := 0; i < n; i++ {
					b = append(b, p.Value)
				}
			case p.Value == glyph.Blank:
				b = append(b, tagBlank|byte(n))
			case p.Value == glyph.Full:
				b = append(b, tagFull|byte(n))
			default:
				panic(fmt.Sprintf("compact: no encoding for %d x %d", n, p.Value))
			}
			count -= n
		}
	}
	return append(b, Terminator)
}

// Decode expands one frame from the start of b. It returns the characters
// and the number of bytes consumed, including the end of frame marker.
func Decode(b []byte) ([]byte, int, error) {
	var codes []byte
	for i, c := range b {
		var v byte
		n := int(c &^ tagMask)
		switch {
		case c == Terminator:
			return codes, i + 1, nil
		case glyph.Valid(c):
			codes = append(codes, c)
			continue
		case c&tagMask == tagBlank:
			v = glyph.Blank
		case c&tagMask == tagFull && n > 0:
			v = glyph.Full
		default:
			return nil, 0, fmt.Errorf("%w 0x%02x at offset %d", ErrInvalid, c, i)
		}
		for j := 0; j < n; j++ {
			codes = append(codes, v)
		}
	}
	return nil, 0, ErrTruncated
}
