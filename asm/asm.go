/*
Package asm writes Z80 assembly listings that play the video on a TRS-80.

The indirect listing is a small player routine followed by the compact
frame stream as .byte data. The direct listing has no data at all, every
run is drawn with immediate ld and ldir instructions. It plays faster but is
far too big to fit in memory and is only useful for comparison.
*/
package asm

import (
	"bufio"
	_ "embed" // player routine
	"fmt"
	"io"
	"strings"

	"github.com/lkesteloot/bad-apple-trs-80/rle"
	"github.com/lkesteloot/bad-apple-trs-80/stream"
)

const (
	indent      = "        "
	bytesPerRow = 8

	// Start of video memory
	screen = 15360

	directOrigin = "5200h"
)

//go:embed player.asm
var player string

type writer struct {
	w *bufio.Writer
}

func (w *writer) line(format string, args ...interface{}) {
	w.w.WriteString(indent)
	fmt.Fprintf(w.w, format, args...)
	w.w.WriteByte('\n')
}

func (w *writer) data(b []byte) {
	for len(b) > 0 {
		n := bytesPerRow
		if n > len(b) {
			n = len(b)
		}
		s := make([]string, n)
		for i, c := range b[:n] {
			s[i] = fmt.Sprintf("0x%02x", c)
		}
		w.line(".byte %s", strings.Join(s, ","))
		b = b[n:]
	}
}

// WriteIndirect writes the player routine and the frames of s.
func WriteIndirect(w io.Writer, s *stream.Stream) error {
	aw := writer{bufio.NewWriter(w)}

	aw.w.WriteString(player)

	for _, f := range s.Frames {
		aw.line("; Frame %d", f.Index)
		aw.data(f.Data)
	}

	aw.line("; End of frames")
	aw.data([]byte{0x00})
	aw.w.WriteByte('\n')
	aw.line("end main")

	return aw.w.Flush()
}

// WriteDirect writes a program drawing each frame's runs straight to the
// screen.
func WriteDirect(w io.Writer, frames [][]rle.Pair) error {
	aw := writer{bufio.NewWriter(w)}

	aw.line(".org %s", directOrigin)

	for _, pairs := range frames {
		aw.line("ld hl,%d", screen)
		aw.line("ld de,%d", screen+1)
		for _, p := range pairs {
			aw.line("ld (hl),%d", p.Value)
			if p.Count == 1 {
				aw.line("inc hl")
				aw.line("inc de")
			} else {
				// LDIR copies (HL) to (DE), increments both and decrements BC
				aw.line("ld bc,%d", p.Count)
				aw.line("ldir")
			}
		}
	}

	aw.line("jp $")

	return aw.w.Flush()
}
