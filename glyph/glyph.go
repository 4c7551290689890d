/*
Package glyph packs monochrome frames into TRS-80 graphics characters.

The TRS-80 screen is 64 by 16 characters. Characters 128 to 191 are a 2 by 3
block of dots, the low six bits selecting which dots are lit:

	+---+---+
	| 0 | 1 |
	+---+---+
	| 2 | 3 |
	+---+---+
	| 4 | 5 |
	+---+---+

A 128 by 48 frame therefore fills the screen exactly.
*/
package glyph

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lkesteloot/bad-apple-trs-80/frame"
)

const (
	cellWidth  = 2
	cellHeight = 3

	// Columns of characters on screen
	Columns = frame.Width / cellWidth
	// Rows of characters on screen
	Rows = frame.Height / cellHeight
	// NumCells is the number of characters on screen
	NumCells = Columns * Rows

	// Base is the code of the first graphics character
	Base = 128
	// Blank is the character with no dots lit
	Blank = Base
	// Full is the character with all six dots lit
	Full = Base + 1<<(cellWidth*cellHeight) - 1
)

// Valid reports whether c is a graphics character.
func Valid(c byte) bool {
	return c >= Base && c <= Full
}

// Grid is one screen of graphics characters in row-major order.
type Grid struct {
	codes [NumCells]byte
}

// Pack converts a frame to a screen of characters.
func Pack(f *frame.Frame) *Grid {
	g := new(Grid)
	for y := 0; y < Rows; y++ {
		for x := 0; x < Columns; x++ {
			var bits byte
			for dy := 0; dy < cellHeight; dy++ {
				for dx := 0; dx < cellWidth; dx++ {
					if f.At(x*cellWidth+dx, y*cellHeight+dy) {
						bits |= 1 << (dy*cellWidth + dx)
					}
				}
			}
			g.codes[y*Columns+x] = Base + bits
		}
	}
	return g
}

// Unpack rebuilds a Grid from NumCells characters.
func Unpack(codes []byte) (*Grid, error) {
	if len(codes) != NumCells {
		return nil, fmt.Errorf("glyph: need %d characters, got %d", NumCells, len(codes))
	}
	g := new(Grid)
	for i, c := range codes {
		if !Valid(c) {
			return nil, fmt.Errorf("glyph: character %d at %d is not a graphics character", c, i)
		}
		g.codes[i] = c
	}
	return g, nil
}

// Codes returns a copy of the characters in row-major order.
func (g *Grid) Codes() []byte {
	return append([]byte(nil), g.codes[:]...)
}

// At returns the character at column x, row y.
func (g *Grid) At(x, y int) byte {
	return g.codes[y*Columns+x]
}

// Palette used by Image; index 1 is a lit dot
var Palette = color.Palette{color.Black, color.White}

// Image renders the grid as the screen would show it, one pixel per dot.
func (g *Grid) Image() *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, frame.Width, frame.Height), Palette)
	for y := 0; y < Rows; y++ {
		for x := 0; x < Columns; x++ {
			bits := g.At(x, y) - Base
			for dy := 0; dy < cellHeight; dy++ {
				for dx := 0; dx < cellWidth; dx++ {
					if bits&(1<<(dy*cellWidth+dx)) != 0 {
						m.SetColorIndex(x*cellWidth+dx, y*cellHeight+dy, 1)
					}
				}
			}
		}
	}
	return m
}
