/*
Package pgm implements a decoder and encoder for the plain (ASCII) variant of
the Netpbm grayscale format, tagged "P2".

A file starts with exactly three header lines: the "P2" tag, the width and
height separated by a single space, and the maximum sample value. The
samples follow as whitespace separated decimal integers in row-major order,
each in the range 0 to the maximum value. The encoder writes one image row
per line with a maximum value of 255.

Header lines are matched exactly; comments, extra whitespace and leading
zeros are rejected.
*/
package pgm

const (
	magic = "P2"

	// MaxValue is the maximum sample value written by Encode.
	MaxValue = 255

	maxLimit = 1<<16 - 1
)

// Header holds the values of the three header lines.
type Header struct {
	Width    int
	Height   int
	MaxValue int
}
