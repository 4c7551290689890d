package pgm

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	in := "P2\n3 2\n255\n0 128 255\n  10\n20\t30\n"

	h, m, err := DecodeGray(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, Header{Width: 3, Height: 2, MaxValue: 255}, h)
	assert.Equal(t, image.Rect(0, 0, 3, 2), m.Bounds())
	assert.Equal(t, []uint8{0, 128, 255, 10, 20, 30}, m.Pix)
}

func TestDecodeScalesSamples(t *testing.T) {
	h, m, err := DecodeGray(strings.NewReader("P2\n2 1\n15\n0 15\n"))
	require.NoError(t, err)

	assert.Equal(t, 15, h.MaxValue)
	assert.Equal(t, []uint8{0, 255}, m.Pix)
}

func TestDecodeErrors(t *testing.T) {
	tables := map[string]struct {
		in  string
		err error
	}{
		"wrong tag":        {"P5\n1 1\n255\n0\n", ErrFormat},
		"tag whitespace":   {"P2 \n1 1\n255\n0\n", ErrFormat},
		"crlf":             {"P2\r\n1 1\r\n255\r\n0\r\n", ErrFormat},
		"double space":     {"P2\n1  1\n255\n0\n", ErrFormat},
		"leading zero":     {"P2\n01 1\n255\n0\n", ErrFormat},
		"zero width":       {"P2\n0 1\n255\n", ErrFormat},
		"missing height":   {"P2\n1\n255\n0\n", ErrFormat},
		"bad max":          {"P2\n1 1\n70000\n0\n", ErrFormat},
		"truncated header": {"P2\n1 1\n", ErrFormat},
		"not enough":       {"P2\n2 1\n255\n0\n", errNotEnough},
		"too much":         {"P2\n1 1\n255\n0 0\n", errTooMuch},
		"out of range":     {"P2\n1 1\n100\n101\n", errRange},
		"not a number":     {"P2\n1 1\n255\nx\n", ErrFormat},
		"negative":         {"P2\n1 1\n255\n-1\n", ErrFormat},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(table.in))
			assert.Equal(t, table.err, err)
		})
	}
}

func TestDecodeConfig(t *testing.T) {
	c, err := DecodeConfig(strings.NewReader("P2\n128 48\n255\n"))
	require.NoError(t, err)

	assert.Equal(t, 128, c.Width)
	assert.Equal(t, 48, c.Height)
	assert.Equal(t, color.GrayModel, c.ColorModel)
}

func TestEncode(t *testing.T) {
	m := image.NewGray(image.Rect(0, 0, 3, 2))
	copy(m.Pix, []uint8{0, 1, 2, 186, 254, 255})

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	assert.Equal(t, "P2\n3 2\n255\n0 1 2\n186 254 255\n", b.String())

	_, out, err := DecodeGray(b)
	require.NoError(t, err)
	assert.Equal(t, m.Pix, out.Pix)
}

func TestEncodeConvertsColor(t *testing.T) {
	m := image.NewRGBA(image.Rect(5, 5, 6, 6))
	m.Set(5, 5, color.White)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	assert.Equal(t, "P2\n1 1\n255\n255\n", b.String())
}

func TestRegisteredFormat(t *testing.T) {
	_, format, err := image.Decode(strings.NewReader("P2\n1 1\n255\n7\n"))
	require.NoError(t, err)
	assert.Equal(t, "pgm", format)
}
