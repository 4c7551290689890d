package asm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lkesteloot/bad-apple-trs-80/rle"
	"github.com/lkesteloot/bad-apple-trs-80/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIndirect(t *testing.T) {
	s := new(stream.Stream)
	require.NoError(t, s.Add(35, []byte{63, 7, 150, 0xc2, 0x00}))
	require.NoError(t, s.Add(36, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 0x00}))

	b := new(bytes.Buffer)
	require.NoError(t, WriteIndirect(b, s))

	out := b.String()
	require.True(t, strings.HasPrefix(out, player))
	assert.True(t, strings.HasPrefix(out, "        .org 4000h\n"))

	want := "" +
		"        ; Frame 35\n" +
		"        .byte 0x3f,0x07,0x96,0xc2,0x00\n" +
		"        ; Frame 36\n" +
		"        .byte 0x01,0x02,0x03,0x04,0x05,0x06,0x07,0x08\n" +
		"        .byte 0x09,0x00\n" +
		"        ; End of frames\n" +
		"        .byte 0x00\n" +
		"\n" +
		"        end main\n"
	assert.Equal(t, want, strings.TrimPrefix(out, player))
}

func TestPlayerEndsAtFrames(t *testing.T) {
	assert.True(t, strings.HasSuffix(player, "\nframes\n"))
	assert.Contains(t, player, "ld ix,frames")
}

func TestWriteDirect(t *testing.T) {
	frames := [][]rle.Pair{
		{{Value: 128, Count: 1023}, {Value: 150, Count: 1}},
	}

	b := new(bytes.Buffer)
	require.NoError(t, WriteDirect(b, frames))

	want := "" +
		"        .org 5200h\n" +
		"        ld hl,15360\n" +
		"        ld de,15361\n" +
		"        ld (hl),128\n" +
		"        ld bc,1023\n" +
		"        ldir\n" +
		"        ld (hl),150\n" +
		"        inc hl\n" +
		"        inc de\n" +
		"        jp $\n"
	assert.Equal(t, want, b.String())
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, assert.AnError
}

func TestWriteError(t *testing.T) {
	assert.Equal(t, assert.AnError, WriteIndirect(failWriter{}, new(stream.Stream)))
	assert.Equal(t, assert.AnError, WriteDirect(failWriter{}, nil))
}
