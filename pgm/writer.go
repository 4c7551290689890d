package pgm

import (
	"bufio"
	"errors"
	"image"
	"image/color"
	"io"
	"strconv"
)

// Encode writes the Image m to w in plain PGM format. Colors are converted
// to gray using color.GrayModel.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Empty() {
		return errors.New("pgm: image is empty")
	}

	bw := bufio.NewWriter(w)

	bw.WriteString(magic + "\n")
	bw.WriteString(strconv.Itoa(b.Dx()) + " " + strconv.Itoa(b.Dy()) + "\n")
	bw.WriteString(strconv.Itoa(MaxValue) + "\n")

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if x > b.Min.X {
				bw.WriteByte(' ')
			}
			c := color.GrayModel.Convert(m.At(x, y)).(color.Gray)
			bw.WriteString(strconv.Itoa(int(c.Y)))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
