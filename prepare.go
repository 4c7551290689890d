package badapple

import (
	"image"

	"github.com/disintegration/gift"
	"github.com/lkesteloot/bad-apple-trs-80/frame"
)

// Prepare scales m to the frame size and converts it to gray. The aspect
// ratio is not kept; TRS-80 pixels are twice as tall as they are wide so a
// 4:3 video fills the 128 by 48 screen.
func Prepare(m image.Image) *image.Gray {
	g := gift.New(
		gift.Grayscale(),
		gift.Resize(frame.Width, frame.Height, gift.LanczosResampling),
	)
	dst := image.NewGray(g.Bounds(m.Bounds()))
	g.Draw(dst, m)
	return dst
}
