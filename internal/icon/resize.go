package icon

import (
	"image"

	"golang.org/x/image/draw"
)

// Ladder holds the canonical output sizes, largest first.
var Ladder = []int{256, 128, 64, 48, 32, 16}

// SelectSize returns the output dimensions for a source icon of w x h: the
// largest ladder rung that fits within both dimensions. Icons smaller than
// every rung keep their native size.
func SelectSize(w, h int) (int, int) {
	for _, s := range Ladder {
		if w >= s && h >= s {
			return s, s
		}
	}
	return w, h
}

// Canonicalize renders img at its selected output size as a fresh NRGBA
// image. Same-size sources are copied pixel for pixel; everything else is
// resampled with Catmull-Rom. draw.Src keeps the result independent of the
// zeroed destination, so equal artwork yields byte-equal buffers.
func Canonicalize(img image.Image) *image.NRGBA {
	b := img.Bounds()
	tw, th := SelectSize(b.Dx(), b.Dy())

	dst := image.NewNRGBA(image.Rect(0, 0, tw, th))
	if tw == b.Dx() && th == b.Dy() {
		if src, ok := img.(*image.NRGBA); ok {
			// Byte copy: draw.Draw would route NRGBA through premultiplied
			// intermediates and clobber color under low alpha.
			for y := 0; y < th; y++ {
				off := src.PixOffset(b.Min.X, b.Min.Y+y)
				copy(dst.Pix[y*dst.Stride:y*dst.Stride+tw*4], src.Pix[off:off+tw*4])
			}
			return dst
		}
		draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Rect, img, b, draw.Src, nil)
	return dst
}
