package icon

import (
	"crypto/sha256"
	"fmt"
	"image"
)

// Digest returns the hex SHA-256 of the canonical pixel buffer. Rows are
// hashed without stride padding, so images holding the same pixels in
// differently allocated buffers produce the same digest.
func Digest(img *image.NRGBA) string {
	h := sha256.New()
	w := img.Rect.Dx()
	for y := 0; y < img.Rect.Dy(); y++ {
		h.Write(img.Pix[y*img.Stride : y*img.Stride+w*4])
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
