package stdimg

import (
	"image"

	"github.com/disintegration/gift"
)

// Dilate grows bright regions with a 3x3 all-ones structuring element, applied iterations
// times. Each output pixel is the maximum of its 3x3 neighborhood. gift clamps reads at the
// border, which for a maximum is the same as ignoring neighbors outside the raster.
func Dilate(src *image.Gray, iterations int) *image.Gray {
	if src == nil {
		return nil
	}
	pix, w, h := grayPlane(src)
	cur := newGrayFrom(append([]uint8(nil), pix...), w, h)
	if w == 0 || h == 0 {
		return cur
	}
	g := gift.New(gift.Maximum(3, false))
	for it := 0; it < iterations; it++ {
		next := image.NewGray(g.Bounds(cur.Bounds()))
		g.Draw(next, cur)
		cur = next
	}
	return cur
}
