package stdimg

import (
	"image"
)

// Fixed-point luma weights (0.299, 0.587, 0.114) scaled by 2^14.
const (
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
	lumaShift = 14
)

// Luma reduces one RGB triple to its 8-bit luma value.
func Luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*lumaR + uint32(g)*lumaG + uint32(b)*lumaB + 1<<(lumaShift-1)) >> lumaShift)
}

// ToGray converts src to a single-channel raster with the fixed luma reduction.
// Alpha is ignored; the color channels are taken as stored.
func ToGray(src image.Image) *image.Gray {
	if src == nil {
		return nil
	}
	if g, ok := src.(*image.Gray); ok {
		return CloneGray(g)
	}
	n, ok := src.(*image.NRGBA)
	if !ok || n.Rect.Min != (image.Point{}) {
		n = ToNRGBA(src)
	}
	w, h := n.Rect.Dx(), n.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := n.PixOffset(x, y)
			out.Pix[y*out.Stride+x] = Luma(n.Pix[i+0], n.Pix[i+1], n.Pix[i+2])
		}
	}
	return out
}

// AdjustContrast applies a linear gain with no offset: out = clamp(round(in*gain), 0, 255).
// Values saturate instead of wrapping; a NaN product maps to 0.
func AdjustContrast(src *image.Gray, gain float64) *image.Gray {
	if src == nil {
		return nil
	}
	pix, w, h := grayPlane(src)
	// 256-entry table keeps the per-pixel work to a lookup
	var lut [256]uint8
	for v := range lut {
		lut[v] = saturateUint8(float64(v) * gain)
	}
	out := make([]uint8, len(pix))
	for i, v := range pix {
		out[i] = lut[v]
	}
	return newGrayFrom(out, w, h)
}
