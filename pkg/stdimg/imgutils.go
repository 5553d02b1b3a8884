package stdimg

import (
	"image"
	"math"
)

// ToNRGBA converts any image.Image to an origin-anchored *image.NRGBA (non-premultiplied RGBA).
func ToNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if n, ok := src.(*image.NRGBA); ok {
		// return a copy to avoid modifying original
		for y := 0; y < b.Dy(); y++ {
			si := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:y*out.Stride+4*b.Dx()], n.Pix[si:si+4*b.Dx()])
		}
		return out
	}
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, b_, a := src.At(x, y).RGBA()
			// r,g,b,a are 16-bit premultiplied; un-premultiply before truncating to 8-bit
			if a != 0 && a != 0xffff {
				r = r * 0xffff / a
				g = g * 0xffff / a
				b_ = b_ * 0xffff / a
			}
			out.Pix[idx+0] = uint8(r >> 8)
			out.Pix[idx+1] = uint8(g >> 8)
			out.Pix[idx+2] = uint8(b_ >> 8)
			out.Pix[idx+3] = uint8(a >> 8)
			idx += 4
		}
	}
	return out
}

// CloneGray returns an origin-anchored copy of src.
func CloneGray(src *image.Gray) *image.Gray {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], src.Pix[si:si+b.Dx()])
	}
	return out
}

// GrayToNRGBA expands a grayscale raster into an opaque color raster.
func GrayToNRGBA(src *image.Gray) *image.NRGBA {
	if src == nil {
		return nil
	}
	g := CloneGray(src)
	w, h := g.Rect.Dx(), g.Rect.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, v := range g.Pix {
		out.Pix[4*i+0] = v
		out.Pix[4*i+1] = v
		out.Pix[4*i+2] = v
		out.Pix[4*i+3] = 255
	}
	return out
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// saturateUint8 rounds half to even and clamps to [0,255]. NaN maps to 0.
func saturateUint8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}

// reflect101 maps an out-of-range index into [0,n) mirroring around the edge
// pixel without repeating it: gfedcb|abcdefgh|gfedcba.
func reflect101(i, n int) int {
	if n <= 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// replicate maps an out-of-range index onto the nearest edge pixel: aaaaaa|abcdefgh|hhhhhhh.
func replicate(i, n int) int {
	return clampInt(i, 0, n-1)
}

// grayPlane returns the pixels of src as a dense row-major slice of width*height values.
func grayPlane(src *image.Gray) ([]uint8, int, int) {
	g := src
	if g.Rect.Min != (image.Point{}) || g.Stride != g.Rect.Dx() {
		g = CloneGray(src)
	}
	return g.Pix, g.Rect.Dx(), g.Rect.Dy()
}

// newGrayFrom wraps a dense row-major plane into an *image.Gray.
func newGrayFrom(pix []uint8, w, h int) *image.Gray {
	return &image.Gray{Pix: pix, Stride: w, Rect: image.Rect(0, 0, w, h)}
}
