package stdimg

import (
	"image"
	"math"
)

// ComputeHistogram counts the 256 intensity levels of a grayscale raster.
func ComputeHistogram(src *image.Gray) [256]int {
	var hist [256]int
	if src == nil {
		return hist
	}
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := src.PixOffset(b.Min.X, y)
		for _, v := range src.Pix[i : i+b.Dx()] {
			hist[v]++
		}
	}
	return hist
}

// Equalize performs global histogram equalization: the lowest occupied level maps to 0 and
// lut[v] = round((cdf(v) - hist[vmin]) * 255 / (N - hist[vmin])). A raster with a single
// occupied level is returned unchanged.
func Equalize(src *image.Gray) *image.Gray {
	if src == nil {
		return nil
	}
	pix, w, h := grayPlane(src)
	total := w * h
	hist := ComputeHistogram(src)
	vmin := 0
	for vmin < 255 && hist[vmin] == 0 {
		vmin++
	}
	if total == 0 || hist[vmin] == total {
		return CloneGray(src)
	}
	var lut [256]uint8
	scale := 255.0 / float64(total-hist[vmin])
	sum := 0
	for v := vmin + 1; v < 256; v++ {
		sum += hist[v]
		lut[v] = saturateUint8(float64(sum) * scale)
	}
	out := make([]uint8, len(pix))
	for i, v := range pix {
		out[i] = lut[v]
	}
	return newGrayFrom(out, w, h)
}

// RenderHistogramImage renders a grayscale histogram as bars on a white width x height canvas.
func RenderHistogramImage(hist [256]int, width, height int) *image.Gray {
	if width <= 0 {
		width = 512
	}
	if height <= 0 {
		height = 120
	}
	out := image.NewGray(image.Rect(0, 0, width, height))
	for i := range out.Pix {
		out.Pix[i] = 255
	}
	maxv := 1
	for _, v := range hist {
		if v > maxv {
			maxv = v
		}
	}
	// draw each bin as a vertical line at x position
	for x := 0; x < width; x++ {
		bin := clampInt(int(math.Floor(float64(x)*256/float64(width))), 0, 255)
		bh := int(math.Round(float64(hist[bin]) / float64(maxv) * float64(height-1)))
		for y := 0; y < bh; y++ {
			out.Pix[(height-1-y)*out.Stride+x] = 0
		}
	}
	return out
}
