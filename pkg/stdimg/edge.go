package stdimg

import (
	"image"
	"math"
)

// laplacianKernel is the 3x3 aperture of the discrete Laplacian.
var laplacianKernel = [3][3]float64{
	{0, 1, 0},
	{1, -4, 1},
	{0, 1, 0},
}

// Laplacian returns the signed second-derivative response of src as a dense row-major
// plane (reflect-101 borders).
func Laplacian(src *image.Gray) []float64 {
	if src == nil {
		return nil
	}
	pix, w, h := grayPlane(src)
	return convolve3x3(pix, w, h, laplacianKernel, BorderReflect101)
}

// EdgeStrength maps the Laplacian response of src to clamp(round(|L|), 0, 255).
func EdgeStrength(src *image.Gray) *image.Gray {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	resp := Laplacian(src)
	out := make([]uint8, len(resp))
	for i, v := range resp {
		out[i] = saturateUint8(math.Abs(v))
	}
	return newGrayFrom(out, b.Dx(), b.Dy())
}
