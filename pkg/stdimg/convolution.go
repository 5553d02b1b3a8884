package stdimg

import (
	"image"
	"math"

	"gonum.org/v1/gonum/floats"
)

// BorderMode selects how pixels outside the raster are synthesized during convolution.
type BorderMode int

const (
	// BorderReflect101 mirrors around the edge pixel without repeating it: gfedcb|abcdefgh|gfedcba.
	BorderReflect101 BorderMode = iota
	// BorderReplicate repeats the edge pixel: aaaaaa|abcdefgh|hhhhhhh.
	BorderReplicate
)

func (m BorderMode) index(i, n int) int {
	if m == BorderReplicate {
		return replicate(i, n)
	}
	return reflect101(i, n)
}

// SmoothKernelSize is the fixed aperture of the noise-reduction blur.
const SmoothKernelSize = 5

// binomial kernels used when sigma is derived from a small odd aperture
var smallGaussianTab = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// GaussianSigmaForSize derives sigma from an aperture: 0.3*((ksize-1)*0.5 - 1) + 0.8.
func GaussianSigmaForSize(ksize int) float64 {
	return 0.3*(float64(ksize-1)*0.5-1) + 0.8
}

// GaussianSizeForSigma picks the odd aperture covering sigma for 8-bit data: round(6*sigma+1) | 1.
func GaussianSizeForSigma(sigma float64) int {
	k := int(math.Round(sigma*6+1)) | 1
	if k < 1 {
		k = 1
	}
	return k
}

// GaussianKernel returns a normalized 1D kernel. ksize <= 0 derives the size from sigma;
// sigma <= 0 derives sigma from ksize, using the binomial table for apertures up to 7.
func GaussianKernel(ksize int, sigma float64) []float64 {
	if ksize <= 0 {
		if sigma <= 0 || math.IsNaN(sigma) {
			return []float64{1}
		}
		ksize = GaussianSizeForSigma(sigma)
	}
	if ksize%2 == 0 {
		ksize++
	}
	if sigma <= 0 || math.IsNaN(sigma) {
		if tab, ok := smallGaussianTab[ksize]; ok {
			return append([]float64(nil), tab...)
		}
		sigma = GaussianSigmaForSize(ksize)
	}
	radius := ksize / 2
	kern := make([]float64, ksize)
	for i := -radius; i <= radius; i++ {
		kern[i+radius] = math.Exp(-0.5 * float64(i*i) / (sigma * sigma))
	}
	floats.Scale(1/floats.Sum(kern), kern)
	return kern
}

// convolveSeparable runs a horizontal then a vertical pass over a dense plane and
// returns the unrounded response.
func convolveSeparable(pix []uint8, w, h int, kx, ky []float64, border BorderMode) []float64 {
	rx := len(kx) / 2
	ry := len(ky) / 2
	tmp := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := pix[y*w : y*w+w]
		for x := 0; x < w; x++ {
			s := 0.0
			for k := -rx; k <= rx; k++ {
				s += float64(row[border.index(x+k, w)]) * kx[k+rx]
			}
			tmp[y*w+x] = s
		}
	}
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := 0.0
			for k := -ry; k <= ry; k++ {
				s += tmp[border.index(y+k, h)*w+x] * ky[k+ry]
			}
			out[y*w+x] = s
		}
	}
	return out
}

// convolve3x3 applies a 3x3 kernel and returns the signed response.
func convolve3x3(pix []uint8, w, h int, k [3][3]float64, border BorderMode) []float64 {
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := 0.0
			for ky := -1; ky <= 1; ky++ {
				iy := border.index(y+ky, h)
				for kx := -1; kx <= 1; kx++ {
					wgt := k[ky+1][kx+1]
					if wgt == 0 {
						continue
					}
					s += float64(pix[iy*w+border.index(x+kx, w)]) * wgt
				}
			}
			out[y*w+x] = s
		}
	}
	return out
}

// SeparableGaussianBlur blurs src with a ksize x ksize Gaussian (see GaussianKernel for the
// ksize/sigma derivation) and returns a new raster.
func SeparableGaussianBlur(src *image.Gray, ksize int, sigma float64, border BorderMode) *image.Gray {
	if src == nil {
		return nil
	}
	pix, w, h := grayPlane(src)
	kern := GaussianKernel(ksize, sigma)
	resp := convolveSeparable(pix, w, h, kern, kern, border)
	out := make([]uint8, w*h)
	for i, v := range resp {
		out[i] = saturateUint8(v)
	}
	return newGrayFrom(out, w, h)
}

// Smooth applies the fixed 5x5 noise-reduction blur with reflect-101 borders.
func Smooth(src *image.Gray) *image.Gray {
	return SeparableGaussianBlur(src, SmoothKernelSize, 0, BorderReflect101)
}
