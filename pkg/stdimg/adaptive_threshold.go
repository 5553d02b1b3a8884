package stdimg

import (
	"image"
	"math"
)

// AdaptiveMethod selects how the local threshold surface is computed.
type AdaptiveMethod int

const (
	// AdaptiveGaussian weights the neighborhood with a blockSize x blockSize Gaussian.
	AdaptiveGaussian AdaptiveMethod = iota
	// AdaptiveMean uses the plain box mean of the neighborhood.
	AdaptiveMean
)

// Edge binarization defaults.
const (
	DefaultThresholdBlock = 11
	DefaultThresholdBias  = 2.0
)

// LocalMean returns the rounded local mean of src over a blockSize x blockSize window, with
// replicated borders. blockSize is forced odd and at least 3.
func LocalMean(src *image.Gray, method AdaptiveMethod, blockSize int) *image.Gray {
	if src == nil {
		return nil
	}
	if blockSize < 3 {
		blockSize = 3
	}
	if blockSize%2 == 0 {
		blockSize++
	}
	if method == AdaptiveGaussian {
		return SeparableGaussianBlur(src, blockSize, 0, BorderReplicate)
	}
	pix, w, h := grayPlane(src)
	// integral image for fast box means
	integ := make([]float64, (w+1)*(h+1))
	for y := 1; y <= h; y++ {
		sum := 0.0
		for x := 1; x <= w; x++ {
			sum += float64(pix[(y-1)*w+(x-1)])
			integ[y*(w+1)+x] = integ[(y-1)*(w+1)+x] + sum
		}
	}
	half := blockSize / 2
	area := float64(blockSize * blockSize)
	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// replicated border: the clipped window plus the repeated edge rows/cols
			s := 0.0
			for dy := -half; dy <= half; dy++ {
				iy := replicate(y+dy, h)
				x0 := x - half
				x1 := x + half
				cx0 := clampInt(x0, 0, w-1)
				cx1 := clampInt(x1, 0, w-1)
				s += integ[(iy+1)*(w+1)+cx1+1] - integ[(iy+1)*(w+1)+cx0] - integ[iy*(w+1)+cx1+1] + integ[iy*(w+1)+cx0]
				if x0 < 0 {
					s += float64(-x0) * float64(pix[iy*w])
				}
				if x1 > w-1 {
					s += float64(x1-(w-1)) * float64(pix[iy*w+w-1])
				}
			}
			out[y*w+x] = saturateUint8(s / area)
		}
	}
	return newGrayFrom(out, w, h)
}

// AdaptiveThreshold binarizes src against its local mean: a pixel becomes 255 when
// value > mean - bias and 0 otherwise. The bias is rounded up to an integer.
func AdaptiveThreshold(src *image.Gray, method AdaptiveMethod, blockSize int, bias float64) *image.Gray {
	return adaptiveThreshold(src, method, blockSize, bias, false)
}

// EdgeThreshold binarizes an edge-strength map with the Gaussian adaptive threshold, but a pixel
// with zero strength is always background: a flat neighborhood has no edge to keep.
// Without this guard a flat raster (strength 0, mean 0, and 0 > -bias) would be all foreground
// and yield a single frame-sized contour.
func EdgeThreshold(strength *image.Gray, blockSize int, bias float64) *image.Gray {
	return adaptiveThreshold(strength, AdaptiveGaussian, blockSize, bias, true)
}

func adaptiveThreshold(src *image.Gray, method AdaptiveMethod, blockSize int, bias float64, dropZero bool) *image.Gray {
	if src == nil {
		return nil
	}
	pix, w, h := grayPlane(src)
	mean := LocalMean(src, method, blockSize)
	delta := 0
	if !math.IsNaN(bias) {
		delta = int(math.Ceil(math.Max(math.Min(bias, 1<<16), -(1 << 16))))
	}
	out := make([]uint8, w*h)
	for i, v := range pix {
		if dropZero && v == 0 {
			continue
		}
		if int(v)-int(mean.Pix[i]) > -delta {
			out[i] = 255
		}
	}
	return newGrayFrom(out, w, h)
}
