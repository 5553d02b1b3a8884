package shockwave

import (
	"image"

	"github.com/Fepozopo/shockwave/pkg/stdimg"
)

// Params are the two caller-tunable knobs of a run. Any value is accepted; extreme values
// saturate the pixel domain.
type Params struct {
	Contrast  float64 // linear gain applied after the luma reduction
	Sharpness float64 // unsharp-mask weight; <= 0 disables sharpening
}

// DefaultParams returns contrast 1.0 and sharpness 0.0.
func DefaultParams() Params {
	return Params{Contrast: 1.0, Sharpness: 0.0}
}

// Variant tags which noise-reduction output feeds the rest of a run.
type Variant int

const (
	// Smoothed is the fixed 5x5 Gaussian blur of the contrast-adjusted luma.
	Smoothed Variant = iota
	// Sharpened is the unsharp mask of the contrast-adjusted luma.
	Sharpened
)

func (v Variant) String() string {
	switch v {
	case Smoothed:
		return "smoothed"
	case Sharpened:
		return "sharpened"
	default:
		return "unknown"
	}
}

// SelectVariant resolves the branch for a sharpness value: Sharpened only when sharpness > 0
// (NaN selects Smoothed).
func SelectVariant(sharpness float64) Variant {
	if sharpness > 0 {
		return Sharpened
	}
	return Smoothed
}

// Prepared is the working raster chosen for the remaining stages.
type Prepared struct {
	Variant Variant
	Image   *image.Gray
}

// Prepare computes the selected variant from the contrast-adjusted luma. Only the selected
// raster is produced.
func Prepare(gray *image.Gray, sharpness float64) Prepared {
	switch SelectVariant(sharpness) {
	case Sharpened:
		return Prepared{Variant: Sharpened, Image: stdimg.UnsharpMask(gray, sharpness)}
	default:
		return Prepared{Variant: Smoothed, Image: stdimg.Smooth(gray)}
	}
}
