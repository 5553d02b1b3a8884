package stdimg

import (
	"image"
)

// UnsharpSigma is the sigma of the wide blur subtracted by UnsharpMask.
const UnsharpSigma = 3.0

// AddWeighted blends two equally sized rasters: clamp(round(a*alpha + b*beta + gamma)).
func AddWeighted(a *image.Gray, alpha float64, b *image.Gray, beta, gamma float64) *image.Gray {
	if a == nil || b == nil {
		return nil
	}
	ap, w, h := grayPlane(a)
	bp, bw, bh := grayPlane(b)
	if bw != w || bh != h {
		return nil
	}
	out := make([]uint8, w*h)
	for i := range out {
		out[i] = saturateUint8(float64(ap[i])*alpha + float64(bp[i])*beta + gamma)
	}
	return newGrayFrom(out, w, h)
}

// UnsharpMask sharpens src: src*(1+amount) - wideBlur*amount, where wideBlur is a Gaussian
// with sigma = UnsharpSigma and an aperture chosen to cover it. amount <= 0 returns a copy.
//
// Evaluated as src + amount*(src-wideBlur): an infinite amount saturates toward the sign
// of the local detail and leaves flat pixels untouched.
func UnsharpMask(src *image.Gray, amount float64) *image.Gray {
	if src == nil {
		return nil
	}
	if !(amount > 0) {
		return CloneGray(src)
	}
	pix, w, h := grayPlane(src)
	wide := SeparableGaussianBlur(src, 0, UnsharpSigma, BorderReflect101)
	out := make([]uint8, w*h)
	for i, s := range pix {
		d := float64(s) - float64(wide.Pix[i])
		if d == 0 {
			out[i] = s
			continue
		}
		out[i] = saturateUint8(float64(s) + amount*d)
	}
	return newGrayFrom(out, w, h)
}
