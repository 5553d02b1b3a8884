package stdimg

import (
	"image"
	"math"
)

// CLAHE defaults used by the boundary detector.
const (
	DefaultCLAHEClipLimit = 2.0
	DefaultCLAHETiles     = 8
)

const histBins = 256

// CLAHEClipCount converts a relative clip limit (multiple of the average bin count) into an
// absolute per-bin ceiling for a tile of tileArea pixels. A non-positive limit disables clipping
// and yields 0.
func CLAHEClipCount(clipLimit float64, tileArea int) int {
	if !(clipLimit > 0) {
		return 0
	}
	c := clipLimit * float64(tileArea) / histBins
	if c > math.MaxInt32 {
		return math.MaxInt32
	}
	n := int(c)
	if n < 1 {
		n = 1
	}
	return n
}

// ClipHistogram caps every bin at limit and spreads the removed mass back over all bins:
// clipped/256 to each bin, then the residual one count at a time stepping by
// max(256/residual, 1) from bin 0. limit <= 0 leaves hist untouched.
func ClipHistogram(hist *[histBins]int, limit int) {
	if limit <= 0 {
		return
	}
	clipped := 0
	for i := range hist {
		if hist[i] > limit {
			clipped += hist[i] - limit
			hist[i] = limit
		}
	}
	batch := clipped / histBins
	residual := clipped - batch*histBins
	for i := range hist {
		hist[i] += batch
	}
	if residual == 0 {
		return
	}
	step := histBins / residual
	if step < 1 {
		step = 1
	}
	for i := 0; i < histBins && residual > 0; i += step {
		hist[i]++
		residual--
	}
}

// TileLUT builds the cumulative remapping lut[v] = round(cdf(v)*255/tileArea).
func TileLUT(hist *[histBins]int, tileArea int) [histBins]uint8 {
	var lut [histBins]uint8
	if tileArea <= 0 {
		return lut
	}
	scale := 255.0 / float64(tileArea)
	sum := 0
	for i := range hist {
		sum += hist[i]
		lut[i] = saturateUint8(float64(sum) * scale)
	}
	return lut
}

// CLAHE performs contrast-limited adaptive histogram equalization over a tilesX x tilesY grid.
//
// When either dimension is not divisible by its tile count the raster is extended on the
// bottom/right by reflect-101 (tiles - dim%tiles on each axis) so every tile has the same
// integral size. Each output pixel bilinearly interpolates the LUTs of the four tiles whose
// centers surround it; pixels outside the outermost centers clamp to the border tiles.
func CLAHE(src *image.Gray, clipLimit float64, tilesX, tilesY int) *image.Gray {
	if src == nil {
		return nil
	}
	if tilesX <= 0 {
		tilesX = DefaultCLAHETiles
	}
	if tilesY <= 0 {
		tilesY = DefaultCLAHETiles
	}
	pix, w, h := grayPlane(src)
	if w == 0 || h == 0 {
		return CloneGray(src)
	}

	extW, extH := w, h
	if w%tilesX != 0 || h%tilesY != 0 {
		extW = w + tilesX - w%tilesX
		extH = h + tilesY - h%tilesY
	}
	tileW := extW / tilesX
	tileH := extH / tilesY
	tileArea := tileW * tileH
	limit := CLAHEClipCount(clipLimit, tileArea)

	luts := make([][histBins]uint8, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			var hist [histBins]int
			for y := ty * tileH; y < (ty+1)*tileH; y++ {
				row := reflect101(y, h) * w
				for x := tx * tileW; x < (tx+1)*tileW; x++ {
					hist[pix[row+reflect101(x, w)]]++
				}
			}
			ClipHistogram(&hist, limit)
			luts[ty*tilesX+tx] = TileLUT(&hist, tileArea)
		}
	}

	// per-column tile indices and weights are shared by every row
	tx1s := make([]int, w)
	tx2s := make([]int, w)
	xas := make([]float64, w)
	for x := 0; x < w; x++ {
		tx1s[x], tx2s[x], xas[x] = tileNeighbors(x, tileW, tilesX)
	}

	out := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		ty1, ty2, ya := tileNeighbors(y, tileH, tilesY)
		ya1 := 1 - ya
		top1 := luts[ty1*tilesX:]
		top2 := luts[ty2*tilesX:]
		for x := 0; x < w; x++ {
			v := pix[y*w+x]
			xa := xas[x]
			xa1 := 1 - xa
			tx1, tx2 := tx1s[x], tx2s[x]
			res := (float64(top1[tx1][v])*xa1+float64(top1[tx2][v])*xa)*ya1 +
				(float64(top2[tx1][v])*xa1+float64(top2[tx2][v])*xa)*ya
			out[y*w+x] = saturateUint8(res)
		}
	}
	return newGrayFrom(out, w, h)
}

// tileNeighbors locates the two tiles whose centers bracket coordinate p and the weight of
// the second one.
func tileNeighbors(p, tileSize, tiles int) (int, int, float64) {
	f := float64(p)/float64(tileSize) - 0.5
	t1 := int(math.Floor(f))
	t2 := t1 + 1
	a := f - float64(t1)
	if t1 < 0 {
		t1 = 0
	}
	if t2 > tiles-1 {
		t2 = tiles - 1
	}
	return t1, t2, a
}
