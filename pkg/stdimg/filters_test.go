package stdimg

import (
	"bytes"
	"image"
	"math"
	"testing"
)

// makeStep returns a w x h raster that is lo left of column w/2 and hi from it on.
func makeStep(w, h int, lo, hi uint8) *image.Gray {
	img := makeSolidGray(w, h, lo)
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			img.Pix[y*w+x] = hi
		}
	}
	return img
}

func TestUnsharpMaskNonPositiveAmountCopies(t *testing.T) {
	src := makeStep(40, 5, 50, 200)
	for _, a := range []float64{0, -2, math.NaN()} {
		out := UnsharpMask(src, a)
		if !bytes.Equal(out.Pix, src.Pix) {
			t.Fatalf("amount %v should leave the raster unchanged", a)
		}
		if &out.Pix[0] == &src.Pix[0] {
			t.Fatalf("amount %v returned the source buffer", a)
		}
	}
}

func TestUnsharpMaskOvershootsEdges(t *testing.T) {
	src := makeStep(40, 5, 50, 200)
	out := UnsharpMask(src, 1)
	row := out.Pix[2*40 : 3*40]
	if row[19] >= 50 {
		t.Fatalf("dark side of the edge should darken, got %d", row[19])
	}
	if row[20] <= 200 {
		t.Fatalf("bright side of the edge should brighten, got %d", row[20])
	}
	// the 19-tap blur does not reach the step from the borders
	if row[0] != 50 || row[39] != 200 {
		t.Fatalf("flat regions changed: %d %d", row[0], row[39])
	}
}

func TestUnsharpMaskSaturates(t *testing.T) {
	src := makeStep(40, 3, 50, 200)
	for _, a := range []float64{1e6, math.Inf(1)} {
		out := UnsharpMask(src, a)
		row := out.Pix[40:80]
		if row[19] != 0 || row[20] != 255 {
			t.Fatalf("amount %v: expected saturation at the edge, got %d %d", a, row[19], row[20])
		}
		if row[0] != 50 || row[39] != 200 {
			t.Fatalf("amount %v: flat pixels must keep their value, got %d %d", a, row[0], row[39])
		}
	}
}

func TestUnsharpMaskConstant(t *testing.T) {
	src := makeSolidGray(30, 30, 140)
	out := UnsharpMask(src, 3)
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatalf("a constant raster has no detail to amplify")
	}
}

func TestAddWeighted(t *testing.T) {
	a := makeSolidGray(3, 3, 100)
	b := makeSolidGray(3, 3, 50)
	out := AddWeighted(a, 1.5, b, -0.5, 0)
	for _, v := range out.Pix {
		if v != 125 {
			t.Fatalf("expected 125, got %d", v)
		}
	}
	out = AddWeighted(a, 3, b, 0, 0)
	if out.Pix[0] != 255 {
		t.Fatalf("expected saturation, got %d", out.Pix[0])
	}
	if AddWeighted(a, 1, makeSolidGray(2, 3, 0), 1, 0) != nil {
		t.Fatalf("mismatched sizes should return nil")
	}
}
