package stdimg

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestLumaWeights(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		want    uint8
	}{
		{0, 0, 0, 0},
		{255, 255, 255, 255},
		{255, 0, 0, 76},
		{0, 255, 0, 150},
		{0, 0, 255, 29},
		{128, 128, 128, 128},
	}
	for _, c := range cases {
		if got := Luma(c.r, c.g, c.b); got != c.want {
			t.Fatalf("Luma(%d,%d,%d) = %d, want %d", c.r, c.g, c.b, got, c.want)
		}
	}
}

func TestToGrayIgnoresAlphaAndOffset(t *testing.T) {
	src := makeSolidNRGBA(6, 4, color.NRGBA{R: 0, G: 255, B: 0, A: 10})
	sub := src.SubImage(image.Rect(2, 1, 5, 3))
	g := ToGray(sub)
	if g.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("expected origin-anchored 3x2, got %v", g.Bounds())
	}
	for _, v := range g.Pix {
		if v != 150 {
			t.Fatalf("expected luma 150 from the stored channels, got %d", v)
		}
	}
}

func TestAdjustContrast(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 5, 1))
	copy(src.Pix, []uint8{0, 1, 25, 26, 200})
	cases := []struct {
		gain float64
		want []uint8
	}{
		{0, []uint8{0, 0, 0, 0, 0}},
		{1, []uint8{0, 1, 25, 26, 200}},
		{0.5, []uint8{0, 0, 12, 13, 100}},
		{10, []uint8{0, 10, 250, 255, 255}},
		{1e12, []uint8{0, 255, 255, 255, 255}},
		{math.Inf(1), []uint8{0, 255, 255, 255, 255}},
		{-3, []uint8{0, 0, 0, 0, 0}},
		{math.NaN(), []uint8{0, 0, 0, 0, 0}},
	}
	for _, c := range cases {
		out := AdjustContrast(src, c.gain)
		for i, v := range c.want {
			if out.Pix[i] != v {
				t.Fatalf("gain %v: pixel %d = %d, want %d", c.gain, i, out.Pix[i], v)
			}
		}
	}
	if src.Pix[4] != 200 {
		t.Fatalf("source was modified")
	}
}
