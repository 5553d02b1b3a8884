package stdimg

import (
	"image"
	"testing"
)

func TestComputeHistogram(t *testing.T) {
	src := makeSolidGray(4, 3, 7)
	src.Pix[0] = 200
	hist := ComputeHistogram(src)
	if hist[7] != 11 || hist[200] != 1 {
		t.Fatalf("unexpected counts: %d %d", hist[7], hist[200])
	}
	sub := src.SubImage(image.Rect(1, 0, 4, 3)).(*image.Gray)
	if h := ComputeHistogram(sub); h[200] != 0 || h[7] != 9 {
		t.Fatalf("sub-image histogram should only count its own pixels")
	}
}

func TestEqualizeLevels(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	// 8 pixels of 0, 4 of 100, 4 of 200
	for i := range src.Pix {
		switch {
		case i < 8:
			src.Pix[i] = 0
		case i < 12:
			src.Pix[i] = 100
		default:
			src.Pix[i] = 200
		}
	}
	out := Equalize(src)
	// lut[100] = round(4*255/8) = 127.5 -> 128
	if out.Pix[0] != 0 || out.Pix[8] != 128 || out.Pix[15] != 255 {
		t.Fatalf("unexpected equalization: %d %d %d", out.Pix[0], out.Pix[8], out.Pix[15])
	}
}

func TestEqualizeStretchesTwoLevels(t *testing.T) {
	src := makeSolidGray(4, 4, 10)
	for i := 6; i < 16; i++ {
		src.Pix[i] = 20
	}
	out := Equalize(src)
	if out.Pix[0] != 0 || out.Pix[15] != 255 {
		t.Fatalf("two levels should map to 0 and 255, got %d %d", out.Pix[0], out.Pix[15])
	}
}

func TestEqualizeConstantUnchanged(t *testing.T) {
	src := makeSolidGray(5, 5, 128)
	out := Equalize(src)
	for i, v := range out.Pix {
		if v != 128 {
			t.Fatalf("pixel %d = %d, want 128", i, v)
		}
	}
}

func TestRenderHistogramImage(t *testing.T) {
	var hist [256]int
	hist[0] = 10
	hist[255] = 5
	img := RenderHistogramImage(hist, 256, 11)
	if img.Bounds() != image.Rect(0, 0, 256, 11) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	// bars grow up from the bottom row and leave the top row white
	if img.Pix[1*256+0] != 0 || img.Pix[10*256+0] != 0 || img.Pix[0] != 255 {
		t.Fatalf("bin 0 should be a full bar")
	}
	if img.Pix[10*256+128] != 255 {
		t.Fatalf("empty bins should stay white")
	}
	if img.Pix[10*256+255] != 0 || img.Pix[5*256+255] != 255 {
		t.Fatalf("bin 255 should be a partial bar")
	}
}
