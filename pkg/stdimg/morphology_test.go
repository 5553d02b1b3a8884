package stdimg

import (
	"testing"
)

func TestDilateSinglePixel(t *testing.T) {
	src := makeMask(
		".....",
		".....",
		"..#..",
		".....",
		".....",
	)
	want := makeMask(
		".....",
		".###.",
		".###.",
		".###.",
		".....",
	)
	out := Dilate(src, 1)
	for i := range want.Pix {
		if out.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel %d = %d, want %d", i, out.Pix[i], want.Pix[i])
		}
	}
	out = Dilate(src, 2)
	for i, v := range out.Pix {
		if v != 255 {
			t.Fatalf("two iterations should fill the 5x5 raster, pixel %d = %d", i, v)
		}
	}
}

func TestDilateCornerIgnoresOutside(t *testing.T) {
	out := Dilate(makeMask(
		"#..",
		"...",
		"...",
	), 1)
	want := makeMask(
		"##.",
		"##.",
		"...",
	)
	for i := range want.Pix {
		if out.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel %d = %d, want %d", i, out.Pix[i], want.Pix[i])
		}
	}
}

func TestDilateIsMonotonic(t *testing.T) {
	src := makeSolidGray(31, 17, 0)
	seed := uint32(99)
	for i := range src.Pix {
		seed = seed*1103515245 + 12345
		if (seed>>16)%7 == 0 {
			src.Pix[i] = 255
		}
	}
	out := Dilate(src, 1)
	grew := false
	for i, v := range src.Pix {
		if v != 0 && out.Pix[i] == 0 {
			t.Fatalf("dilation removed foreground pixel %d", i)
		}
		if v == 0 && out.Pix[i] != 0 {
			grew = true
		}
	}
	if !grew {
		t.Fatalf("expected dilation to add pixels")
	}
}

func TestDilateZeroIterationsCopies(t *testing.T) {
	src := makeMask("#.#", ".#.")
	out := Dilate(src, 0)
	if &out.Pix[0] == &src.Pix[0] {
		t.Fatalf("expected a copy")
	}
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel %d changed", i)
		}
	}
}

func TestDilateGrayLevels(t *testing.T) {
	src := makeSolidGray(4, 1, 0)
	copy(src.Pix, []uint8{1, 5, 2, 9})
	out := Dilate(src, 1)
	want := []uint8{5, 5, 9, 9}
	for i, v := range want {
		if out.Pix[i] != v {
			t.Fatalf("pixel %d = %d, want %d", i, out.Pix[i], v)
		}
	}
	if src.Pix[0] != 1 {
		t.Fatalf("source modified")
	}
}
