package stdimg

import (
	"image"
	"testing"
)

func TestEdgeStrengthConstantIsZero(t *testing.T) {
	out := EdgeStrength(makeSolidGray(12, 7, 201))
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %d, want 0", i, v)
		}
	}
}

func TestEdgeStrengthImpulse(t *testing.T) {
	src := makeSolidGray(5, 5, 0)
	src.Pix[2*5+2] = 10
	out := EdgeStrength(src)
	want := []uint8{
		0, 0, 0, 0, 0,
		0, 0, 10, 0, 0,
		0, 10, 40, 10, 0,
		0, 0, 10, 0, 0,
		0, 0, 0, 0, 0,
	}
	for i, v := range want {
		if out.Pix[i] != v {
			t.Fatalf("pixel %d = %d, want %d", i, out.Pix[i], v)
		}
	}
	src.Pix[2*5+2] = 255
	if got := EdgeStrength(src).Pix[2*5+2]; got != 255 {
		t.Fatalf("|-1020| should saturate to 255, got %d", got)
	}
}

func TestLaplacianReflectBorder(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 1))
	copy(src.Pix, []uint8{0, 0, 100, 100})
	resp := Laplacian(src)
	want := []float64{0, 100, -100, 0}
	for i := range want {
		if resp[i] != want[i] {
			t.Fatalf("response %d = %v, want %v", i, resp[i], want[i])
		}
	}
}
