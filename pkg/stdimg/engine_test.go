package stdimg

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"
)

func makeSolidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}

func makeSolidGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// makeMask builds a binary raster from rows of '#' (255) and '.' (0).
func makeMask(rows ...string) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				img.Pix[y*img.Stride+x] = 255
			}
		}
	}
	return img
}

func saveIfRequested(t *testing.T, name string, img image.Image) {
	t.Helper()
	if os.Getenv("SHOCKWAVE_SAVE_TEST_OUTPUT") != "1" {
		return
	}
	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	png.Encode(f, img)
}

func TestEngineRunsEveryRegisteredCommand(t *testing.T) {
	src := makeSolidNRGBA(24, 24, color.NRGBA{R: 40, G: 40, B: 40, A: 255})
	for y := 8; y < 16; y++ {
		for x := 8; x < 16; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 220, G: 210, B: 200, A: 255})
		}
	}
	args := map[string][]string{
		"contrast": {"1.5"},
		"gaussian": {"1.2"},
		"sharpen":  {"0.8"},
	}
	for _, cmd := range Commands {
		out, err := ApplyCommandStdlib(src, cmd.Name, args[cmd.Name])
		if err != nil {
			t.Fatalf("%s failed: %v", cmd.Name, err)
		}
		if cmd.Name == "identify" {
			if out != nil {
				t.Fatalf("identify should not return an image")
			}
			continue
		}
		if out == nil {
			t.Fatalf("%s returned nil image", cmd.Name)
		}
		if cmd.Name != "histogram" && out.Bounds() != src.Bounds() {
			t.Fatalf("%s changed bounds to %v", cmd.Name, out.Bounds())
		}
		saveIfRequested(t, "engine_"+cmd.Name+"_out.png", out)
	}
}

func TestEngineRejectsBadInput(t *testing.T) {
	src := makeSolidGray(4, 4, 9)
	if _, err := ApplyCommandStdlib(src, "sepia", nil); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported command error, got %v", err)
	}
	if _, err := ApplyCommandStdlib(nil, "grayscale", nil); err == nil {
		t.Fatalf("expected error for nil image")
	}
	bad := map[string][]string{
		"contrast":          {},
		"sharpen":           {"abc"},
		"gaussian":          {"0"},
		"clahe":             {"2", "0"},
		"adaptiveThreshold": {"11", "2", "median"},
	}
	for name, args := range bad {
		if _, err := ApplyCommandStdlib(src, name, args); err == nil {
			t.Fatalf("%s %v: expected error", name, args)
		}
	}
}

func TestEngineChainMatchesStages(t *testing.T) {
	// grayscale -> contrast -> smooth through the engine equals the direct calls
	src := makeSolidNRGBA(9, 9, color.NRGBA{R: 90, G: 30, B: 200, A: 255})
	src.SetNRGBA(4, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	var img image.Image = src
	var err error
	for _, step := range []struct {
		name string
		args []string
	}{{"grayscale", nil}, {"contrast", []string{"1.7"}}, {"smooth", nil}} {
		if img, err = ApplyCommandStdlib(img, step.name, step.args); err != nil {
			t.Fatalf("%s failed: %v", step.name, err)
		}
	}
	want := Smooth(AdjustContrast(ToGray(src), 1.7))
	got := img.(*image.Gray)
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel %d: engine %d, direct %d", i, got.Pix[i], want.Pix[i])
		}
	}
}

func TestCommandRegistryIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Commands {
		if seen[c.Name] {
			t.Fatalf("duplicate command %q", c.Name)
		}
		seen[c.Name] = true
		if !strings.HasPrefix(c.Usage, c.Name) {
			t.Fatalf("usage of %q should start with its name: %q", c.Name, c.Usage)
		}
	}
}
