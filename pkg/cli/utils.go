package cli

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/Fepozopo/shockwave/pkg/shockwave"
	"github.com/Fepozopo/shockwave/pkg/stdimg"
)

// promptLine displays a prompt and reads a full line of input from r.
// The returned string is trimmed of surrounding whitespace (including the newline).
func promptLine(r *bufio.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LoadImage reads and decodes the image at path and returns it with its sniffed format.
func LoadImage(path string) (*image.NRGBA, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return shockwave.DecodeBytes(b)
}

// SaveImage encodes img to path in format; an empty format is inferred from the extension.
func SaveImage(path string, img image.Image, format string) error {
	if format == "" {
		format = filepath.Ext(path)
	}
	f, err := shockwave.ParseFormat(format)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := shockwave.Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// DefaultOutputPath names the result of processing input: processed_<name> in the same
// directory. The extension is kept when it matches format and replaced otherwise.
func DefaultOutputPath(input string, format shockwave.Format) string {
	dir, base := filepath.Split(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if f, err := shockwave.ParseFormat(ext); err != nil || f != format || ext == "" {
		ext = format.Extension()
	}
	return filepath.Join(dir, "processed_"+stem+ext)
}

// ResolveFormat picks the output format: an explicit name wins, then the output path
// extension, then the input extension, then PNG.
func ResolveFormat(explicit, output, input string) (shockwave.Format, error) {
	if explicit != "" {
		return shockwave.ParseFormat(explicit)
	}
	if output != "" {
		return shockwave.ParseFormat(filepath.Ext(output))
	}
	if f, err := shockwave.ParseFormat(filepath.Ext(input)); err == nil {
		return f, nil
	}
	return shockwave.FormatPNG, nil
}

// GetImageInfoImage returns a short info string for an image: format, size and the mean and
// standard deviation of its luma.
func GetImageInfoImage(img image.Image, format string) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}
	if format == "" {
		format = "unknown"
	}
	b := img.Bounds()
	gray := stdimg.ToGray(img)
	vals := make([]float64, len(gray.Pix))
	for i, v := range gray.Pix {
		vals[i] = float64(v)
	}
	mean, std := 0.0, 0.0
	if len(vals) > 1 {
		mean, std = stat.MeanStdDev(vals, nil)
	} else if len(vals) == 1 {
		mean = vals[0]
	}
	return fmt.Sprintf("Format: %s, Width: %d, Height: %d, Mean: %.2f, StdDev: %.2f",
		strings.ToUpper(format), b.Dx(), b.Dy(), mean, std), nil
}
