package shockwave

import (
	"bytes"
	"image"
	"io"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads a complete raster from r. JPEG EXIF orientation is applied and the result is an
// origin-anchored NRGBA copy. Unknown, truncated or corrupt data and rasters without pixels
// fail with *DecodeError.
func Decode(r io.Reader) (*image.NRGBA, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	img, _, err := DecodeBytes(data)
	return img, err
}

// DecodeBytes decodes data and also returns the sniffed format name ("png", "jpeg", "gif",
// "bmp", "tiff" or "webp").
func DecodeBytes(data []byte) (*image.NRGBA, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, format, &DecodeError{Format: format, Err: err}
	}
	if img.Bounds().Empty() {
		return nil, format, &DecodeError{Format: format, Err: errEmptyRaster}
	}
	return imaging.Clone(img), format, nil
}

// DecodeFile reads and decodes the raster stored at path. Failing to open or read the file is
// reported as a plain error; unreadable contents are a *DecodeError.
func DecodeFile(path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := DecodeBytes(data)
	return img, err
}
