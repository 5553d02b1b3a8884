package shockwave

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeBytesFormats(t *testing.T) {
	src := makeSquareNRGBA(24, 16, 8)
	cases := []struct {
		name   string
		encode func(*bytes.Buffer) error
	}{
		{"png", func(b *bytes.Buffer) error { return Encode(b, src, FormatPNG) }},
		{"jpeg", func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) }},
		{"bmp", func(b *bytes.Buffer) error { return Encode(b, src, FormatBMP) }},
		{"tiff", func(b *bytes.Buffer) error { return Encode(b, src, FormatTIFF) }},
		{"gif", func(b *bytes.Buffer) error { return gif.Encode(b, src, nil) }},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := tc.encode(&buf); err != nil {
			t.Fatalf("%s: encode: %v", tc.name, err)
		}
		img, format, err := DecodeBytes(buf.Bytes())
		if err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if format != tc.name {
			t.Fatalf("%s: sniffed format %q", tc.name, format)
		}
		if img.Bounds() != image.Rect(0, 0, 24, 16) {
			t.Fatalf("%s: bounds %v", tc.name, img.Bounds())
		}
	}
}

func TestDecodeLosslessPixels(t *testing.T) {
	src := makeSolidNRGBA(5, 5, color.NRGBA{10, 200, 30, 255})
	img, err := Decode(bytes.NewReader(encodePNG(t, src)))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := img.NRGBAAt(2, 2); got != (color.NRGBA{10, 200, 30, 255}) {
		t.Fatalf("pixel changed on decode: %v", got)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode(strings.NewReader("this is not a raster"))
	if err == nil {
		t.Fatalf("expected error for garbage input")
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if de.Format != "" {
		t.Fatalf("unknown data should not report a format, got %q", de.Format)
	}
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("errors.Is(err, ErrDecode) should hold")
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := encodePNG(t, makeSquareNRGBA(64, 64, 20))
	for _, n := range []int{0, 8, 40, len(data) / 2, len(data) - 12} {
		_, _, err := DecodeBytes(data[:n])
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("truncated to %d bytes: expected *DecodeError, got %v", n, err)
		}
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "in.png")
	if err := os.WriteFile(p, encodePNG(t, makeSquareNRGBA(10, 10, 4)), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	img, err := DecodeFile(p)
	if err != nil {
		t.Fatalf("decode file: %v", err)
	}
	if img.Bounds().Dx() != 10 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	_, err = DecodeFile(filepath.Join(dir, "missing.png"))
	if err == nil || errors.Is(err, ErrDecode) {
		t.Fatalf("a missing file is an I/O error, not a DecodeError: %v", err)
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	err := &DecodeError{Format: "png", Err: errors.New("unexpected EOF")}
	if err.Error() != "decode png image: unexpected EOF" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if errors.Unwrap(err).Error() != "unexpected EOF" {
		t.Fatalf("Unwrap should return the cause")
	}
}
