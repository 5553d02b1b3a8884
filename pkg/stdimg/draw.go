package stdimg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Contour overlay defaults.
var (
	HighlightColor = color.NRGBA{R: 0, G: 255, B: 0, A: 255}
)

const DefaultLineWidth = 2.0

// pixels with at least half stroke coverage are painted; the rest are left untouched
const coverageThreshold = 128

// DrawContours strokes every contour as a closed polyline of the given width over a copy of
// src and returns the annotated raster. The copy is made opaque first (alpha is not part of
// the rendered result). Pixel centers sit at (x+0.5, y+0.5); a single-point contour is drawn as
// a width x width dot. The stroke is not anti-aliased: a pixel is either col or untouched.
func DrawContours(src image.Image, contours []Contour, col color.Color, width float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	base := imaging.Clone(src)
	for i := 3; i < len(base.Pix); i += 4 {
		base.Pix[i] = 255
	}
	if len(contours) == 0 || width <= 0 {
		return base
	}

	// stroke coverage onto a separate mask so every painted pixel gets exactly col
	b := base.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(width)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)
	for _, c := range contours {
		switch len(c) {
		case 0:
			continue
		case 1:
			p := c[0]
			dc.DrawRectangle(float64(p.X)+0.5-width/2, float64(p.Y)+0.5-width/2, width, width)
			dc.Fill()
		default:
			dc.NewSubPath()
			dc.MoveTo(float64(c[0].X)+0.5, float64(c[0].Y)+0.5)
			for _, p := range c[1:] {
				dc.LineTo(float64(p.X)+0.5, float64(p.Y)+0.5)
			}
			dc.ClosePath()
			dc.Stroke()
		}
	}
	mask, ok := dc.Image().(*image.RGBA)
	if !ok {
		return base
	}
	paint := color.NRGBAModel.Convert(col).(color.NRGBA)
	paint.A = 255
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if mask.Pix[y*mask.Stride+x*4+3] < coverageThreshold {
				continue
			}
			i := y*base.Stride + x*4
			base.Pix[i], base.Pix[i+1], base.Pix[i+2], base.Pix[i+3] = paint.R, paint.G, paint.B, paint.A
		}
	}
	return base
}
