package stdimg

import (
	"image"
	"math"
)

// Contour is a closed boundary polyline in image coordinates. Straight horizontal, vertical
// and diagonal runs are stored by their end points only.
type Contour []image.Point

// Bounds returns the smallest rectangle containing every point of c.
func (c Contour) Bounds() image.Rectangle {
	if len(c) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: c[0], Max: c[0].Add(image.Pt(1, 1))}
	for _, p := range c[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

// Perimeter is the length of the closed polyline through the points of c.
func (c Contour) Perimeter() float64 {
	if len(c) < 2 {
		return 0
	}
	total := 0.0
	for i := range c {
		a := c[i]
		b := c[(i+1)%len(c)]
		total += math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
	}
	return total
}

// Area returns the absolute shoelace area enclosed by c.
func (c Contour) Area() float64 {
	if len(c) < 3 {
		return 0
	}
	s := 0
	for i := range c {
		a := c[i]
		b := c[(i+1)%len(c)]
		s += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(float64(s)) / 2
}

// Contains reports whether p lies strictly inside the polygon of c (even-odd rule).
func (c Contour) Contains(p image.Point) bool {
	if len(c) < 3 {
		return false
	}
	in := false
	px, py := float64(p.X), float64(p.Y)
	for i, j := 0, len(c)-1; i < len(c); j, i = i, i+1 {
		xi, yi := float64(c[i].X), float64(c[i].Y)
		xj, yj := float64(c[j].X), float64(c[j].Y)
		if (yi > py) != (yj > py) && px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			in = !in
		}
	}
	return in
}

// neighbor directions, counterclockwise on screen starting east: E NE N NW W SW S SE
var contourDirs = [8]image.Point{
	{1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1},
}

type borderInfo struct {
	hole   bool
	parent int32
}

// FindExternalContours traces the outer borders of the 8-connected foreground (non-zero)
// regions of mask that are not enclosed by another region, using Suzuki-Abe border following
// with an implicit zero frame around the raster.
//
// Every border is followed so hole/outer nesting is resolved correctly, but only outer
// borders whose parent is the frame are returned. Regions inside a hole of another region are
// excluded; disjoint regions each yield one contour; an isolated pixel yields a single-point
// contour. Contours are ordered by the raster position of their first point.
func FindExternalContours(mask *image.Gray) []Contour {
	if mask == nil {
		return nil
	}
	pix, w, h := grayPlane(mask)
	if w == 0 || h == 0 {
		return nil
	}
	fw, fh := w+2, h+2
	f := make([]int32, fw*fh)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if pix[y*w+x] != 0 {
				f[(y+1)*fw+x+1] = 1
			}
		}
	}
	var off [8]int
	for k, d := range contourDirs {
		off[k] = d.Y*fw + d.X
	}

	// border 1 is the frame, which behaves as a hole border
	borders := []borderInfo{{}, {hole: true}}
	nbd := int32(1)
	var out []Contour
	for i := 1; i < fh-1; i++ {
		lnbd := int32(1)
		for j := 1; j < fw-1; j++ {
			p := i*fw + j
			v := f[p]
			if v == 0 {
				continue
			}
			start, hole, from := false, false, 0
			if v == 1 && f[p-1] == 0 {
				start, from = true, p-1
			} else if v >= 1 && f[p+1] == 0 {
				start, hole, from = true, true, p+1
				if v > 1 {
					lnbd = v
				}
			}
			if start {
				nbd++
				prev := borders[lnbd]
				parent := lnbd
				if prev.hole == hole {
					parent = prev.parent
				}
				borders = append(borders, borderInfo{hole: hole, parent: parent})
				external := !hole && parent == 1
				pts := followBorder(f, off, p, from, nbd, external)
				if external {
					c := make(Contour, len(pts))
					for n, q := range pts {
						c[n] = image.Pt(q%fw-1, q/fw-1)
					}
					out = append(out, compressContour(c))
				}
			}
			if a := f[p]; a != 1 {
				if a < 0 {
					a = -a
				}
				lnbd = a
			}
		}
	}
	return out
}

// followBorder walks one border starting at p0, entering from the zero pixel `from`, labels
// it with nbd and returns the visited pixel indices when record is set.
func followBorder(f []int32, off [8]int, p0, from int, nbd int32, record bool) []int {
	dirTo := func(p, q int) int {
		for k := range off {
			if p+off[k] == q {
				return k
			}
		}
		return 0
	}

	// look clockwise around p0 for the first non-zero neighbor
	k0 := dirTo(p0, from)
	p1 := -1
	for n := 0; n < 8; n++ {
		k := (k0 - n + 8) % 8
		if f[p0+off[k]] != 0 {
			p1 = p0 + off[k]
			break
		}
	}
	if p1 < 0 {
		f[p0] = -nbd
		if record {
			return []int{p0}
		}
		return nil
	}

	var pts []int
	p2, p3 := p1, p0
	for {
		k2 := dirTo(p3, p2)
		eastZero := false
		p4 := p2
		for n := 1; n <= 8; n++ {
			k := (k2 + n) % 8
			q := p3 + off[k]
			if f[q] != 0 {
				p4 = q
				break
			}
			if k == 0 {
				eastZero = true
			}
		}
		if eastZero {
			f[p3] = -nbd
		} else if f[p3] == 1 {
			f[p3] = nbd
		}
		if record {
			pts = append(pts, p3)
		}
		if p4 == p0 && p3 == p1 {
			return pts
		}
		p2, p3 = p3, p4
	}
}

// compressContour keeps the first point and every point where the step direction changes.
func compressContour(c Contour) Contour {
	n := len(c)
	if n <= 2 {
		return c
	}
	out := Contour{c[0]}
	for i := 1; i < n; i++ {
		in := c[i].Sub(c[i-1])
		next := c[(i+1)%n].Sub(c[i])
		if in != next {
			out = append(out, c[i])
		}
	}
	return out
}
