package vision

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// OverlayColor is what detected segments are drawn in by default.
var OverlayColor = color.RGBA{G: 255, A: 255}

// OverlayThickness is the default overlay stroke width in pixels.
const OverlayThickness = 2

// Segment is a detected line segment in pixel coordinates.
type Segment struct {
	X1, Y1, X2, Y2 int
}

// Length returns the Euclidean length in pixels.
func (s Segment) Length() float64 {
	return math.Hypot(float64(s.X2-s.X1), float64(s.Y2-s.Y1))
}

// Midpoint returns the segment center.
func (s Segment) Midpoint() (x, y float64) {
	return float64(s.X1+s.X2) / 2, float64(s.Y1+s.Y2) / 2
}

// Angle returns the segment direction in radians, normalized to
// (-pi/2, pi/2]. Segments are undirected, so opposite endpoints give the
// same angle. Image coordinates: y grows downward.
func (s Segment) Angle() float64 {
	a := math.Atan2(float64(s.Y2-s.Y1), float64(s.X2-s.X1))
	if a <= -math.Pi/2 {
		a += math.Pi
	} else if a > math.Pi/2 {
		a -= math.Pi
	}
	return a
}

// DrawSegments strokes the segments onto dst.
func DrawSegments(dst draw.Image, segs []Segment, c color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	for _, s := range segs {
		drawLine(dst, s, c, thickness)
	}
}

// Overlay copies img and draws the segments over it in the default style.
func Overlay(img image.Image, segs []Segment) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)
	DrawSegments(out, segs, OverlayColor, OverlayThickness)
	return out
}

// drawLine rasterizes one segment with Bresenham stepping, stamping a
// thickness x thickness block at every step.
func drawLine(dst draw.Image, s Segment, c color.Color, thickness int) {
	x0, y0, x1, y1 := s.X1, s.Y1, s.X2, s.Y2
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		stamp(dst, x0, y0, c, thickness)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func stamp(dst draw.Image, x, y int, c color.Color, thickness int) {
	bounds := dst.Bounds()
	lo, hi := -(thickness-1)/2, thickness/2
	for oy := lo; oy <= hi; oy++ {
		for ox := lo; ox <= hi; ox++ {
			if p := image.Pt(x+ox, y+oy); p.In(bounds) {
				dst.Set(p.X, p.Y, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
