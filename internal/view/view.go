// Package view maps between screen space and canvas pixels under zoom and
// pan, and tracks the drag and pinch gestures that change them.
package view

import (
	"image"
	"math"
)

// Zoom limits and the step used by zoom in/out actions.
const (
	MinZoom  = 0.5
	MaxZoom  = 3.0
	ZoomStep = 0.25
)

// Point is a screen position in pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	Min, Max Point
}

// R builds a Rect from its corners.
func R(x0, y0, x1, y1 float64) Rect { return Rect{Min: Pt(x0, y0), Max: Pt(x1, y1)} }

// Dx returns r's width.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns r's height.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Dx() <= 0 || r.Dy() <= 0 }

// Center returns the midpoint of r.
func (r Rect) Center() Point { return Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2) }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Add translates r by p.
func (r Rect) Add(p Point) Rect { return Rect{r.Min.Add(p), r.Max.Add(p)} }

// Image rounds r outward to integer pixels.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Ceil(r.Max.X)), int(math.Ceil(r.Max.Y)),
	)
}

// Layout centers a w×h canvas in viewport at its natural size, shrinking it
// uniformly when the viewport is smaller. This is the canvas box at zoom 1.
func Layout(w, h int, viewport Rect) Rect {
	if w <= 0 || h <= 0 || viewport.Empty() {
		return Rect{}
	}
	scale := math.Min(1, math.Min(viewport.Dx()/float64(w), viewport.Dy()/float64(h)))
	bw, bh := float64(w)*scale, float64(h)*scale
	c := viewport.Center()
	return R(c.X-bw/2, c.Y-bh/2, c.X+bw/2, c.Y+bh/2)
}
