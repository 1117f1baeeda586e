package view

import (
	"image"
	"math"
)

// Transform is the zoom and pan applied to the canvas. Zoom scales the
// canvas about the center of its layout box; Pan then translates it.
type Transform struct {
	Zoom float64
	Pan  Point
}

// New returns the identity transform.
func New() Transform { return Transform{Zoom: 1} }

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}

// ZoomIn increases zoom by one step. It reports whether zoom changed.
func (t *Transform) ZoomIn() bool {
	old := t.Zoom
	t.Zoom = clampZoom(t.Zoom + ZoomStep)
	return t.Zoom != old
}

// ZoomOut decreases zoom by one step. Landing on exactly 1 recenters the
// canvas.
func (t *Transform) ZoomOut() bool {
	old, oldPan := t.Zoom, t.Pan
	t.Zoom = clampZoom(t.Zoom - ZoomStep)
	if t.Zoom == 1 {
		t.Pan = Point{}
	}
	return t.Zoom != old || t.Pan != oldPan
}

// ResetZoom restores the identity transform.
func (t *Transform) ResetZoom() bool {
	changed := t.Zoom != 1 || t.Pan != (Point{})
	*t = New()
	return changed
}

// SetZoom sets zoom within the allowed range, leaving pan alone.
func (t *Transform) SetZoom(z float64) {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return
	}
	t.Zoom = clampZoom(z)
}

// Wheel zooms in for upward scrolls and out otherwise. A zero delta is
// ignored.
func (t *Transform) Wheel(dy float64) bool {
	switch {
	case dy < 0:
		return t.ZoomIn()
	case dy > 0:
		return t.ZoomOut()
	}
	return false
}

// CanPan reports whether the canvas is zoomed far enough to be dragged.
func (t Transform) CanPan() bool { return t.Zoom > 1 }

// ZoomedBox scales base about its center by the zoom factor, without pan.
func (t Transform) ZoomedBox(base Rect) Rect {
	c := base.Center()
	hw, hh := base.Dx()*t.Zoom/2, base.Dy()*t.Zoom/2
	return R(c.X-hw, c.Y-hh, c.X+hw, c.Y+hh)
}

// DisplayRect is where the canvas appears on screen.
func (t Transform) DisplayRect(base Rect) Rect {
	return t.ZoomedBox(base).Add(t.Pan)
}

// ScreenToBuffer converts a screen position to a buffer pixel of a w×h
// buffer whose zoomed box on screen is box. Pan is undone first, then zoom,
// then display size is rescaled to buffer size. The result may lie outside
// the buffer.
func (t Transform) ScreenToBuffer(p Point, box Rect, w, h int) image.Point {
	if box.Empty() || t.Zoom <= 0 {
		return image.Pt(-1, -1)
	}
	scaleX := float64(w) / (box.Dx() / t.Zoom)
	scaleY := float64(h) / (box.Dy() / t.Zoom)
	x := ((p.X-box.Min.X)/t.Zoom - t.Pan.X/t.Zoom) * scaleX
	y := ((p.Y-box.Min.Y)/t.Zoom - t.Pan.Y/t.Zoom) * scaleY
	return image.Pt(int(math.Floor(x)), int(math.Floor(y)))
}

// MapToBuffer is ScreenToBuffer for a canvas laid out at base.
func (t Transform) MapToBuffer(p Point, base Rect, w, h int) image.Point {
	return t.ScreenToBuffer(p, t.ZoomedBox(base), w, h)
}
