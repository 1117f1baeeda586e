package view

// Gesture holds the transient state of a drag or pinch in progress.
type Gesture struct {
	anchor    Point
	panning   bool
	pinchDist float64
	pinching  bool
}

// Panning reports whether a drag is in progress.
func (g *Gesture) Panning() bool { return g.panning }

// Pinching reports whether a two-finger pinch is in progress.
func (g *Gesture) Pinching() bool { return g.pinching }

// StartPan anchors a drag at p. It does nothing unless t can pan.
func (g *Gesture) StartPan(p Point, t Transform) bool {
	if !t.CanPan() {
		return false
	}
	g.anchor = p.Sub(t.Pan)
	g.panning = true
	return true
}

// MovePan updates t.Pan so the canvas follows p.
func (g *Gesture) MovePan(p Point, t *Transform) bool {
	if !g.panning || !t.CanPan() {
		return false
	}
	t.Pan = p.Sub(g.anchor)
	return true
}

// EndPan finishes a drag.
func (g *Gesture) EndPan() { g.panning = false }

// StartPinch begins a pinch between two touches, ending any drag.
func (g *Gesture) StartPinch(a, b Point) {
	g.panning = false
	g.pinching = true
	g.pinchDist = a.Dist(b)
}

// MovePinch scales zoom by the change in finger distance since the last
// update.
func (g *Gesture) MovePinch(a, b Point, t *Transform) bool {
	if !g.pinching {
		return false
	}
	d := a.Dist(b)
	prev := g.pinchDist
	g.pinchDist = d
	if prev <= 0 || d <= 0 {
		return false
	}
	old := t.Zoom
	t.SetZoom(t.Zoom * d / prev)
	return t.Zoom != old
}

// EndPinch finishes a pinch.
func (g *Gesture) EndPinch() {
	g.pinching = false
	g.pinchDist = 0
}

// Reset clears every gesture.
func (g *Gesture) Reset() { *g = Gesture{} }
