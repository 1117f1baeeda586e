package input

import "github.com/example/colorbook/internal/view"

// PointerKind is the action of a mouse event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	// PointerLeave is sent when the pointer exits the window.
	PointerLeave
)

// PointerEvent is a primary-button mouse event in window coordinates.
type PointerEvent struct {
	Kind PointerKind
	Pos  view.Point
	// OnCanvas is set when Pos is over the displayed canvas rather than
	// the surrounding viewport.
	OnCanvas bool
}

// WheelEvent is a scroll. Negative DeltaY scrolls up.
type WheelEvent struct {
	DeltaY float64
}

// Pointer handles a mouse event.
func (d *Dispatcher) Pointer(ev PointerEvent) Result {
	if d.Target == nil || !d.Target.Ready() {
		return Result{}
	}
	switch ev.Kind {
	case PointerDown:
		return d.pointerDown(ev)
	case PointerMove:
		return d.pointerMove(ev)
	case PointerUp:
		return d.pointerUp(ev)
	case PointerLeave:
		return d.pointerLeave()
	}
	return Result{}
}

func (d *Dispatcher) pointerDown(ev PointerEvent) Result {
	if d.phase != Idle {
		return Result{Consumed: true}
	}
	t := d.Target
	if !ev.OnCanvas {
		if d.gesture.StartPan(ev.Pos, *t.View()) {
			d.phase = Panning
			return Result{Consumed: true}
		}
		return Result{}
	}
	if t.Tool().Draws() {
		t.BeginStroke(t.ToBuffer(ev.Pos))
		d.phase = StrokeActive
		return Result{Redraw: true, Consumed: true}
	}
	d.phase = FillClick
	return Result{Consumed: true}
}

func (d *Dispatcher) pointerMove(ev PointerEvent) Result {
	t := d.Target
	switch d.phase {
	case StrokeActive:
		return Result{Redraw: t.ExtendStroke(t.ToBuffer(ev.Pos)), Consumed: true}
	case Panning:
		return Result{Redraw: d.gesture.MovePan(ev.Pos, t.View()), Consumed: true}
	case FillClick:
		return Result{Consumed: true}
	}
	return Result{}
}

func (d *Dispatcher) pointerUp(ev PointerEvent) Result {
	t := d.Target
	switch d.phase {
	case FillClick:
		d.phase = Idle
		if !ev.OnCanvas {
			return Result{Consumed: true}
		}
		return Result{Redraw: t.Fill(t.ToBuffer(ev.Pos)), Consumed: true}
	case StrokeActive:
		d.phase = Idle
		t.EndStroke()
		return Result{Redraw: true, Consumed: true}
	case Panning:
		d.phase = Idle
		d.gesture.EndPan()
		return Result{Consumed: true}
	}
	return Result{}
}

func (d *Dispatcher) pointerLeave() Result {
	switch d.phase {
	case StrokeActive:
		d.phase = Idle
		d.Target.EndStroke()
		return Result{Redraw: true}
	case Panning:
		d.phase = Idle
		d.gesture.EndPan()
	case FillClick:
		d.phase = Idle
	}
	return Result{}
}
