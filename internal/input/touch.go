package input

import "github.com/example/colorbook/internal/view"

// TouchID identifies one finger for the lifetime of its contact.
type TouchID int64

// TouchKind is the action of a touch event.
type TouchKind int

const (
	TouchStart TouchKind = iota
	TouchMove
	TouchEnd
)

// TouchEvent is a single finger changing state.
type TouchEvent struct {
	Kind     TouchKind
	ID       TouchID
	Pos      view.Point
	OnCanvas bool
}

// Touches returns the number of fingers currently down.
func (d *Dispatcher) Touches() int { return len(d.order) }

// Touch handles a touch event. Touches over the canvas area are always
// consumed.
func (d *Dispatcher) Touch(ev TouchEvent) Result {
	if d.Target == nil {
		return Result{}
	}
	switch ev.Kind {
	case TouchStart:
		return d.touchStart(ev)
	case TouchMove:
		return d.touchMove(ev)
	case TouchEnd:
		return d.touchEnd(ev)
	}
	return Result{}
}

func (d *Dispatcher) addTouch(id TouchID, p view.Point) {
	if d.touches == nil {
		d.touches = make(map[TouchID]view.Point)
	}
	if _, ok := d.touches[id]; !ok {
		d.order = append(d.order, id)
	}
	d.touches[id] = p
}

func (d *Dispatcher) removeTouch(id TouchID) {
	if _, ok := d.touches[id]; !ok {
		return
	}
	delete(d.touches, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *Dispatcher) pair() (view.Point, view.Point) {
	return d.touches[d.order[0]], d.touches[d.order[1]]
}

func (d *Dispatcher) touchStart(ev TouchEvent) Result {
	d.addTouch(ev.ID, ev.Pos)
	t := d.Target
	if !t.Ready() {
		return Result{Consumed: true}
	}
	if len(d.order) >= 2 {
		redraw := false
		switch d.phase {
		case StrokeActive:
			t.EndStroke()
			redraw = true
		case Panning:
			d.gesture.EndPan()
		}
		a, b := d.pair()
		d.gesture.StartPinch(a, b)
		d.phase = Pinching
		return Result{Redraw: redraw, Consumed: true}
	}

	d.touchBegan = d.now()
	d.touchAt = ev.Pos
	if d.phase != Idle {
		return Result{Consumed: true}
	}
	if d.gesture.StartPan(ev.Pos, *t.View()) {
		d.phase = Panning
		return Result{Consumed: true}
	}
	if !ev.OnCanvas {
		return Result{Consumed: true}
	}
	if t.Tool().Draws() {
		t.BeginStroke(t.ToBuffer(ev.Pos))
		d.phase = StrokeActive
		return Result{Redraw: true, Consumed: true}
	}
	d.phase = FillClick
	return Result{Consumed: true}
}

func (d *Dispatcher) touchMove(ev TouchEvent) Result {
	if _, ok := d.touches[ev.ID]; !ok {
		return Result{Consumed: true}
	}
	d.touches[ev.ID] = ev.Pos
	t := d.Target
	switch d.phase {
	case Pinching:
		if len(d.order) < 2 {
			return Result{Consumed: true}
		}
		a, b := d.pair()
		return Result{Redraw: d.gesture.MovePinch(a, b, t.View()), Consumed: true}
	case Panning:
		return Result{Redraw: d.gesture.MovePan(ev.Pos, t.View()), Consumed: true}
	case StrokeActive:
		return Result{Redraw: t.ExtendStroke(t.ToBuffer(ev.Pos)), Consumed: true}
	}
	return Result{Consumed: true}
}

func (d *Dispatcher) touchEnd(ev TouchEvent) Result {
	last, known := d.touches[ev.ID]
	if !known {
		return Result{Consumed: true}
	}
	d.removeTouch(ev.ID)
	t := d.Target
	remaining := len(d.order)

	switch d.phase {
	case Pinching:
		if remaining >= 2 {
			a, b := d.pair()
			d.gesture.StartPinch(a, b)
			return Result{Consumed: true}
		}
		d.gesture.EndPinch()
		d.phase = Idle
		if remaining == 1 && d.gesture.StartPan(d.touches[d.order[0]], *t.View()) {
			d.phase = Panning
		}
		return Result{Consumed: true}
	case Panning:
		if remaining == 0 {
			d.gesture.EndPan()
			d.phase = Idle
		}
		return Result{Consumed: true}
	case StrokeActive:
		if remaining == 0 {
			t.EndStroke()
			d.phase = Idle
			return Result{Redraw: true, Consumed: true}
		}
	case FillClick:
		if remaining == 0 {
			d.phase = Idle
			tapped := d.now().Sub(d.touchBegan) < TapDuration && last.Dist(d.touchAt) <= TapSlop
			if tapped && t.View().Zoom == 1 && ev.OnCanvas {
				return Result{Redraw: t.Fill(t.ToBuffer(d.touchAt)), Consumed: true}
			}
		}
	}
	return Result{Consumed: true}
}
