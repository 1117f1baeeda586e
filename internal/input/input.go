// Package input turns pointer, touch and wheel events into canvas edits
// and view changes.
//
// A Dispatcher is a small state machine: it is idle, or it is in exactly one
// of a fill click, an active stroke, a pan or a pinch. Events that do not
// fit the current phase are dropped, so a pinch can never leak a stroke or a
// fill.
package input

import (
	"image"
	"time"

	"github.com/example/colorbook/internal/raster"
	"github.com/example/colorbook/internal/view"
)

// TapDuration is the longest touch that still counts as a tap.
const TapDuration = 300 * time.Millisecond

// TapSlop is how far, in screen pixels, a finger may travel during a tap.
const TapSlop = 10

// Phase is the dispatcher state.
type Phase int

const (
	Idle Phase = iota
	FillClick
	StrokeActive
	Panning
	Pinching
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FillClick:
		return "fill-click"
	case StrokeActive:
		return "stroke"
	case Panning:
		return "panning"
	case Pinching:
		return "pinching"
	}
	return "unknown"
}

// Target is the editing surface the dispatcher drives.
type Target interface {
	// Ready reports whether an image is loaded.
	Ready() bool
	Tool() raster.Tool
	// View returns the live transform; the dispatcher mutates it for
	// pan and zoom.
	View() *view.Transform
	// ToBuffer maps a screen position to a buffer pixel.
	ToBuffer(p view.Point) image.Point
	Fill(p image.Point) bool
	BeginStroke(p image.Point)
	ExtendStroke(p image.Point) bool
	EndStroke() bool
}

// Result tells the host what an event did.
type Result struct {
	// Redraw is set when pixels or the view changed.
	Redraw bool
	// Consumed is set when the host should not apply its own default
	// handling, such as scrolling.
	Consumed bool
}

// Dispatcher routes events to a Target.
type Dispatcher struct {
	Target Target
	// Now is the clock used for tap detection. Nil means time.Now.
	Now func() time.Time

	phase   Phase
	gesture view.Gesture

	touches    map[TouchID]view.Point
	order      []TouchID
	touchBegan time.Time
	touchAt    view.Point
}

// New returns a dispatcher for t.
func New(t Target) *Dispatcher {
	return &Dispatcher{Target: t}
}

// Phase returns the current state.
func (d *Dispatcher) Phase() Phase { return d.phase }

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Reset abandons any gesture in progress. An active stroke is committed.
func (d *Dispatcher) Reset() {
	if d.phase == StrokeActive && d.Target != nil {
		d.Target.EndStroke()
	}
	d.phase = Idle
	d.gesture.Reset()
	d.touches = nil
	d.order = nil
}

// Wheel zooms the view. Wheel events over the canvas are always consumed.
func (d *Dispatcher) Wheel(ev WheelEvent) Result {
	if d.Target == nil || !d.Target.Ready() {
		return Result{}
	}
	return Result{Redraw: d.Target.View().Wheel(ev.DeltaY), Consumed: true}
}
