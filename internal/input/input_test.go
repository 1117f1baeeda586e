package input

import (
	"image"
	"testing"
	"time"

	"github.com/example/colorbook/internal/raster"
	"github.com/example/colorbook/internal/view"
)

type fakeTarget struct {
	ready   bool
	tool    raster.Tool
	tr      view.Transform
	fills   []image.Point
	begins  []image.Point
	extends []image.Point
	ends    int
}

func newFake(tool raster.Tool) *fakeTarget {
	return &fakeTarget{ready: true, tool: tool, tr: view.New()}
}

func (f *fakeTarget) Ready() bool           { return f.ready }
func (f *fakeTarget) Tool() raster.Tool     { return f.tool }
func (f *fakeTarget) View() *view.Transform { return &f.tr }
func (f *fakeTarget) ToBuffer(p view.Point) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}
func (f *fakeTarget) Fill(p image.Point) bool {
	f.fills = append(f.fills, p)
	return true
}
func (f *fakeTarget) BeginStroke(p image.Point) { f.begins = append(f.begins, p) }
func (f *fakeTarget) ExtendStroke(p image.Point) bool {
	f.extends = append(f.extends, p)
	return true
}
func (f *fakeTarget) EndStroke() bool {
	f.ends++
	return true
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newDispatcher(f *fakeTarget) (*Dispatcher, *fakeClock) {
	clk := &fakeClock{t: time.Unix(1000, 0)}
	d := New(f)
	d.Now = clk.Now
	return d, clk
}

func down(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerDown, Pos: view.Pt(x, y), OnCanvas: true}
}

func move(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerMove, Pos: view.Pt(x, y), OnCanvas: true}
}

func up(x, y float64) PointerEvent {
	return PointerEvent{Kind: PointerUp, Pos: view.Pt(x, y), OnCanvas: true}
}

func TestNotReadyIgnoresEverything(t *testing.T) {
	f := newFake(raster.ToolFill)
	f.ready = false
	d, _ := newDispatcher(f)
	d.Pointer(down(1, 1))
	d.Pointer(up(1, 1))
	if r := d.Wheel(WheelEvent{DeltaY: -1}); r.Redraw {
		t.Fatal("wheel changed view without an image")
	}
	if len(f.fills) != 0 || f.tr.Zoom != 1 {
		t.Fatalf("unexpected effect: fills=%v zoom=%v", f.fills, f.tr.Zoom)
	}
}

func TestFillClick(t *testing.T) {
	f := newFake(raster.ToolFill)
	d, _ := newDispatcher(f)
	d.Pointer(down(4, 5))
	if d.Phase() != FillClick {
		t.Fatalf("phase = %v", d.Phase())
	}
	r := d.Pointer(up(4, 5))
	if !r.Redraw || len(f.fills) != 1 || f.fills[0] != image.Pt(4, 5) {
		t.Fatalf("fills = %v, result %+v", f.fills, r)
	}
	if d.Phase() != Idle {
		t.Fatalf("phase = %v after release", d.Phase())
	}
}

func TestFillClickCancelledByLeave(t *testing.T) {
	f := newFake(raster.ToolFill)
	d, _ := newDispatcher(f)
	d.Pointer(down(4, 5))
	d.Pointer(PointerEvent{Kind: PointerLeave})
	d.Pointer(up(4, 5))
	if len(f.fills) != 0 {
		t.Fatalf("fills = %v", f.fills)
	}
}

func TestMouseStroke(t *testing.T) {
	f := newFake(raster.ToolPen)
	d, _ := newDispatcher(f)
	d.Pointer(down(1, 1))
	d.Pointer(move(5, 1))
	d.Pointer(move(9, 1))
	d.Pointer(up(9, 1))
	if len(f.begins) != 1 || len(f.extends) != 2 || f.ends != 1 {
		t.Fatalf("begins=%v extends=%v ends=%d", f.begins, f.extends, f.ends)
	}
	if len(f.fills) != 0 {
		t.Fatal("drawing tool filled")
	}
}

func TestLeaveEndsStroke(t *testing.T) {
	f := newFake(raster.ToolMarker)
	d, _ := newDispatcher(f)
	d.Pointer(down(1, 1))
	d.Pointer(PointerEvent{Kind: PointerLeave})
	if f.ends != 1 || d.Phase() != Idle {
		t.Fatalf("ends=%d phase=%v", f.ends, d.Phase())
	}
	d.Pointer(move(3, 3))
	if len(f.extends) != 0 {
		t.Fatal("extended after leave")
	}
}

func TestViewportDragPansOnlyWhenZoomed(t *testing.T) {
	f := newFake(raster.ToolFill)
	d, _ := newDispatcher(f)
	off := PointerEvent{Kind: PointerDown, Pos: view.Pt(0, 0)}
	d.Pointer(off)
	if d.Phase() != Idle {
		t.Fatalf("panning at zoom 1: phase %v", d.Phase())
	}

	f.tr.Zoom = 2
	d.Pointer(off)
	if d.Phase() != Panning {
		t.Fatalf("phase = %v, want panning", d.Phase())
	}
	d.Pointer(PointerEvent{Kind: PointerMove, Pos: view.Pt(10, -4)})
	d.Pointer(PointerEvent{Kind: PointerUp, Pos: view.Pt(10, -4)})
	if f.tr.Pan != view.Pt(10, -4) {
		t.Fatalf("pan = %+v", f.tr.Pan)
	}
	if len(f.fills) != 0 {
		t.Fatal("pan released into a fill")
	}
}

func TestWheelAlwaysConsumed(t *testing.T) {
	f := newFake(raster.ToolFill)
	d, _ := newDispatcher(f)
	r := d.Wheel(WheelEvent{DeltaY: -120})
	if !r.Consumed || !r.Redraw || f.tr.Zoom != 1.25 {
		t.Fatalf("result %+v zoom %v", r, f.tr.Zoom)
	}
	f.tr.Zoom = view.MinZoom
	if r := d.Wheel(WheelEvent{DeltaY: 120}); !r.Consumed || r.Redraw {
		t.Fatalf("result at min zoom %+v", r)
	}
}
