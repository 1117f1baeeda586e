package session

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/example/colorbook/internal/input"
	"github.com/example/colorbook/internal/raster"
	"github.com/example/colorbook/internal/view"
)

var _ input.Target = (*Session)(nil)

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	raster.FillRect(img, img.Bounds(), raster.RGB(255, 255, 255))
	return img
}

func loaded(t *testing.T, w, h int, opts ...Option) *Session {
	t.Helper()
	s := New(opts...)
	if err := s.Load(whiteImage(w, h)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestNewAssignsID(t *testing.T) {
	a, b := New(), New()
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("ids %q and %q", a.ID(), b.ID())
	}
	if got := New(WithID("page-7")).ID(); got != "page-7" {
		t.Fatalf("WithID ignored: %q", got)
	}
}

func TestDefaults(t *testing.T) {
	tools := New().Tools()
	if tools.Tool != raster.ToolFill || tools.Brush != 5 || tools.Tolerance != 30 || tools.Color != Palette[0].Color {
		t.Fatalf("defaults = %v", tools)
	}
}

func TestUnloadedIsInert(t *testing.T) {
	s := New()
	if s.Fill(image.Pt(0, 0)) {
		t.Fatal("fill succeeded without an image")
	}
	s.SetTool(raster.ToolPen)
	s.BeginStroke(image.Pt(1, 1))
	if s.Stroking() || s.EndStroke() {
		t.Fatal("stroke started without an image")
	}
	if s.Undo() || s.Clear() {
		t.Fatal("undo or clear succeeded without an image")
	}
	if s.Snapshot() != nil {
		t.Fatal("snapshot of empty session")
	}
}

func TestLoadReaderFailureKeepsDocument(t *testing.T) {
	s := loaded(t, 4, 4)
	if err := s.LoadReader(bytes.NewReader([]byte("nope"))); err == nil {
		t.Fatal("expected decode error")
	}
	if !s.Loaded() || s.Size() != image.Pt(4, 4) {
		t.Fatalf("document lost: %v", s.Size())
	}
}

func TestLoadReaderPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, whiteImage(3, 2)); err != nil {
		t.Fatal(err)
	}
	s := New()
	if err := s.LoadReader(&buf); err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if s.Size() != image.Pt(3, 2) {
		t.Fatalf("size = %v", s.Size())
	}
	if n, c := s.History(); n != 1 || c != 0 {
		t.Fatalf("history = %d/%d", n, c)
	}
}

func TestFillPushesHistory(t *testing.T) {
	s := loaded(t, 5, 5)
	s.SetColor(raster.RGB(255, 0, 0))
	if !s.Fill(image.Pt(2, 2)) {
		t.Fatal("fill reported no change")
	}
	if n, c := s.History(); n != 2 || c != 1 {
		t.Fatalf("history = %d/%d", n, c)
	}
	if s.Fill(image.Pt(2, 2)) {
		t.Fatal("refill reported a change")
	}
	if n, _ := s.History(); n != 2 {
		t.Fatalf("no-op fill was recorded: %d entries", n)
	}
	if !s.Undo() {
		t.Fatal("undo failed")
	}
	if got := raster.At(s.Buffer(), 2, 2); got != raster.RGB(255, 255, 255) {
		t.Fatalf("undo left %+v", got)
	}
}

func TestStrokeCommitsOnEnd(t *testing.T) {
	s := loaded(t, 20, 20)
	s.SetTool(raster.ToolPen)
	s.SetColor(raster.RGB(0, 0, 0))
	s.BeginStroke(image.Pt(5, 5))
	s.ExtendStroke(image.Pt(12, 5))
	if n, _ := s.History(); n != 1 {
		t.Fatalf("history grew before end: %d", n)
	}
	if !s.EndStroke() {
		t.Fatal("EndStroke returned false")
	}
	if n, c := s.History(); n != 2 || c != 1 {
		t.Fatalf("history = %d/%d", n, c)
	}
	if s.EndStroke() {
		t.Fatal("second EndStroke committed again")
	}
}

func TestFillToolDoesNotStroke(t *testing.T) {
	s := loaded(t, 10, 10)
	s.BeginStroke(image.Pt(5, 5))
	if s.Stroking() {
		t.Fatal("fill tool started a stroke")
	}
}

func TestClearRestoresOriginal(t *testing.T) {
	s := loaded(t, 6, 6)
	orig := s.Snapshot()
	for _, c := range []raster.Color{raster.RGB(255, 0, 0), raster.RGB(0, 0, 255), raster.RGB(0, 128, 0)} {
		s.SetColor(c)
		s.Fill(image.Pt(0, 0))
	}
	if !s.Clear() {
		t.Fatal("clear failed")
	}
	if string(s.Buffer().Pix) != string(orig.Pix) {
		t.Fatal("clear did not restore original pixels")
	}
	if s.CanUndo() {
		t.Fatal("undo available after clear")
	}
}

func TestToolClamps(t *testing.T) {
	s := New()
	s.SetBrush(0)
	s.SetTolerance(500)
	if got := s.Tools(); got.Brush != MinBrush || got.Tolerance != MaxTolerance {
		t.Fatalf("tools = %v", got)
	}
	s.SetBrush(99)
	s.SetTolerance(-3)
	if got := s.Tools(); got.Brush != MaxBrush || got.Tolerance != MinTolerance {
		t.Fatalf("tools = %v", got)
	}
}

func TestToBufferUsesLayout(t *testing.T) {
	s := loaded(t, 100, 50)
	s.SetViewport(view.R(0, 0, 300, 250))
	// Canvas sits at (100,100)-(200,150).
	if got := s.ToBuffer(view.Pt(100, 100)); got != image.Pt(0, 0) {
		t.Fatalf("got %v", got)
	}
	if !s.OnCanvas(view.Pt(150, 120)) || s.OnCanvas(view.Pt(10, 10)) {
		t.Fatal("OnCanvas mismatch")
	}
	s.View().ZoomIn()
	s.View().ZoomIn()
	// Zoom 1.5 about (150,125): canvas spans (75,87.5)-(225,162.5).
	if got := s.ToBuffer(view.Pt(150, 125)); got != image.Pt(50, 25) {
		t.Fatalf("center maps to %v", got)
	}
}

func TestLoadResetsView(t *testing.T) {
	s := loaded(t, 4, 4)
	s.View().ZoomIn()
	if err := s.Load(whiteImage(2, 2)); err != nil {
		t.Fatal(err)
	}
	if *s.View() != view.New() {
		t.Fatalf("view = %+v", *s.View())
	}
}
