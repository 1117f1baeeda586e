package raster

import (
	"image"
	"testing"
)

func TestToolParameters(t *testing.T) {
	tests := []struct {
		tool    Tool
		width   float64
		opacity float64
	}{
		{ToolPen, 10, 1},
		{ToolMarker, 15, 0.6},
		{ToolPencil, 8, 0.8},
	}
	for _, tt := range tests {
		if got := tt.tool.LineWidth(10); got != tt.width {
			t.Errorf("%s width = %v, want %v", tt.tool, got, tt.width)
		}
		if got := tt.tool.Opacity(); got != tt.opacity {
			t.Errorf("%s opacity = %v, want %v", tt.tool, got, tt.opacity)
		}
		if !tt.tool.Draws() {
			t.Errorf("%s should draw", tt.tool)
		}
	}
	if ToolFill.Draws() {
		t.Error("fill should not draw")
	}
}

func TestParseTool(t *testing.T) {
	for in, want := range map[string]Tool{"fill": ToolFill, "Bucket": ToolFill, "pen": ToolPen, " marker ": ToolMarker, "PENCIL": ToolPencil} {
		got, err := ParseTool(in)
		if err != nil || got != want {
			t.Errorf("ParseTool(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseTool("spray"); err == nil {
		t.Error("expected error for unknown tool")
	}
}

func TestStrokeBeginStampsDot(t *testing.T) {
	img := newFilled(20, 20, RGB(255, 255, 255))
	s := NewStroke(img, ToolPen, 6, RGB(0, 0, 0))
	s.Begin(image.Pt(10, 10))

	if !s.Active() {
		t.Fatal("stroke should be active")
	}
	if got := At(img, 10, 10); got.R > 5 || got.A != 255 {
		t.Fatalf("center pixel = %+v, want black", got)
	}
	if got := At(img, 0, 0); got != RGB(255, 255, 255) {
		t.Fatalf("far pixel changed to %+v", got)
	}
}

func TestStrokeMarkerIsTranslucent(t *testing.T) {
	img := newFilled(20, 20, RGB(255, 255, 255))
	s := NewStroke(img, ToolMarker, 6, RGB(0, 0, 0))
	s.Begin(image.Pt(10, 10))

	got := At(img, 10, 10)
	// 60% black over white.
	if got.R < 90 || got.R > 115 || got.A != 255 {
		t.Fatalf("center pixel = %+v, want about 102", got)
	}
}

func TestStrokeExtendIgnoresJitter(t *testing.T) {
	img := newFilled(20, 20, RGB(255, 255, 255))
	s := NewStroke(img, ToolPen, 4, RGB(0, 0, 0))
	s.Begin(image.Pt(5, 5))
	before := Clone(img)

	if s.Extend(image.Pt(5, 5)) {
		t.Fatal("zero length extend should be ignored")
	}
	if s.Len() != 1 {
		t.Fatalf("recorded %d points, want 1", s.Len())
	}
	if string(before.Pix) != string(img.Pix) {
		t.Fatal("ignored extend changed pixels")
	}
}

func TestStrokeExtendDrawsSegment(t *testing.T) {
	img := newFilled(30, 20, RGB(255, 255, 255))
	s := NewStroke(img, ToolPen, 4, RGB(0, 0, 0))
	s.Begin(image.Pt(5, 10))
	if !s.Extend(image.Pt(15, 10)) {
		t.Fatal("extend should draw")
	}
	if !s.Extend(image.Pt(25, 10)) {
		t.Fatal("second extend should draw")
	}
	for _, x := range []int{8, 12, 20, 24} {
		if got := At(img, x, 10); got.R > 5 {
			t.Fatalf("pixel (%d,10) = %+v, want black", x, got)
		}
	}
	if got := At(img, 15, 2); got != RGB(255, 255, 255) {
		t.Fatalf("pixel off the line changed to %+v", got)
	}
	if n := s.End(); n != 3 {
		t.Fatalf("End returned %d, want 3", n)
	}
	if s.Active() {
		t.Fatal("stroke still active after End")
	}
	if s.Extend(image.Pt(0, 0)) {
		t.Fatal("extend after End should be ignored")
	}
}

func TestStrokeClipsToBuffer(t *testing.T) {
	img := newFilled(4, 4, RGB(255, 255, 255))
	s := NewStroke(img, ToolPen, 10, RGB(0, 0, 0))
	s.Begin(image.Pt(-20, -20))
	s.Extend(image.Pt(50, 50))
	s.End()
	if got := img.Bounds(); !got.Eq(image.Rect(0, 0, 4, 4)) {
		t.Fatalf("bounds changed to %v", got)
	}
}
