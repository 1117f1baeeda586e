// Package session owns one coloring document: the pixel buffer, its undo
// history, the view transform and the tool settings.
package session

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/google/uuid"

	"github.com/example/colorbook/internal/history"
	"github.com/example/colorbook/internal/raster"
	"github.com/example/colorbook/internal/view"
)

// ErrNotLoaded is returned by operations that need an image when none has
// been loaded.
var ErrNotLoaded = errors.New("no image loaded")

// Option configures a Session.
type Option func(*Session)

// WithID sets the session id used in export file names.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithName sets a display name for the artwork.
func WithName(name string) Option {
	return func(s *Session) { s.name = name }
}

// WithTools sets the initial tool settings.
func WithTools(t ToolState) Option {
	return func(s *Session) { s.tools = t.Normalize() }
}

// Session is a single editable image. It is not safe for concurrent use;
// callers that render on another goroutine should take a Snapshot.
type Session struct {
	id    string
	name  string
	tools ToolState

	buf      *image.RGBA
	hist     history.Stack
	tr       view.Transform
	viewport view.Rect
	stroke   *raster.Stroke
	recent   RecentColors
}

// New creates an empty session. Without WithID a random id is assigned.
func New(opts ...Option) *Session {
	s := &Session{
		id:    uuid.NewString(),
		tools: DefaultTools(),
		tr:    view.New(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ID identifies the session in exported file names.
func (s *Session) ID() string { return s.id }

// Name is the display name of the artwork.
func (s *Session) Name() string { return s.name }

// SetName changes the display name.
func (s *Session) SetName(name string) { s.name = name }

// Load fits img to the canvas size and makes it the new document. History
// and view are reset.
func (s *Session) Load(img image.Image) error {
	buf := raster.Fit(img, raster.MaxWidth, raster.MaxHeight)
	if buf == nil {
		return fmt.Errorf("load: empty image")
	}
	s.setBuffer(buf)
	return nil
}

// LoadReader decodes and loads an encoded image. On failure the previous
// document, if any, is kept.
func (s *Session) LoadReader(r io.Reader) error {
	buf, err := raster.Load(r)
	if err != nil {
		return err
	}
	s.setBuffer(buf)
	return nil
}

// LoadFile decodes and loads the image at path.
func (s *Session) LoadFile(path string) error {
	buf, err := raster.LoadFile(path)
	if err != nil {
		return err
	}
	s.setBuffer(buf)
	return nil
}

func (s *Session) setBuffer(buf *image.RGBA) {
	s.buf = buf
	s.stroke = nil
	s.hist.Initialize(buf)
	s.tr = view.New()
}

// Loaded reports whether an image is loaded.
func (s *Session) Loaded() bool { return s.buf != nil }

// Ready is Loaded.
func (s *Session) Ready() bool { return s.Loaded() }

// Buffer returns the live pixel buffer. It is nil before Load.
func (s *Session) Buffer() *image.RGBA { return s.buf }

// Snapshot returns a copy of the current pixels.
func (s *Session) Snapshot() *image.RGBA { return raster.Clone(s.buf) }

// Size returns the buffer dimensions.
func (s *Session) Size() image.Point {
	if s.buf == nil {
		return image.Point{}
	}
	return s.buf.Rect.Size()
}

// Tools returns the current tool settings.
func (s *Session) Tools() ToolState { return s.tools }

// Tool returns the active tool.
func (s *Session) Tool() raster.Tool { return s.tools.Tool }

// SetTool switches tools.
func (s *Session) SetTool(t raster.Tool) { s.tools.Tool = t }

// SetBrush sets the brush size, clamped to range.
func (s *Session) SetBrush(n int) { s.tools.Brush = clamp(n, MinBrush, MaxBrush) }

// SetTolerance sets the fill tolerance, clamped to range.
func (s *Session) SetTolerance(n int) {
	s.tools.Tolerance = clamp(n, MinTolerance, MaxTolerance)
}

// SetColor selects c and records it as recently used.
func (s *Session) SetColor(c raster.Color) {
	s.tools.Color = c.Opaque()
	s.recent.Add(s.tools.Color)
}

// Recent returns recently selected colors, newest first.
func (s *Session) Recent() []raster.Color { return s.recent.List() }

// View returns the live view transform.
func (s *Session) View() *view.Transform { return &s.tr }

// SetViewport lays the canvas out in the given screen area.
func (s *Session) SetViewport(viewport view.Rect) { s.viewport = viewport }

// Layout returns the canvas box at zoom 1.
func (s *Session) Layout() view.Rect {
	size := s.Size()
	return view.Layout(size.X, size.Y, s.viewport)
}

// DisplayRect returns where the canvas is drawn on screen.
func (s *Session) DisplayRect() view.Rect { return s.tr.DisplayRect(s.Layout()) }

// ToBuffer maps a screen position to a buffer pixel.
func (s *Session) ToBuffer(p view.Point) image.Point {
	size := s.Size()
	return s.tr.MapToBuffer(p, s.Layout(), size.X, size.Y)
}

// OnCanvas reports whether p is over the displayed canvas.
func (s *Session) OnCanvas(p view.Point) bool {
	return s.Loaded() && s.DisplayRect().Contains(p)
}

// Fill flood fills from p with the current color and tolerance. A fill that
// changes nothing is not recorded in history.
func (s *Session) Fill(p image.Point) bool {
	if s.buf == nil {
		return false
	}
	n := raster.Fill(s.buf, p.X, p.Y, s.tools.Color, float64(s.tools.Tolerance))
	if n == 0 {
		return false
	}
	s.hist.Push(s.buf)
	return true
}

// BeginStroke starts a freehand stroke with the current drawing tool.
func (s *Session) BeginStroke(p image.Point) {
	if s.buf == nil || !s.tools.Tool.Draws() {
		return
	}
	if s.stroke.Active() {
		s.EndStroke()
	}
	s.stroke = raster.NewStroke(s.buf, s.tools.Tool, float64(s.tools.Brush), s.tools.Color)
	s.stroke.Begin(p)
}

// ExtendStroke continues the active stroke.
func (s *Session) ExtendStroke(p image.Point) bool {
	if !s.stroke.Active() {
		return false
	}
	return s.stroke.Extend(p)
}

// EndStroke commits the active stroke to history.
func (s *Session) EndStroke() bool {
	if !s.stroke.Active() {
		return false
	}
	s.stroke.End()
	s.stroke = nil
	s.hist.Push(s.buf)
	return true
}

// Stroking reports whether a stroke is in progress.
func (s *Session) Stroking() bool { return s.stroke.Active() }

// Undo restores the previous history entry.
func (s *Session) Undo() bool {
	if s.stroke.Active() {
		s.EndStroke()
	}
	snap, ok := s.hist.Undo()
	if !ok {
		return false
	}
	return snap.CopyTo(s.buf)
}

// Clear restores the image as it was loaded.
func (s *Session) Clear() bool {
	if s.stroke.Active() {
		s.EndStroke()
	}
	snap, ok := s.hist.Reset()
	if !ok {
		return false
	}
	return snap.CopyTo(s.buf)
}

// CanUndo reports whether Undo would change anything.
func (s *Session) CanUndo() bool { return s.hist.CanUndo() }

// History returns the number of history entries and the cursor.
func (s *Session) History() (entries, cursor int) {
	return s.hist.Len(), s.hist.Cursor()
}
