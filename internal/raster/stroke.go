package raster

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/vector"
)

// Tool identifies how a pointer gesture edits the canvas.
type Tool string

const (
	ToolFill   Tool = "fill"
	ToolPen    Tool = "pen"
	ToolMarker Tool = "marker"
	ToolPencil Tool = "pencil"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolFill, ToolPen, ToolMarker, ToolPencil}

// ParseTool maps a name to a Tool. "bucket" is accepted for ToolFill.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fill", "bucket":
		return ToolFill, nil
	case "pen":
		return ToolPen, nil
	case "marker":
		return ToolMarker, nil
	case "pencil":
		return ToolPencil, nil
	}
	return "", fmt.Errorf("unknown tool %q", s)
}

// Draws reports whether the tool paints freehand strokes.
func (t Tool) Draws() bool {
	return t == ToolPen || t == ToolMarker || t == ToolPencil
}

// LineWidth is the effective stroke width for a nominal brush size.
func (t Tool) LineWidth(brush float64) float64 {
	switch t {
	case ToolMarker:
		return brush * 1.5
	case ToolPencil:
		return brush * 0.8
	}
	return brush
}

// Opacity is the compositing opacity of the tool's strokes.
func (t Tool) Opacity() float64 {
	switch t {
	case ToolMarker:
		return 0.6
	case ToolPencil:
		return 0.8
	}
	return 1
}

const (
	// jitterThreshold is the minimum pointer travel recorded by Extend.
	jitterThreshold = 1.0
	// stampSpacing is the travel between interpolated disc stamps.
	stampSpacing = 2.0
	// kappa places cubic control points for a quarter circle.
	kappa = 0.5522847498
)

type fpoint struct{ x, y float64 }

func (p fpoint) dist(q fpoint) float64 { return math.Hypot(q.x-p.x, q.y-p.y) }

// Stroke renders one freehand gesture onto a buffer. Tool, brush and color
// are fixed when the stroke is created.
type Stroke struct {
	dst    *image.RGBA
	tool   Tool
	brush  float64
	col    Color
	points []fpoint
	active bool
}

// NewStroke prepares a stroke. It does not draw until Begin.
func NewStroke(dst *image.RGBA, tool Tool, brush float64, col Color) *Stroke {
	if brush < 1 {
		brush = 1
	}
	return &Stroke{dst: dst, tool: tool, brush: brush, col: col}
}

// Active reports whether Begin has been called without a matching End.
func (s *Stroke) Active() bool { return s != nil && s.active }

// Len returns the number of recorded points.
func (s *Stroke) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// Begin starts the stroke at p and stamps a dot so a single tap leaves a mark.
func (s *Stroke) Begin(p image.Point) {
	if s == nil || s.dst == nil {
		return
	}
	fp := fpoint{float64(p.X), float64(p.Y)}
	s.active = true
	s.points = append(s.points[:0], fp)
	m := newMask(s.dst.Rect)
	m.disc(fp, s.brush/2)
	m.composite(s.dst, s.col, s.tool.Opacity())
}

// Extend adds p to the stroke and draws the segment leading to it. It
// returns false when p is within the jitter threshold of the previous point.
func (s *Stroke) Extend(p image.Point) bool {
	if !s.Active() || s.dst == nil || len(s.points) == 0 {
		return false
	}
	cur := fpoint{float64(p.X), float64(p.Y)}
	last := s.points[len(s.points)-1]
	d := last.dist(cur)
	if d < jitterThreshold {
		return false
	}
	opacity := s.tool.Opacity()
	halfWidth := s.tool.LineWidth(s.brush) / 2

	line := newMask(s.dst.Rect)
	if n := len(s.points); n >= 2 {
		p0, p1 := s.points[n-2], s.points[n-1]
		mid := fpoint{(p0.x + p1.x) / 2, (p0.y + p1.y) / 2}
		line.quad(p0, p1, mid, halfWidth)
	} else {
		line.segment(last, cur, halfWidth)
	}
	line.composite(s.dst, s.col, opacity)

	if d > stampSpacing {
		stamps := newMask(s.dst.Rect)
		steps := int(math.Ceil(d / stampSpacing))
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps)
			stamps.disc(fpoint{last.x + (cur.x-last.x)*t, last.y + (cur.y-last.y)*t}, s.brush/2)
		}
		stamps.composite(s.dst, s.col, opacity)
	}

	s.points = append(s.points, cur)
	return true
}

// End finishes the stroke. It returns the number of points recorded.
func (s *Stroke) End() int {
	if !s.Active() {
		return 0
	}
	s.active = false
	return len(s.points)
}

// mask collects round shapes into one coverage pass so overlapping parts of
// a single draw call are not blended twice.
type mask struct {
	clip   image.Rectangle
	discs  []fpoint
	radii  []float64
	bounds image.Rectangle
}

func newMask(clip image.Rectangle) *mask { return &mask{clip: clip} }

func (m *mask) disc(c fpoint, r float64) {
	if r < 0.5 {
		r = 0.5
	}
	db := image.Rect(
		int(math.Floor(c.x-r))-1, int(math.Floor(c.y-r))-1,
		int(math.Ceil(c.x+r))+2, int(math.Ceil(c.y+r))+2,
	)
	if !db.Overlaps(m.clip) {
		return
	}
	m.discs = append(m.discs, c)
	m.radii = append(m.radii, r)
	m.bounds = m.bounds.Union(db)
}

// segment covers a straight round-capped line.
func (m *mask) segment(a, b fpoint, r float64) {
	n := steps(a.dist(b), r)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		m.disc(fpoint{a.x + (b.x-a.x)*t, a.y + (b.y-a.y)*t}, r)
	}
}

// quad covers a round-capped quadratic Bézier from a to b with control ctrl.
func (m *mask) quad(a, ctrl, b fpoint, r float64) {
	n := steps(a.dist(ctrl)+ctrl.dist(b), r)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		u := 1 - t
		m.disc(fpoint{
			u*u*a.x + 2*u*t*ctrl.x + t*t*b.x,
			u*u*a.y + 2*u*t*ctrl.y + t*t*b.y,
		}, r)
	}
}

// steps picks a sample count so consecutive discs overlap.
func steps(length, r float64) int {
	spacing := math.Min(1, r)
	n := int(math.Ceil(length / spacing))
	if n < 1 {
		n = 1
	}
	return n
}

func (m *mask) composite(dst *image.RGBA, c Color, opacity float64) {
	area := m.bounds.Intersect(m.clip)
	if len(m.discs) == 0 || area.Empty() {
		return
	}
	size := m.bounds.Size()
	z := vector.NewRasterizer(size.X, size.Y)
	ox, oy := float64(m.bounds.Min.X), float64(m.bounds.Min.Y)
	for i, center := range m.discs {
		addCircle(z, float32(center.x-ox), float32(center.y-oy), float32(m.radii[i]))
	}
	cover := image.NewAlpha(image.Rect(0, 0, size.X, size.Y))
	z.Draw(cover, cover.Bounds(), image.Opaque, image.Point{})

	alpha := math.Round(opacity * float64(c.A))
	src := image.NewUniform(Color{R: c.R, G: c.G, B: c.B, A: uint8(alpha)}.NRGBA())
	draw.DrawMask(dst, area, src, image.Point{}, cover, area.Min.Sub(m.bounds.Min), draw.Over)
}

// addCircle appends a closed circle built from four cubic curves. Circles
// share a winding direction so overlaps accumulate into full coverage.
func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := float32(kappa) * r
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}
