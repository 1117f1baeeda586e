package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/colorbook/internal/raster"
	"github.com/example/colorbook/internal/session"
	"github.com/example/colorbook/internal/theme"
)

const (
	bottomHeight = 24
	buttonHeight = 24
	swatchSize   = 16
	swatchStep   = 18
	stepperSize  = 16
	toolbarPad   = 4
)

var toolbarWidth = 5*swatchStep + 2*toolbarPad

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var toolLabels = map[raster.Tool]string{
	raster.ToolFill:   "F:Fill",
	raster.ToolPen:    "P:Pen",
	raster.ToolMarker: "K:Marker",
	raster.ToolPencil: "N:Pencil",
}

func init() {
	d := &font.Drawer{Face: basicfont.Face7x13}
	for _, lbl := range toolLabels {
		if w := d.MeasureString(lbl).Ceil() + 2*toolbarPad; w > toolbarWidth {
			toolbarWidth = w
		}
	}
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

type hitKind int

const (
	hitNone hitKind = iota
	hitTool
	hitSwatch
	hitRecent
	hitBrushDown
	hitBrushUp
	hitToleranceDown
	hitToleranceUp
	hitShortcut
)

// hit identifies the chrome element under a point.
type hit struct {
	kind  hitKind
	index int
}

var noHit = hit{kind: hitNone, index: -1}

// toolbarLayout holds the rectangles of the left-hand toolbar.
type toolbarLayout struct {
	tools   []image.Rectangle
	palette []image.Rectangle
	// recentTop is the baseline row of the "Recent" label.
	recentTop int
	recent    []image.Rectangle

	brushRow     image.Rectangle
	brushDown    image.Rectangle
	brushUp      image.Rectangle
	toleranceRow image.Rectangle
	toleranceDn  image.Rectangle
	toleranceUp  image.Rectangle
}

// layoutToolbar places the tool buttons, the palette, the recent colors and
// the brush and tolerance steppers from top to bottom.
func layoutToolbar(recent int) toolbarLayout {
	var l toolbarLayout
	y := 0
	for range raster.Tools {
		l.tools = append(l.tools, image.Rect(0, y, toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}

	y += toolbarPad
	l.palette, y = swatchGrid(len(session.Palette), y)

	y += toolbarPad
	row := func() (image.Rectangle, image.Rectangle, image.Rectangle) {
		r := image.Rect(0, y, toolbarWidth, y+buttonHeight)
		top := y + (buttonHeight-stepperSize)/2
		up := image.Rect(toolbarWidth-toolbarPad-stepperSize, top, toolbarWidth-toolbarPad, top+stepperSize)
		down := up.Sub(image.Pt(stepperSize+2, 0))
		y += buttonHeight
		return r, down, up
	}
	l.brushRow, l.brushDown, l.brushUp = row()
	l.toleranceRow, l.toleranceDn, l.toleranceUp = row()

	y += toolbarPad
	l.recentTop = y
	y += 14
	l.recent, _ = swatchGrid(recent, y)
	return l
}

func swatchGrid(n, y int) ([]image.Rectangle, int) {
	if n == 0 {
		return nil, y
	}
	var rects []image.Rectangle
	x := toolbarPad
	for i := 0; i < n; i++ {
		if x+swatchSize > toolbarWidth {
			x = toolbarPad
			y += swatchStep
		}
		rects = append(rects, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchStep
	}
	return rects, y + swatchStep
}

func (l toolbarLayout) hitTest(p image.Point) hit {
	for i, r := range l.tools {
		if p.In(r) {
			return hit{hitTool, i}
		}
	}
	for i, r := range l.palette {
		if p.In(r) {
			return hit{hitSwatch, i}
		}
	}
	for i, r := range l.recent {
		if p.In(r) {
			return hit{hitRecent, i}
		}
	}
	steppers := []struct {
		r    image.Rectangle
		kind hitKind
	}{
		{l.brushDown, hitBrushDown},
		{l.brushUp, hitBrushUp},
		{l.toleranceDn, hitToleranceDown},
		{l.toleranceUp, hitToleranceUp},
	}
	for _, s := range steppers {
		if p.In(s.r) {
			return hit{s.kind, 0}
		}
	}
	return noHit
}

// Shortcut is a clickable hint in the bottom bar.
type Shortcut struct {
	label  string
	action string
	rect   image.Rectangle
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	col := th.ButtonBackground
	if state != StateDefault {
		col = th.ButtonActive
	}
	draw.Draw(dst, s.rect, &image.Uniform{col}, image.Point{}, draw.Src)
	strokeRect(dst, s.rect, th.ButtonBorder, 1)
	drawLabel(dst, s.label, s.rect.Min.X+2, s.rect.Min.Y+14, th.ButtonText)
}

// layoutShortcuts lays the bottom bar out left to right starting after the
// toolbar.
func layoutShortcuts(height int, zoom float64) []Shortcut {
	shortcuts := []Shortcut{
		{label: "^Z:undo", action: actionUndo},
		{label: "Del:clear", action: actionClear},
		{label: "^S:export", action: actionExport},
		{label: "^C:share", action: actionShare},
		{label: "^G:gallery", action: actionGallery},
		{label: fmt.Sprintf("+/-:zoom (%.0f%%)", zoom*100), action: actionZoomReset},
		{label: "Q:quit", action: actionQuit},
	}
	x := toolbarWidth + 4
	y := height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range shortcuts {
		w := meas.MeasureString(shortcuts[i].label).Ceil()
		shortcuts[i].rect = image.Rect(x-2, y-14, x+w+2, y+4)
		x = shortcuts[i].rect.Max.X + 8
	}
	return shortcuts
}

func shortcutAt(shortcuts []Shortcut, p image.Point) hit {
	for i := range shortcuts {
		if p.In(shortcuts[i].rect) {
			return hit{hitShortcut, i}
		}
	}
	return noHit
}

func buttonColor(th *theme.Theme, state ButtonState) color.RGBA {
	switch state {
	case StatePressed:
		return th.ButtonActive
	case StateHover:
		return blend(th.ButtonBackground, th.ButtonActive)
	}
	return th.ButtonBackground
}

func blend(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
		A: 255,
	}
}

func drawToolbar(dst *image.RGBA, st *paintState) {
	th := st.theme
	l := st.layout
	draw.Draw(dst, image.Rect(0, 0, toolbarWidth, st.height), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)

	for i, r := range l.tools {
		tool := raster.Tools[i]
		state := StateDefault
		if tool == st.tools.Tool {
			state = StatePressed
		} else if st.hover == (hit{hitTool, i}) {
			state = StateHover
		}
		draw.Draw(dst, r, &image.Uniform{buttonColor(th, state)}, image.Point{}, draw.Src)
		drawLabel(dst, toolLabels[tool], r.Min.X+toolbarPad, r.Min.Y+16, th.ButtonText)
	}

	current := st.tools.Color.Opaque()
	drawSwatches := func(rects []image.Rectangle, colors []raster.Color, kind hitKind) {
		for i, r := range rects {
			c := colors[i].NRGBA()
			draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Src)
			border := th.SwatchBorder
			thick := 1
			if colors[i].Opaque() == current {
				border = th.SwatchCurrent
				thick = 2
			} else if st.hover == (hit{kind, i}) {
				border = th.ButtonActive
			}
			strokeRect(dst, r, border, thick)
		}
	}
	swatches := make([]raster.Color, len(session.Palette))
	for i, s := range session.Palette {
		swatches[i] = s.Color
	}
	drawSwatches(l.palette, swatches, hitSwatch)

	stepper := func(row, down, up image.Rectangle, label string, downHit, upHit hitKind) {
		drawLabel(dst, label, row.Min.X+toolbarPad, row.Min.Y+16, th.Foreground)
		for _, b := range []struct {
			r    image.Rectangle
			sign string
			kind hitKind
		}{{down, "-", downHit}, {up, "+", upHit}} {
			state := StateDefault
			if st.hover.kind == b.kind {
				state = StateHover
			}
			draw.Draw(dst, b.r, &image.Uniform{buttonColor(th, state)}, image.Point{}, draw.Src)
			strokeRect(dst, b.r, th.ButtonBorder, 1)
			drawLabel(dst, b.sign, b.r.Min.X+5, b.r.Min.Y+12, th.ButtonText)
		}
	}
	stepper(l.brushRow, l.brushDown, l.brushUp, fmt.Sprintf("B %d", st.tools.Brush), hitBrushDown, hitBrushUp)
	stepper(l.toleranceRow, l.toleranceDn, l.toleranceUp, fmt.Sprintf("T %d", st.tools.Tolerance), hitToleranceDown, hitToleranceUp)

	if len(st.recent) > 0 {
		drawLabel(dst, "Recent", toolbarPad, l.recentTop+11, th.Foreground)
		drawSwatches(l.recent, st.recent, hitRecent)
	}
}

func drawShortcuts(dst *image.RGBA, st *paintState) {
	th := st.theme
	rect := image.Rect(0, st.height-bottomHeight, st.width, st.height)
	draw.Draw(dst, rect, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for i := range st.shortcuts {
		state := StateDefault
		if st.hover == (hit{hitShortcut, i}) {
			state = StateHover
		}
		st.shortcuts[i].Draw(dst, th, state)
	}
}

func drawLabel(dst *image.RGBA, s string, x, y int, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
}
