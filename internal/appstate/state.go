// Package appstate runs the interactive coloring window on top of shiny.
//
// One goroutine owns the session and processes window events. Frames are
// rendered on a separate paint goroutine from a copy of the canvas, so the
// session is never read concurrently.
package appstate

import (
	"context"
	"image"
	"image/color"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/colorbook/internal/export"
	"github.com/example/colorbook/internal/gallery"
	"github.com/example/colorbook/internal/input"
	"github.com/example/colorbook/internal/notify"
	"github.com/example/colorbook/internal/raster"
	"github.com/example/colorbook/internal/render"
	"github.com/example/colorbook/internal/session"
	"github.com/example/colorbook/internal/theme"
	"github.com/example/colorbook/internal/view"
)

const (
	minCanvasWidth  = 560
	minCanvasHeight = 420
	messageDuration = 2 * time.Second
)

// AppState holds the window's collaborators.
type AppState struct {
	Session  *session.Session
	Theme    *theme.Theme
	Exporter *export.Exporter
	Gallery  *gallery.Store
	Notifier *notify.Notifier
	Title    string

	dispatcher   *input.Dispatcher
	width        int
	height       int
	hover        hit
	layout       toolbarLayout
	shortcuts    []Shortcut
	message      string
	messageUntil time.Time
	now          func() time.Time

	updateCh  chan struct{}
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSession sets the document being edited.
func WithSession(s *session.Session) Option { return func(a *AppState) { a.Session = s } }

// WithTheme sets the window chrome colors.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithExporter sets where Ctrl+S, Ctrl+P and Ctrl+C write artwork.
func WithExporter(e *export.Exporter) Option { return func(a *AppState) { a.Exporter = e } }

// WithGallery enables Ctrl+G.
func WithGallery(g *gallery.Store) Option { return func(a *AppState) { a.Gallery = g } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		updateCh: make(chan struct{}, 1),
		hover:    noHit,
	}
	for _, o := range opts {
		o(a)
	}
	if a.Session == nil {
		a.Session = session.New()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.Exporter == nil {
		a.Exporter = &export.Exporter{App: export.DefaultApp, Share: export.ClipboardShare}
	}
	if a.Title == "" {
		a.Title = "colorbook"
	}
	a.dispatcher = input.New(a.Session)
	size := a.Session.Size()
	a.resize(max(size.X, minCanvasWidth)+toolbarWidth, max(size.Y, minCanvasHeight)+bottomHeight)
	return a
}

func (a *AppState) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

// NotifyImageChanged requests a repaint when the session is changed from
// outside the event loop.
func (a *AppState) NotifyImageChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// viewport is the screen area the canvas is laid out in.
func (a *AppState) viewport() image.Rectangle {
	return image.Rect(toolbarWidth, 0, a.width, a.height-bottomHeight)
}

func (a *AppState) resize(width, height int) {
	a.width, a.height = width, height
	vp := a.viewport()
	a.Session.SetViewport(view.R(float64(vp.Min.X), float64(vp.Min.Y), float64(vp.Max.X), float64(vp.Max.Y)))
	a.relayout()
}

func (a *AppState) relayout() {
	a.layout = layoutToolbar(len(a.Session.Recent()))
	a.shortcuts = layoutShortcuts(a.height, a.Session.View().Zoom)
}

func (a *AppState) setMessage(msg string) {
	a.message = msg
	a.messageUntil = a.clock().Add(messageDuration)
	log.Print(msg)
}

func (a *AppState) messageVisible() bool {
	return a.message != "" && a.clock().Before(a.messageUntil)
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window on s until it is closed.
func (a *AppState) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: a.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	shadows := &render.ShadowCache{}
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st, shadows)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	for {
		var redraw bool
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				a.dispatcher.Reset()
				stopPaint()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				redraw = a.dispatcher.Pointer(input.PointerEvent{Kind: input.PointerLeave}).Redraw
			}
		case size.Event:
			a.resize(e.WidthPx, e.HeightPx)
			redraw = true
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := a.paintState()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			var action string
			redraw, action = a.handleMouse(e)
			if action == actionQuit {
				a.dispatcher.Reset()
				stopPaint()
				return
			}
		case touch.Event:
			redraw = a.handleTouch(e)
		case key.Event:
			action, ok := actionForKey(e)
			if !ok {
				continue
			}
			if action == actionQuit {
				a.dispatcher.Reset()
				stopPaint()
				return
			}
			redraw = a.perform(action)
		}
		if redraw {
			w.Send(paint.Event{})
		}
	}
}

// handleMouse routes e to the toolbar, the shortcut bar or the canvas
// dispatcher. It returns whether a repaint is needed and the name of any
// action that the loop itself must run.
func (a *AppState) handleMouse(e mouse.Event) (bool, string) {
	p := image.Pt(int(e.X), int(e.Y))
	pos := view.Pt(float64(e.X), float64(e.Y))
	vp := a.viewport()

	if e.Button == mouse.ButtonWheelUp || e.Button == mouse.ButtonWheelDown {
		if !p.In(vp) || e.Direction == mouse.DirRelease {
			return false, ""
		}
		dy := 1.0
		if e.Button == mouse.ButtonWheelUp {
			dy = -1
		}
		if a.dispatcher.Wheel(input.WheelEvent{DeltaY: dy}).Redraw {
			a.relayout()
			return true, ""
		}
		return false, ""
	}

	if e.Direction == mouse.DirPress && a.messageVisible() {
		a.messageUntil = time.Time{}
		return true, ""
	}

	if !p.In(vp) {
		redraw := false
		if a.dispatcher.Phase() != input.Idle {
			redraw = a.dispatcher.Pointer(input.PointerEvent{Kind: input.PointerLeave}).Redraw
		}
		h := a.layout.hitTest(p)
		if p.Y >= a.height-bottomHeight {
			h = shortcutAt(a.shortcuts, p)
		}
		if h != a.hover {
			a.hover = h
			redraw = true
		}
		if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
			if h.kind == hitShortcut && a.shortcuts[h.index].action == actionQuit {
				return redraw, actionQuit
			}
			if a.activate(h) {
				redraw = true
			}
		}
		return redraw, ""
	}

	redraw := false
	if a.hover != noHit {
		a.hover = noHit
		redraw = true
	}
	var kind input.PointerKind
	switch {
	case e.Direction == mouse.DirNone:
		kind = input.PointerMove
	case e.Button != mouse.ButtonLeft:
		return redraw, ""
	case e.Direction == mouse.DirPress:
		kind = input.PointerDown
	case e.Direction == mouse.DirRelease:
		kind = input.PointerUp
	default:
		return redraw, ""
	}
	res := a.dispatcher.Pointer(input.PointerEvent{Kind: kind, Pos: pos, OnCanvas: a.Session.OnCanvas(pos)})
	if res.Redraw && kind == input.PointerUp {
		a.relayout()
	}
	return redraw || res.Redraw, ""
}

func (a *AppState) handleTouch(e touch.Event) bool {
	var kind input.TouchKind
	switch e.Type {
	case touch.TypeBegin:
		kind = input.TouchStart
	case touch.TypeMove:
		kind = input.TouchMove
	case touch.TypeEnd:
		kind = input.TouchEnd
	default:
		return false
	}
	pos := view.Pt(float64(e.X), float64(e.Y))
	res := a.dispatcher.Touch(input.TouchEvent{
		Kind:     kind,
		ID:       input.TouchID(e.Sequence),
		Pos:      pos,
		OnCanvas: a.Session.OnCanvas(pos),
	})
	if res.Redraw {
		a.relayout()
	}
	return res.Redraw
}

// activate runs the toolbar element h.
func (a *AppState) activate(h hit) bool {
	switch h.kind {
	case hitTool:
		return a.selectTool(raster.Tools[h.index])
	case hitSwatch:
		return a.selectColor(session.Palette[h.index].Color)
	case hitRecent:
		recent := a.Session.Recent()
		if h.index >= len(recent) {
			return false
		}
		return a.selectColor(recent[h.index])
	case hitBrushDown:
		return a.perform(actionBrushDown)
	case hitBrushUp:
		return a.perform(actionBrushUp)
	case hitToleranceDown:
		return a.perform(actionToleranceDown)
	case hitToleranceUp:
		return a.perform(actionToleranceUp)
	case hitShortcut:
		return a.perform(a.shortcuts[h.index].action)
	}
	return false
}

func (a *AppState) selectTool(t raster.Tool) bool {
	a.dispatcher.Reset()
	a.Session.SetTool(t)
	return true
}

func (a *AppState) selectColor(c raster.Color) bool {
	a.Session.SetColor(c)
	a.relayout()
	return true
}

type paintState struct {
	width, height int
	theme         *theme.Theme
	canvas        *image.RGBA
	display       image.Rectangle
	viewport      image.Rectangle
	tools         session.ToolState
	recent        []raster.Color
	layout        toolbarLayout
	shortcuts     []Shortcut
	hover         hit
	message       string
}

func (a *AppState) paintState() paintState {
	st := paintState{
		width:     a.width,
		height:    a.height,
		theme:     a.Theme,
		canvas:    a.Session.Snapshot(),
		display:   a.Session.DisplayRect().Image(),
		viewport:  a.viewport(),
		tools:     a.Session.Tools(),
		recent:    a.Session.Recent(),
		layout:    a.layout,
		shortcuts: append([]Shortcut(nil), a.shortcuts...),
		hover:     a.hover,
	}
	if a.messageVisible() {
		st.message = a.message
	}
	return st
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState, shadows *render.ShadowCache) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	renderFrame(ctx, b.RGBA(), st, shadows)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// renderFrame draws one complete frame into dst. It stops early when ctx is
// canceled.
func renderFrame(ctx context.Context, dst *image.RGBA, st paintState, shadows *render.ShadowCache) {
	th := st.theme
	shadow := render.DefaultShadowOptions()
	shadow.Color = th.Shadow
	render.Compose(dst, st.viewport, render.Scene{
		Background: th.Background,
		Canvas: render.Canvas{
			Image:  st.canvas,
			Rect:   st.display,
			Paper:  color.RGBA{255, 255, 255, 255},
			Border: th.CanvasBorder,
		},
		Shadow: shadow,
	}, shadows)
	if ctx.Err() != nil {
		return
	}

	if st.canvas == nil {
		drawMessage(dst, st.viewport, "no image loaded", th.Foreground, th.ToolbarBackground)
	}
	drawToolbar(dst, &st)
	drawShortcuts(dst, &st)
	if ctx.Err() != nil {
		return
	}

	if st.message != "" {
		drawMessage(dst, st.viewport, st.message, th.Foreground, th.ToolbarBackground)
	}
}
