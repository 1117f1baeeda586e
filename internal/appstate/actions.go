package appstate

import (
	"fmt"

	"github.com/example/colorbook/internal/export"
	"github.com/example/colorbook/internal/raster"
	"github.com/example/colorbook/internal/session"
)

const (
	brushStep     = 1
	toleranceStep = 5
)

// perform runs a named action and reports whether the window needs a
// repaint. actionQuit is handled by the event loop.
func (a *AppState) perform(action string) bool {
	s := a.Session
	switch action {
	case actionToolFill:
		return a.selectTool(raster.ToolFill)
	case actionToolPen:
		return a.selectTool(raster.ToolPen)
	case actionToolMarker:
		return a.selectTool(raster.ToolMarker)
	case actionToolPencil:
		return a.selectTool(raster.ToolPencil)
	case actionZoomIn:
		return a.zoom(s.View().ZoomIn())
	case actionZoomOut:
		return a.zoom(s.View().ZoomOut())
	case actionZoomReset:
		return a.zoom(s.View().ResetZoom())
	case actionBrushDown:
		s.SetBrush(s.Tools().Brush - brushStep)
		return true
	case actionBrushUp:
		s.SetBrush(s.Tools().Brush + brushStep)
		return true
	case actionToleranceDown:
		s.SetTolerance(s.Tools().Tolerance - toleranceStep)
		return true
	case actionToleranceUp:
		s.SetTolerance(s.Tools().Tolerance + toleranceStep)
		return true
	case actionUndo:
		a.dispatcher.Reset()
		return s.Undo()
	case actionClear:
		a.dispatcher.Reset()
		if s.Clear() {
			a.setMessage("canvas cleared")
			return true
		}
		return false
	case actionExport:
		return a.export()
	case actionPrint:
		return a.print()
	case actionShare:
		return a.share()
	case actionGallery:
		return a.saveToGallery()
	}
	return false
}

func (a *AppState) zoom(changed bool) bool {
	if changed {
		a.relayout()
	}
	return changed
}

// fail reports err in the window and as a desktop notification.
func (a *AppState) fail(what string, err error) bool {
	err = fmt.Errorf("%s: %w", what, err)
	a.setMessage(err.Error())
	a.Notifier.Error(err)
	return true
}

func (a *AppState) export() bool {
	a.dispatcher.Reset()
	img := a.Session.Snapshot()
	if img == nil {
		return a.fail("export", session.ErrNotLoaded)
	}
	path, err := a.Exporter.Download(img, a.Session.ID())
	if err != nil {
		return a.fail("export", err)
	}
	a.setMessage(fmt.Sprintf("saved %s", path))
	a.Notifier.Export(path)
	return true
}

func (a *AppState) print() bool {
	a.dispatcher.Reset()
	img := a.Session.Snapshot()
	if img == nil {
		return a.fail("print", session.ErrNotLoaded)
	}
	path, err := a.Exporter.PDF(img, a.Session.ID(), a.Session.Name())
	if err != nil {
		return a.fail("print", err)
	}
	a.setMessage(fmt.Sprintf("saved %s", path))
	a.Notifier.Export(path)
	return true
}

func (a *AppState) share() bool {
	a.dispatcher.Reset()
	img := a.Session.Snapshot()
	if img == nil {
		return a.fail("share", session.ErrNotLoaded)
	}
	res, err := a.Exporter.ShareImage(img, a.Session.ID())
	switch {
	case err != nil:
		return a.fail("share", err)
	case res.Shared:
		a.setMessage("image copied to clipboard")
		a.Notifier.Share("copied to clipboard", img)
	case res.Canceled:
		a.setMessage("share canceled")
	case res.Path != "":
		a.setMessage(fmt.Sprintf("saved %s", res.Path))
		a.Notifier.Export(res.Path)
	}
	return true
}

func (a *AppState) saveToGallery() bool {
	a.dispatcher.Reset()
	if a.Gallery == nil {
		a.setMessage("gallery unavailable")
		return true
	}
	img := a.Session.Snapshot()
	if img == nil {
		return a.fail("gallery", session.ErrNotLoaded)
	}
	data, err := export.EncodePNG(img)
	if err != nil {
		return a.fail("gallery", err)
	}
	entry, err := a.Gallery.Save(a.Session.ID(), a.Session.Name(), data)
	if err != nil {
		return a.fail("gallery", err)
	}
	a.setMessage(fmt.Sprintf("saved to gallery as %s", entry.Name))
	a.Notifier.Gallery(entry.Name)
	return true
}
