package appstate

import (
	"unicode"

	"golang.org/x/mobile/event/key"
)

const (
	actionToolFill      = "tool-fill"
	actionToolPen       = "tool-pen"
	actionToolMarker    = "tool-marker"
	actionToolPencil    = "tool-pencil"
	actionZoomIn        = "zoom-in"
	actionZoomOut       = "zoom-out"
	actionZoomReset     = "zoom-reset"
	actionBrushDown     = "brush-down"
	actionBrushUp       = "brush-up"
	actionToleranceDown = "tolerance-down"
	actionToleranceUp   = "tolerance-up"
	actionUndo          = "undo"
	actionClear         = "clear"
	actionExport        = "export"
	actionPrint         = "print"
	actionShare         = "share"
	actionGallery       = "gallery"
	actionQuit          = "quit"
)

// KeyShortcut describes a keyboard combination that triggers an action.
// Plain keys are matched by Rune; combinations using Control are matched by
// Code so the control character produced by the platform does not matter.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

var keyboardAction = map[KeyShortcut]string{
	{Rune: 'f'}: actionToolFill,
	{Rune: 'p'}: actionToolPen,
	{Rune: 'k'}: actionToolMarker,
	{Rune: 'n'}: actionToolPencil,
	{Rune: '+'}: actionZoomIn,
	{Rune: '='}: actionZoomIn,
	{Rune: '-'}: actionZoomOut,
	{Rune: '0'}: actionZoomReset,
	{Rune: '['}: actionBrushDown,
	{Rune: ']'}: actionBrushUp,
	{Rune: ','}: actionToleranceDown,
	{Rune: '.'}: actionToleranceUp,
	{Rune: 'q'}: actionQuit,

	{Code: key.CodeDeleteForward}:                               actionClear,
	{Code: key.CodeKeypadPlusSign}:                              actionZoomIn,
	{Code: key.CodeKeypadHyphenMinus}:                           actionZoomOut,
	{Code: key.CodeZ, Modifiers: key.ModControl}:                actionUndo,
	{Code: key.CodeZ, Modifiers: key.ModControl | key.ModShift}: actionClear,
	{Code: key.CodeS, Modifiers: key.ModControl}:                actionExport,
	{Code: key.CodeP, Modifiers: key.ModControl}:                actionPrint,
	{Code: key.CodeC, Modifiers: key.ModControl}:                actionShare,
	{Code: key.CodeG, Modifiers: key.ModControl}:                actionGallery,
}

// actionForKey maps a key press to an action name.
func actionForKey(e key.Event) (string, bool) {
	if e.Direction != key.DirPress {
		return "", false
	}
	if e.Modifiers&key.ModControl != 0 {
		mods := e.Modifiers & (key.ModControl | key.ModShift)
		action, ok := keyboardAction[KeyShortcut{Code: e.Code, Modifiers: mods}]
		return action, ok
	}
	if action, ok := keyboardAction[KeyShortcut{Code: e.Code}]; ok {
		return action, true
	}
	if e.Rune <= 0 || e.Modifiers&(key.ModAlt|key.ModMeta) != 0 {
		return "", false
	}
	action, ok := keyboardAction[KeyShortcut{Rune: unicode.ToLower(e.Rune)}]
	return action, ok
}
