// Package history keeps the undo stack of a coloring session.
package history

import (
	"image"

	"github.com/example/colorbook/internal/raster"
)

// Snapshot is an immutable copy of a buffer's pixels.
type Snapshot struct {
	img *image.RGBA
}

// Valid reports whether the snapshot holds pixels.
func (s Snapshot) Valid() bool { return s.img != nil }

// Bounds returns the bounds of the captured buffer.
func (s Snapshot) Bounds() image.Rectangle {
	if s.img == nil {
		return image.Rectangle{}
	}
	return s.img.Rect
}

// Image returns a fresh copy of the captured pixels.
func (s Snapshot) Image() *image.RGBA { return raster.Clone(s.img) }

// CopyTo overwrites dst with the captured pixels. It reports false when dst
// has different bounds.
func (s Snapshot) CopyTo(dst *image.RGBA) bool {
	if s.img == nil || dst == nil || !dst.Rect.Eq(s.img.Rect) || len(dst.Pix) != len(s.img.Pix) {
		return false
	}
	copy(dst.Pix, s.img.Pix)
	return true
}

// Stack is a linear undo history. Index 0 holds the state the session was
// loaded with and is never discarded.
type Stack struct {
	entries []Snapshot
	cursor  int
}

// Initialize discards any history and records buf as the only entry.
func (h *Stack) Initialize(buf *image.RGBA) {
	if buf == nil {
		h.entries, h.cursor = nil, 0
		return
	}
	h.entries = []Snapshot{{img: raster.Clone(buf)}}
	h.cursor = 0
}

// Push records buf after the cursor, dropping entries that were undone.
func (h *Stack) Push(buf *image.RGBA) {
	if len(h.entries) == 0 || buf == nil {
		return
	}
	h.entries = append(h.entries[:h.cursor+1], Snapshot{img: raster.Clone(buf)})
	h.cursor = len(h.entries) - 1
}

// Undo moves the cursor back one entry and returns the snapshot to restore.
func (h *Stack) Undo() (Snapshot, bool) {
	if h.cursor <= 0 || len(h.entries) == 0 {
		return Snapshot{}, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Reset moves the cursor to the initial entry and returns it.
func (h *Stack) Reset() (Snapshot, bool) {
	if h.cursor <= 0 || len(h.entries) == 0 {
		return Snapshot{}, false
	}
	h.cursor = 0
	return h.entries[0], true
}

// Len returns the number of recorded entries.
func (h *Stack) Len() int { return len(h.entries) }

// Cursor returns the index of the current entry.
func (h *Stack) Cursor() int { return h.cursor }

// CanUndo reports whether Undo would change anything.
func (h *Stack) CanUndo() bool { return h.cursor > 0 }

// Current returns the snapshot at the cursor.
func (h *Stack) Current() (Snapshot, bool) {
	if len(h.entries) == 0 {
		return Snapshot{}, false
	}
	return h.entries[h.cursor], true
}
