package gallery

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSaveAndList(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return clock }

	first, err := s.Save("sess-1", "Dragon", pngBytes(t, 4, 3))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	clock = clock.Add(time.Hour)
	second, err := s.Save("sess-2", "", pngBytes(t, 2, 2))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if second.Name != "sess-2" {
		t.Fatalf("default name %q", second.Name)
	}
	if first.Width != 4 || first.Height != 3 {
		t.Fatalf("dimensions %dx%d", first.Width, first.Height)
	}
	if _, err := os.Stat(s.Path(first)); err != nil {
		t.Fatalf("image file: %v", err)
	}

	// Reopen to read the index from disk.
	s2, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	entries, err := s2.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Fatalf("entries %+v", entries)
	}
	if !entries[1].Created.Equal(first.Created) || entries[1].Name != "Dragon" {
		t.Fatalf("round trip lost data: %+v", entries[1])
	}
}

func TestListNewestFirstWithinOneSecond(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	clock := time.Date(2024, 5, 1, 10, 0, 0, 100*int(time.Millisecond), time.UTC)
	s.Now = func() time.Time { return clock }

	first, err := s.Save("sess", "first", pngBytes(t, 1, 1))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	clock = clock.Add(300 * time.Millisecond)
	second, err := s.Save("sess", "second", pngBytes(t, 1, 1))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	third, err := s.Save("sess", "third", pngBytes(t, 1, 1))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries %+v", entries)
	}
	for i, want := range []Entry{third, second, first} {
		if entries[i].ID != want.ID {
			t.Fatalf("entries[%d] = %s, want %s", i, entries[i].Name, want.Name)
		}
	}
	if !entries[1].Created.Equal(clock) {
		t.Fatalf("created %v lost sub-second precision, want %v", entries[1].Created, clock)
	}
}

func TestSaveRejectsNonPNG(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("x", "x", []byte("hello")); err == nil {
		t.Fatal("expected error")
	}
	entries, err := s.List()
	if err != nil || len(entries) != 0 {
		t.Fatalf("entries=%v err=%v", entries, err)
	}
}

func TestGet(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	e, err := s.Save("x", "x", pngBytes(t, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(e.ID[:8])
	if err != nil || got.ID != e.ID {
		t.Fatalf("Get prefix = %+v, %v", got, err)
	}
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCorruptIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, indexFile), []byte("[[entry]\nbroken"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.List(); err == nil {
		t.Fatal("expected error for corrupt index")
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultDir(); got != filepath.Join("/data", "colorbook", "gallery") {
		t.Fatalf("DefaultDir = %q", got)
	}
}
