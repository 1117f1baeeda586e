// Package gallery keeps saved artwork in a directory with a TOML index.
package gallery

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

const indexFile = "gallery.toml"

// ErrNotFound is returned when an entry id is not in the index.
var ErrNotFound = errors.New("gallery entry not found")

// Entry describes one stored image.
type Entry struct {
	ID      string    `toml:"id"`
	Session string    `toml:"session"`
	Name    string    `toml:"name"`
	File    string    `toml:"file"`
	Width   int       `toml:"width"`
	Height  int       `toml:"height"`
	Created time.Time `toml:"created"`
}

type index struct {
	Entries []Entry `toml:"entry"`
}

// Store is a gallery rooted at a directory. It is safe for concurrent use
// within one process.
type Store struct {
	dir string
	// Now stamps new entries. Nil means time.Now.
	Now func() time.Time

	mu sync.Mutex
}

// DefaultDir returns $XDG_DATA_HOME/colorbook/gallery, falling back to
// ~/.local/share.
func DefaultDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "colorbook", "gallery")
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "colorbook", "gallery")
}

// Open creates dir if needed and returns a Store for it.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create gallery dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the gallery directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Save stores PNG data under a new entry. An empty name defaults to the
// session id.
func (s *Store) Save(session, name string, data []byte) (Entry, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Entry{}, fmt.Errorf("gallery save: not a PNG image: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		name = session
	}
	id := uuid.NewString()
	e := Entry{
		ID:      id,
		Session: session,
		Name:    name,
		File:    id + ".png",
		Width:   cfg.Width,
		Height:  cfg.Height,
		Created: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.read()
	if err != nil {
		return Entry{}, err
	}
	if err := os.WriteFile(filepath.Join(s.dir, e.File), data, 0o644); err != nil {
		return Entry{}, fmt.Errorf("gallery save: %w", err)
	}
	idx.Entries = append(idx.Entries, e)
	if err := s.write(idx); err != nil {
		_ = os.Remove(filepath.Join(s.dir, e.File))
		return Entry{}, err
	}
	return e, nil
}

// List returns all entries, newest first.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, err := s.read()
	if err != nil {
		return nil, err
	}
	// Entries are appended in save order; reversing first keeps equal
	// timestamps newest first.
	entries := idx.Entries
	slices.Reverse(entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Created.After(entries[j].Created)
	})
	return entries, nil
}

// Path returns the image file of e.
func (s *Store) Path(e Entry) string { return filepath.Join(s.dir, e.File) }

// Get looks up an entry by id or unique id prefix.
func (s *Store) Get(id string) (Entry, error) {
	entries, err := s.List()
	if err != nil {
		return Entry{}, err
	}
	var found []Entry
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
		if id != "" && strings.HasPrefix(e.ID, id) {
			found = append(found, e)
		}
	}
	if len(found) == 1 {
		return found[0], nil
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *Store) read() (index, error) {
	var idx index
	path := filepath.Join(s.dir, indexFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return idx, nil
	}
	if _, err := toml.DecodeFile(path, &idx); err != nil {
		return index{}, fmt.Errorf("read gallery index: %w", err)
	}
	return idx, nil
}

func (s *Store) write(idx index) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(idx); err != nil {
		return fmt.Errorf("encode gallery index: %w", err)
	}
	path := filepath.Join(s.dir, indexFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write gallery index: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("write gallery index: %w", err)
	}
	return nil
}
