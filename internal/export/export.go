// Package export writes finished artwork to disk and hands it to the
// platform share facility.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/example/colorbook/internal/clipboard"
)

var (
	// ErrShareUnavailable means the platform cannot share; callers fall back
	// to a download.
	ErrShareUnavailable = errors.New("share unavailable")
	// ErrShareCanceled means the user dismissed the share. Nothing else
	// happens.
	ErrShareCanceled = errors.New("share canceled")
)

// DefaultApp is the file name prefix used when Exporter.App is empty.
const DefaultApp = "colorbook"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName returns "{app}-{session}-{unixMillis}.png".
func FileName(app, session string, t time.Time) string {
	return fmt.Sprintf("%s-%s-%d.png", sanitize(app, DefaultApp), sanitize(session, "page"), t.UnixMilli())
}

func sanitize(s, fallback string) string {
	s = unsafeName.ReplaceAllString(s, "_")
	if s == "" || s == "_" {
		return fallback
	}
	return s
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("encode png: no image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ShareFunc hands encoded PNG data to a share facility.
type ShareFunc func(png []byte) error

// ClipboardShare publishes the image on the system clipboard.
func ClipboardShare(data []byte) error {
	if err := clipboard.WritePNG(data); err != nil {
		if errors.Is(err, clipboard.ErrUnavailable) {
			return fmt.Errorf("%w: %v", ErrShareUnavailable, err)
		}
		return err
	}
	return nil
}

// Exporter writes artwork for one application.
type Exporter struct {
	// App prefixes file names.
	App string
	// Dir receives downloads. Empty means the working directory.
	Dir string
	// Now stamps file names. Nil means time.Now.
	Now func() time.Time
	// Share is the share facility. Nil means sharing is unavailable.
	Share ShareFunc
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Exporter) path(session string) string {
	return filepath.Join(e.Dir, FileName(e.App, session, e.now()))
}

// Download writes img as a PNG and returns the file path.
func (e *Exporter) Download(img image.Image, session string) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return e.write(data, session)
}

func (e *Exporter) write(data []byte, session string) (string, error) {
	if e.Dir != "" {
		if err := os.MkdirAll(e.Dir, 0o755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
	}
	path := e.path(session)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ShareResult reports how a share request ended.
type ShareResult struct {
	// Shared is set when the share facility accepted the image.
	Shared bool
	// Canceled is set when the user dismissed the share.
	Canceled bool
	// Path is the downloaded file when sharing fell back to Download.
	Path string
}

// ShareImage offers img to the share facility. Any failure other than a
// cancel falls back to Download.
func (e *Exporter) ShareImage(img image.Image, session string) (ShareResult, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return ShareResult{}, err
	}
	shareErr := ErrShareUnavailable
	if e.Share != nil {
		shareErr = e.Share(data)
	}
	switch {
	case shareErr == nil:
		return ShareResult{Shared: true}, nil
	case errors.Is(shareErr, ErrShareCanceled):
		return ShareResult{Canceled: true}, nil
	}
	log.Printf("share failed, saving instead: %v", shareErr)
	path, err := e.write(data, session)
	if err != nil {
		return ShareResult{}, err
	}
	return ShareResult{Path: path}, nil
}
