package export

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// A4 portrait page layout in millimetres.
const (
	pageMargin  = 15.0
	titleHeight = 12.0
)

// PDF writes img centered on an A4 page, under an optional title, and
// returns the file path.
func (e *Exporter) PDF(img image.Image, session, title string) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	if e.Dir != "" {
		if err := os.MkdirAll(e.Dir, 0o755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
	}
	path := strings.TrimSuffix(e.path(session), ".png") + ".pdf"

	p := gofpdf.New("P", "mm", "A4", "")
	p.SetCreator(e.appName(), true)
	p.SetTitle(title, true)
	p.AddPage()

	pageW, pageH := p.GetPageSize()
	top := pageMargin
	if title = strings.TrimSpace(title); title != "" {
		p.SetFont("Helvetica", "B", 16)
		p.CellFormat(0, titleHeight, title, "", 1, "C", false, 0, "")
		top += titleHeight
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	name := filepath.Base(path)
	p.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	b := img.Bounds()
	x, y, w, h := fitBox(float64(b.Dx()), float64(b.Dy()), pageMargin, top, pageW-2*pageMargin, pageH-top-pageMargin)
	p.ImageOptions(name, x, y, w, h, false, opts, 0, "")

	if err := p.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (e *Exporter) appName() string {
	if e.App != "" {
		return e.App
	}
	return DefaultApp
}

// fitBox scales a w×h image uniformly into the box at (left, top) of size
// maxW×maxH and centers it horizontally.
func fitBox(w, h, left, top, maxW, maxH float64) (x, y, fw, fh float64) {
	if w <= 0 || h <= 0 {
		return left, top, 0, 0
	}
	scale := maxW / w
	if s := maxH / h; s < scale {
		scale = s
	}
	fw, fh = w*scale, h*scale
	return left + (maxW-fw)/2, top, fw, fh
}
