package main

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/colorbook/internal/config"
	"github.com/example/colorbook/internal/raster"
)

func testRoot(t *testing.T) *root {
	t.Helper()
	return &root{
		program:    "colorbook",
		config:     config.New(),
		exportDir:  t.TempDir(),
		galleryDir: t.TempDir(),
	}
}

// writePage writes a white 20x20 page with a black frame around a 10x10 hole.
func writePage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	raster.FillRect(img, img.Bounds(), raster.RGB(0, 0, 0))
	raster.FillRect(img, image.Rect(5, 5, 15, 15), raster.RGB(255, 255, 255))
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func TestFillCommand(t *testing.T) {
	in := writePage(t)
	out := filepath.Join(t.TempDir(), "out.png")
	cmd, err := parseFillCmd([]string{"-file", in, "10", "10", "-color", "#FF0000", "-output", out}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := readPNG(t, out)
	if r, g, b, _ := img.At(10, 10).RGBA(); r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Fatalf("inside = %v, want red", img.At(10, 10))
	}
	if r, _, _, _ := img.At(1, 1).RGBA(); r != 0 {
		t.Fatalf("frame = %v, want black", img.At(1, 1))
	}
}

func TestFillDefaultOutput(t *testing.T) {
	in := writePage(t)
	cmd, err := parseFillCmd([]string{"-file", in, "10", "10"}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := strings.TrimSuffix(in, ".png") + "-colored.png"
	if cmd.output != want {
		t.Fatalf("output = %q, want %q", cmd.output, want)
	}
}

func TestParseFillErrors(t *testing.T) {
	r := testRoot(t)
	var uerr *UsageError
	if _, err := parseFillCmd([]string{"-file", "x.png"}, r); !errors.As(err, &uerr) {
		t.Fatalf("missing coordinates: got %v, want usage error", err)
	}
	if _, err := parseFillCmd([]string{"-file", "x.png", "1", "2", "3"}, r); err == nil || !strings.Contains(err.Error(), "coordinate pairs") {
		t.Fatalf("odd coordinates: got %v", err)
	}
	if _, err := parseFillCmd([]string{"-file", "x.png", "1", "y"}, r); err == nil || !strings.Contains(err.Error(), `invalid coordinate "y"`) {
		t.Fatalf("bad coordinate: got %v", err)
	}
	if _, err := parseFillCmd([]string{"1", "2"}, r); err == nil || !strings.Contains(err.Error(), "-from-clipboard is required") {
		t.Fatalf("no source: got %v", err)
	}
	if _, err := parseFillCmd([]string{"-from-clipboard", "1", "2"}, r); err == nil || !strings.Contains(err.Error(), "output file is required") {
		t.Fatalf("clipboard without output: got %v", err)
	}
}

func TestStrokeCommand(t *testing.T) {
	in := writePage(t)
	out := filepath.Join(t.TempDir(), "out.png")
	cmd, err := parseStrokeCmd([]string{"-file", in, "-output", out, "-tool", "pen", "-brush", "3", "-color", "Charcoal", "6", "10", "14", "10"}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img := readPNG(t, out)
	if r, _, _, _ := img.At(10, 10).RGBA(); r>>8 == 255 {
		t.Fatalf("stroke left (10,10) white")
	}
	if r, _, _, _ := img.At(10, 6).RGBA(); r>>8 != 255 {
		t.Fatalf("stroke reached (10,6)")
	}
}

func TestStrokeRejectsFillTool(t *testing.T) {
	in := writePage(t)
	cmd, err := parseStrokeCmd([]string{"-file", in, "-tool", "fill", "1", "1"}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "not a drawing tool") {
		t.Fatalf("got %v", err)
	}
}

func TestClipboardReadError(t *testing.T) {
	original := readClipboardFn
	sentinel := errors.New("no display")
	readClipboardFn = func() (image.Image, error) { return nil, sentinel }
	t.Cleanup(func() { readClipboardFn = original })

	cmd, err := parseExportCmd([]string{"-from-clipboard"}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else {
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected wrapped error, got %v", err)
		}
		if want := "read clipboard image"; !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error to contain %q, got %v", want, err)
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	cmd, err := parseExportCmd([]string{"-file", "missing.png"}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "open missing.png") {
		t.Fatalf("expected open error context, got %v", err)
	}
}

func TestExportCommand(t *testing.T) {
	r := testRoot(t)
	in := writePage(t)
	cmd, err := parseExportCmd([]string{"-file", in, "-session", "abc"}, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	matches, err := filepath.Glob(filepath.Join(r.exportDir, "colorbook-abc-*.png"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("exported files = %v (%v)", matches, err)
	}

	dir := t.TempDir()
	cmd, err = parseExportCmd([]string{"-file", in, "-session", "abc", "-pdf", "-dir", dir}, r)
	if err != nil {
		t.Fatalf("parse pdf: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run pdf: %v", err)
	}
	if matches, _ := filepath.Glob(filepath.Join(dir, "colorbook-abc-*.pdf")); len(matches) != 1 {
		t.Fatalf("pdf files = %v", matches)
	}
}

func TestExportRejectsShareAndPDF(t *testing.T) {
	if _, err := parseExportCmd([]string{"-file", "x.png", "-share", "-pdf"}, testRoot(t)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGallerySaveAndShow(t *testing.T) {
	r := testRoot(t)
	in := writePage(t)
	save, err := parseGalleryCmd([]string{"save", "-file", in, "-name", "Frame"}, r)
	if err != nil {
		t.Fatalf("parse save: %v", err)
	}
	if err := save.Run(); err != nil {
		t.Fatalf("save: %v", err)
	}
	store, err := r.gallery()
	if err != nil {
		t.Fatalf("open gallery: %v", err)
	}
	entries, err := store.List()
	if err != nil || len(entries) != 1 || entries[0].Name != "Frame" {
		t.Fatalf("entries = %+v (%v)", entries, err)
	}
	show, err := parseGalleryCmd([]string{"show", shortID(entries[0].ID)}, r)
	if err != nil {
		t.Fatalf("parse show: %v", err)
	}
	if err := show.Run(); err != nil {
		t.Fatalf("show: %v", err)
	}
	if _, err := parseGalleryCmd([]string{"frobnicate"}, r); err == nil || !strings.Contains(err.Error(), "unknown gallery command") {
		t.Fatalf("got %v", err)
	}
}

func TestToolDefaultsFromConfig(t *testing.T) {
	r := testRoot(t)
	r.config.Tools = config.Tools{Tool: "marker", Brush: 80, Tolerance: 12, Color: "mint"}
	ts := r.toolDefaults()
	if ts.Tool != raster.ToolMarker || ts.Brush != 50 || ts.Tolerance != 12 {
		t.Fatalf("tools = %s", ts)
	}
	if ts.Color.Hex() != "#A8E6CF" {
		t.Fatalf("color = %s", ts.Color.Hex())
	}
}

func TestSplitArgsKeepsNegativeNumbers(t *testing.T) {
	cmd, err := parseStrokeCmd([]string{"-file", "x.png", "-3", "4", "5", "6", "-brush=7"}, testRoot(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.path[0] != image.Pt(-3, 4) || cmd.tf.brush != 7 {
		t.Fatalf("path = %v brush = %d", cmd.path, cmd.tf.brush)
	}
}

func TestUsageErrorRendersHelp(t *testing.T) {
	r := testRoot(t)
	_, err := parseFillCmd([]string{"-file", "x.png"}, r)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("got %v", err)
	}
	msg := uerr.Error()
	for _, want := range []string{"colorbook fill", "-tolerance", "-color"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("help missing %q:\n%s", want, msg)
		}
	}
}
