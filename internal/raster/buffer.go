// Package raster holds the pixel-level operations of the coloring canvas:
// loading and fitting artwork, tolerance flood fill and freehand strokes.
//
// Every buffer is an *image.RGBA with a zero origin. Functions accept a nil
// buffer and do nothing, so callers do not need to guard against an image
// that has not finished loading.
package raster

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Maximum display size artwork is fitted into.
const (
	MaxWidth  = 800
	MaxHeight = 600
)

// FitSize returns the dimensions of a w×h image uniformly scaled down to fit
// within maxW×maxH. Images that already fit are returned unchanged.
func FitSize(w, h, maxW, maxH int) (int, int) {
	fw, fh := float64(w), float64(h)
	if fw > float64(maxW) {
		fh = fh * float64(maxW) / fw
		fw = float64(maxW)
	}
	if fh > float64(maxH) {
		fw = fw * float64(maxH) / fh
		fh = float64(maxH)
	}
	nw, nh := int(fw), int(fh)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// Fit converts src into a zero-origin RGBA buffer no larger than maxW×maxH.
// Transparent areas of src stay transparent.
func Fit(src image.Image, maxW, maxH int) *image.RGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Empty() {
		return nil
	}
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// Load decodes a PNG, JPEG or GIF image and fits it to the maximum display size.
func Load(r io.Reader) (*image.RGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	out := Fit(img, MaxWidth, MaxHeight)
	if out == nil {
		return nil, fmt.Errorf("decode image: empty image")
	}
	return out, nil
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Clone returns a deep copy of img.
func Clone(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	out := &image.RGBA{
		Pix:    make([]byte, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(out.Pix, img.Pix)
	return out
}

// At returns the non-premultiplied color at (x, y). Out of range
// coordinates return the zero Color.
func At(img *image.RGBA, x, y int) Color {
	if img == nil || !image.Pt(x, y).In(img.Rect) {
		return Color{}
	}
	return pixelAt(img.Pix, img.PixOffset(x, y))
}

func pixelAt(pix []byte, i int) Color {
	p := pix[i : i+4 : i+4]
	c := Color{R: p[0], G: p[1], B: p[2], A: p[3]}
	if c.A != 0 && c.A != 255 {
		c.R = unpremul(c.R, c.A)
		c.G = unpremul(c.G, c.A)
		c.B = unpremul(c.B, c.A)
	}
	return c
}

func unpremul(v, a uint8) uint8 {
	n := (uint32(v)*255 + uint32(a)/2) / uint32(a)
	if n > 255 {
		n = 255
	}
	return uint8(n)
}

// FillRect paints r with c, ignoring the parts outside img.
func FillRect(img *image.RGBA, r image.Rectangle, c Color) {
	if img == nil {
		return
	}
	draw.Draw(img, r.Intersect(img.Rect), image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}
