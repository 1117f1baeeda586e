// Package render paints the editor viewport: the background, the canvas
// drop shadow and the zoomed canvas itself.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Canvas is the artwork and where it appears on screen.
type Canvas struct {
	Image *image.RGBA
	// Rect is the on-screen destination; it may extend past the viewport.
	Rect image.Rectangle
	// Paper shows through transparent artwork.
	Paper  color.RGBA
	Border color.RGBA
}

// Scene is everything drawn inside the viewport.
type Scene struct {
	Background color.RGBA
	Canvas     Canvas
	Shadow     ShadowOptions
}

// Compose paints s into the viewport area of dst. Nothing outside viewport
// is touched.
func Compose(dst *image.RGBA, viewport image.Rectangle, s Scene, cache *ShadowCache) {
	if dst == nil {
		return
	}
	viewport = viewport.Intersect(dst.Bounds())
	if viewport.Empty() {
		return
	}
	vp := dst.SubImage(viewport).(*image.RGBA)
	draw.Draw(vp, viewport, image.NewUniform(s.Background), image.Point{}, draw.Src)

	c := s.Canvas
	if c.Image == nil || c.Rect.Empty() {
		return
	}
	DrawShadow(vp, c.Rect, s.Shadow, cache)
	if c.Border.A > 0 {
		draw.Draw(vp, c.Rect.Inset(-1), image.NewUniform(c.Border), image.Point{}, draw.Over)
	}
	draw.Draw(vp, c.Rect, image.NewUniform(c.Paper), image.Point{}, draw.Src)
	scaler(c.Image.Bounds().Size(), c.Rect.Size()).Scale(vp, c.Rect, c.Image, c.Image.Bounds(), xdraw.Over, nil)
}

// scaler keeps pixels crisp when zoomed in and smooths when shrinking.
func scaler(src, dst image.Point) xdraw.Scaler {
	if dst.X < src.X || dst.Y < src.Y {
		return xdraw.ApproxBiLinear
	}
	return xdraw.NearestNeighbor
}
