package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn under the canvas.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
	Color   color.RGBA
}

// DefaultShadowOptions returns a soft shadow that reads on light and dark
// backgrounds.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  10,
		Offset:  image.Pt(4, 6),
		Opacity: 0.35,
		Color:   color.RGBA{A: 255},
	}
}

// ShadowMask returns the blurred coverage of an opaque w×h rectangle. The
// mask is padded by radius on every side, so the rectangle's top-left corner
// sits at (radius, radius).
func ShadowMask(w, h, radius int) *image.Gray {
	if w <= 0 || h <= 0 {
		return image.NewGray(image.Rectangle{})
	}
	if radius < 0 {
		radius = 0
	}
	mask := image.NewGray(image.Rect(0, 0, w+2*radius, h+2*radius))
	draw.Draw(mask, image.Rect(radius, radius, radius+w, radius+h), image.White, image.Point{}, draw.Src)
	return blurGray(mask, radius)
}

// ShadowCache keeps the last mask so repeated frames at the same zoom do not
// blur again.
type ShadowCache struct {
	size   image.Point
	radius int
	mask   *image.Gray
}

// Mask returns the shadow mask for a rectangle of the given size.
func (c *ShadowCache) Mask(size image.Point, radius int) *image.Gray {
	if c == nil {
		return ShadowMask(size.X, size.Y, radius)
	}
	if c.mask == nil || c.size != size || c.radius != radius {
		c.mask = ShadowMask(size.X, size.Y, radius)
		c.size, c.radius = size, radius
	}
	return c.mask
}

// DrawShadow paints the drop shadow of rect onto dst.
func DrawShadow(dst draw.Image, rect image.Rectangle, opts ShadowOptions, cache *ShadowCache) {
	if rect.Empty() || opts.Opacity <= 0 {
		return
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}
	mask := cache.Mask(rect.Size(), radius)
	at := rect.Min.Add(opts.Offset).Sub(image.Pt(radius, radius))
	target := mask.Bounds().Add(at)
	shade := opts.Color
	shade.A = uint8(float64(shade.A)*opacity + 0.5)
	src := image.NewUniform(color.NRGBA{R: shade.R, G: shade.G, B: shade.B, A: shade.A})
	draw.DrawMask(dst, target, src, image.Point{}, mask, image.Point{}, draw.Over)
}

// blurGray is a separable box blur using running sums.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	boxPass(w, h, radius, func(y, x int) int { return int(src.Pix[y*src.Stride+x]) },
		func(y, x, v int) { tmp.Pix[y*tmp.Stride+x] = uint8(v) })
	boxPass(h, w, radius, func(x, y int) int { return int(tmp.Pix[y*tmp.Stride+x]) },
		func(x, y, v int) { dst.Pix[y*dst.Stride+x] = uint8(v) })
	return dst
}

// boxPass averages each line of n samples over a window of ±radius. Lines
// are indexed by the first argument of get and set.
func boxPass(n, lines, radius int, get func(line, i int) int, set func(line, i, v int)) {
	prefix := make([]int, n+1)
	for line := 0; line < lines; line++ {
		for i := 0; i < n; i++ {
			prefix[i+1] = prefix[i] + get(line, i)
		}
		for i := 0; i < n; i++ {
			lo, hi := i-radius, i+radius
			if lo < 0 {
				lo = 0
			}
			if hi >= n {
				hi = n - 1
			}
			set(line, i, (prefix[hi+1]-prefix[lo])/(hi-lo+1))
		}
	}
}
