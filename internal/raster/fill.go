package raster

import "image"

// SameColorThreshold is the RGB distance below which a fill is treated as
// repainting a region with its own color and skipped.
const SameColorThreshold = 10

// MaxTolerance is the largest meaningful fill tolerance.
const MaxTolerance = 100

// Fill recolors the 4-connected region around (x, y) whose pixels are within
// tolerance (Euclidean RGB distance) of the seed color and are not fully
// transparent. Recolored pixels become c with alpha 255. It returns the
// number of pixels changed.
//
// Seeds outside the buffer are ignored. When c is closer than
// SameColorThreshold to the seed color nothing is changed.
func Fill(img *image.RGBA, x, y int, c Color, tolerance float64) int {
	if img == nil || !image.Pt(x, y).In(img.Rect) {
		return 0
	}
	if tolerance < 0 {
		tolerance = 0
	}
	target := At(img, x, y).Packed()
	fill := c.Packed()
	if distanceSq(target, fill) < SameColorThreshold*SameColorThreshold {
		return 0
	}
	tolSq := tolerance * tolerance

	b := img.Rect
	w, h := b.Dx(), b.Dy()
	visited := make([]bool, w*h)
	matches := func(idx int) bool {
		px := pixelAt(img.Pix, img.PixOffset(b.Min.X+idx%w, b.Min.Y+idx/w))
		if px.A == 0 {
			return false
		}
		return float64(distanceSq(px.Packed(), target)) <= tolSq
	}

	stack := make([]int, 0, 1024)
	stack = append(stack, (y-b.Min.Y)*w+(x-b.Min.X))
	filled := 0
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[idx] || !matches(idx) {
			continue
		}
		visited[idx] = true
		off := img.PixOffset(b.Min.X+idx%w, b.Min.Y+idx/w)
		p := img.Pix[off : off+4 : off+4]
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 255
		filled++

		px, py := idx%w, idx/w
		if px+1 < w && !visited[idx+1] {
			stack = append(stack, idx+1)
		}
		if px > 0 && !visited[idx-1] {
			stack = append(stack, idx-1)
		}
		if py+1 < h && !visited[idx+w] {
			stack = append(stack, idx+w)
		}
		if py > 0 && !visited[idx-w] {
			stack = append(stack, idx-w)
		}
	}
	return filled
}
