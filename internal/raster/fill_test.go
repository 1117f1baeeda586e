package raster

import (
	"image"
	"testing"
)

func newFilled(w, h int, c Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	FillRect(img, img.Bounds(), c)
	return img
}

func TestFillWhiteCanvas(t *testing.T) {
	img := newFilled(10, 10, RGB(255, 255, 255))
	red := MustParseColor("#FF0000")

	if n := Fill(img, 5, 5, red, 30); n != 100 {
		t.Fatalf("filled %d pixels, want 100", n)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if got := img.RGBAAt(x, y); got.R != 255 || got.G != 0 || got.B != 0 || got.A != 255 {
				t.Fatalf("pixel (%d,%d) = %+v, want opaque red", x, y, got)
			}
		}
	}

	before := Clone(img)
	if n := Fill(img, 5, 5, red, 30); n != 0 {
		t.Fatalf("second fill changed %d pixels", n)
	}
	if string(before.Pix) != string(img.Pix) {
		t.Fatal("second fill modified the buffer")
	}
}

func TestFillBlackSquare(t *testing.T) {
	img := newFilled(10, 10, RGB(255, 255, 255))
	FillRect(img, image.Rect(0, 0, 5, 5), RGB(0, 0, 0))

	if n := Fill(img, 2, 2, MustParseColor("#00FF00"), 10); n != 25 {
		t.Fatalf("filled %d pixels, want 25", n)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			got := At(img, x, y)
			if x < 5 && y < 5 {
				if got != RGB(0, 255, 0) {
					t.Fatalf("pixel (%d,%d) = %+v, want green", x, y, got)
				}
				continue
			}
			if got != RGB(255, 255, 255) {
				t.Fatalf("background pixel (%d,%d) changed to %+v", x, y, got)
			}
		}
	}
}

func TestFillNearlySameColorIsNoop(t *testing.T) {
	img := newFilled(4, 4, RGB(100, 100, 100))
	before := Clone(img)
	if n := Fill(img, 1, 1, RGB(105, 103, 100), 100); n != 0 {
		t.Fatalf("filled %d pixels, want 0", n)
	}
	if string(before.Pix) != string(img.Pix) {
		t.Fatal("buffer changed")
	}
}

func TestFillContainment(t *testing.T) {
	// Two white regions separated by a one pixel gray wall.
	img := newFilled(7, 3, RGB(255, 255, 255))
	FillRect(img, image.Rect(3, 0, 4, 3), RGB(254, 254, 254))

	if n := Fill(img, 0, 0, RGB(0, 0, 255), 0); n != 9 {
		t.Fatalf("filled %d pixels, want 9", n)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 7; x++ {
			got := At(img, x, y)
			switch {
			case x < 3:
				if got != RGB(0, 0, 255) {
					t.Fatalf("pixel (%d,%d) = %+v, want blue", x, y, got)
				}
			case x == 3:
				if got != RGB(254, 254, 254) {
					t.Fatalf("wall pixel (%d,%d) = %+v", x, y, got)
				}
			default:
				if got != RGB(255, 255, 255) {
					t.Fatalf("pixel (%d,%d) outside the region changed to %+v", x, y, got)
				}
			}
		}
	}
}

func TestFillDiagonalNotConnected(t *testing.T) {
	img := newFilled(2, 2, RGB(0, 0, 0))
	FillRect(img, image.Rect(0, 0, 1, 1), RGB(255, 255, 255))
	FillRect(img, image.Rect(1, 1, 2, 2), RGB(255, 255, 255))

	if n := Fill(img, 0, 0, RGB(255, 0, 0), 0); n != 1 {
		t.Fatalf("filled %d pixels, want 1", n)
	}
	if got := At(img, 1, 1); got != RGB(255, 255, 255) {
		t.Fatalf("diagonal pixel changed to %+v", got)
	}
}

func TestFillMonotonicInTolerance(t *testing.T) {
	gradient := func() *image.RGBA {
		img := image.NewRGBA(image.Rect(0, 0, 26, 4))
		for x := 0; x < 26; x++ {
			v := uint8(255 - x*10)
			FillRect(img, image.Rect(x, 0, x+1, 4), RGB(v, v, v))
		}
		return img
	}
	changed := func(tol float64) map[image.Point]bool {
		img := gradient()
		orig := Clone(img)
		Fill(img, 0, 0, RGB(255, 0, 0), tol)
		out := map[image.Point]bool{}
		for y := 0; y < 4; y++ {
			for x := 0; x < 26; x++ {
				if img.RGBAAt(x, y) != orig.RGBAAt(x, y) {
					out[image.Pt(x, y)] = true
				}
			}
		}
		return out
	}

	tolerances := []float64{0, 10, 20, 45, 80, 100}
	prev := changed(tolerances[0])
	for _, tol := range tolerances[1:] {
		cur := changed(tol)
		for p := range prev {
			if !cur[p] {
				t.Fatalf("pixel %v filled at lower tolerance but not at %v", p, tol)
			}
		}
		if len(cur) < len(prev) {
			t.Fatalf("tolerance %v filled %d pixels, fewer than %d", tol, len(cur), len(prev))
		}
		prev = cur
	}
	if len(prev) == 0 {
		t.Fatal("expected the widest tolerance to fill something")
	}
}

func TestFillAlphaBarrier(t *testing.T) {
	img := newFilled(3, 1, RGB(255, 255, 255))
	FillRect(img, image.Rect(1, 0, 2, 1), Color{})

	if n := Fill(img, 0, 0, RGB(0, 0, 0), MaxTolerance); n != 1 {
		t.Fatalf("filled %d pixels, want 1", n)
	}
	if got := img.RGBAAt(1, 0); got.A != 0 {
		t.Fatalf("transparent pixel recolored to %+v", got)
	}
	if got := At(img, 2, 0); got != RGB(255, 255, 255) {
		t.Fatalf("pixel beyond transparent barrier changed to %+v", got)
	}
}

func TestFillIgnoresOutOfBounds(t *testing.T) {
	img := newFilled(3, 3, RGB(255, 255, 255))
	before := Clone(img)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		if n := Fill(img, p.X, p.Y, RGB(0, 0, 0), 30); n != 0 {
			t.Fatalf("fill at %v changed %d pixels", p, n)
		}
	}
	if string(before.Pix) != string(img.Pix) {
		t.Fatal("buffer changed")
	}
	if n := Fill(nil, 0, 0, RGB(0, 0, 0), 30); n != 0 {
		t.Fatalf("nil buffer fill returned %d", n)
	}
}

func TestFillLargeRegion(t *testing.T) {
	img := newFilled(MaxWidth, MaxHeight, RGB(255, 255, 255))
	if n := Fill(img, MaxWidth/2, MaxHeight/2, RGB(10, 20, 30), 0); n != MaxWidth*MaxHeight {
		t.Fatalf("filled %d pixels, want %d", n, MaxWidth*MaxHeight)
	}
}
