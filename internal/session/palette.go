package session

import (
	"strings"

	"github.com/example/colorbook/internal/raster"
)

// Swatch is a named palette entry.
type Swatch struct {
	Name  string
	Color raster.Color
}

// Palette is the default set of soft coloring colors.
var Palette = []Swatch{
	{"Blush", raster.MustParseColor("#F4A7B9")},
	{"Coral", raster.MustParseColor("#F7B39E")},
	{"Peach", raster.MustParseColor("#FFD3B0")},
	{"Apricot", raster.MustParseColor("#FBC687")},
	{"Butter", raster.MustParseColor("#FFF1A8")},
	{"Lemon", raster.MustParseColor("#F9F47C")},
	{"Pistachio", raster.MustParseColor("#C9E4A7")},
	{"Mint", raster.MustParseColor("#A8E6CF")},
	{"Sage", raster.MustParseColor("#9DC5A3")},
	{"Seafoam", raster.MustParseColor("#8FD9C9")},
	{"Sky", raster.MustParseColor("#A7D8F0")},
	{"Powder", raster.MustParseColor("#B9D3F5")},
	{"Periwinkle", raster.MustParseColor("#B5B9F2")},
	{"Lavender", raster.MustParseColor("#CDB4DB")},
	{"Lilac", raster.MustParseColor("#E0BBE4")},
	{"Orchid", raster.MustParseColor("#D7A9D9")},
	{"Rose", raster.MustParseColor("#F2A1A8")},
	{"Cherry", raster.MustParseColor("#E27D8A")},
	{"Sand", raster.MustParseColor("#E8D5B7")},
	{"Cocoa", raster.MustParseColor("#B59A86")},
	{"Stone", raster.MustParseColor("#C8C2BC")},
	{"Slate", raster.MustParseColor("#8E9AAF")},
	{"Charcoal", raster.MustParseColor("#4A4E69")},
	{"Snow", raster.MustParseColor("#FFFFFF")},
}

// PaletteColor looks up a palette entry by name, case-insensitively, falling
// back to raster.ParseColor.
func PaletteColor(name string) (raster.Color, error) {
	for _, s := range Palette {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s.Color, nil
		}
	}
	return raster.ParseColor(name)
}

// RecentLimit is the number of recent colors kept.
const RecentLimit = 8

// RecentColors lists recently chosen colors, newest first.
type RecentColors struct {
	colors []raster.Color
}

// Add moves c to the front, dropping the oldest entry past RecentLimit.
func (r *RecentColors) Add(c raster.Color) {
	c = c.Opaque()
	for i, v := range r.colors {
		if v == c {
			copy(r.colors[1:i+1], r.colors[:i])
			r.colors[0] = c
			return
		}
	}
	r.colors = append([]raster.Color{c}, r.colors...)
	if len(r.colors) > RecentLimit {
		r.colors = r.colors[:RecentLimit]
	}
}

// List returns a copy of the recent colors.
func (r *RecentColors) List() []raster.Color {
	return append([]raster.Color(nil), r.colors...)
}

// Len returns the number of recent colors.
func (r *RecentColors) Len() int { return len(r.colors) }
