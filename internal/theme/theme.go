// Package theme holds the colors of the editor window chrome.
package theme

import (
	"image/color"
	"sort"
	"strings"
)

// Theme defines the color palette for the application UI.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // Viewport around the canvas
	Foreground color.RGBA // Status text

	// Toolbar
	ToolbarBackground color.RGBA
	ButtonBackground  color.RGBA
	ButtonActive      color.RGBA // Selected tool
	ButtonText        color.RGBA
	ButtonBorder      color.RGBA

	// Palette
	SwatchBorder  color.RGBA
	SwatchCurrent color.RGBA // Ring around the selected color

	// Canvas
	CanvasBorder color.RGBA
	Shadow       color.RGBA
}

// Default returns the light theme.
func Default() *Theme {
	return &Theme{
		Name:              "default",
		Background:        color.RGBA{238, 234, 245, 255},
		Foreground:        color.RGBA{60, 56, 80, 255},
		ToolbarBackground: color.RGBA{250, 248, 252, 255},
		ButtonBackground:  color.RGBA{232, 226, 242, 255},
		ButtonActive:      color.RGBA{196, 181, 230, 255},
		ButtonText:        color.RGBA{60, 56, 80, 255},
		ButtonBorder:      color.RGBA{170, 160, 196, 255},
		SwatchBorder:      color.RGBA{140, 134, 160, 255},
		SwatchCurrent:     color.RGBA{60, 56, 80, 255},
		CanvasBorder:      color.RGBA{200, 194, 214, 255},
		Shadow:            color.RGBA{0, 0, 0, 255},
	}
}

// Dark returns the dark theme.
func Dark() *Theme {
	return &Theme{
		Name:              "dark",
		Background:        color.RGBA{34, 32, 44, 255},
		Foreground:        color.RGBA{226, 222, 240, 255},
		ToolbarBackground: color.RGBA{46, 43, 58, 255},
		ButtonBackground:  color.RGBA{62, 58, 78, 255},
		ButtonActive:      color.RGBA{112, 96, 160, 255},
		ButtonText:        color.RGBA{226, 222, 240, 255},
		ButtonBorder:      color.RGBA{90, 84, 112, 255},
		SwatchBorder:      color.RGBA{20, 18, 26, 255},
		SwatchCurrent:     color.RGBA{240, 236, 255, 255},
		CanvasBorder:      color.RGBA{20, 18, 26, 255},
		Shadow:            color.RGBA{0, 0, 0, 255},
	}
}

var builtins = map[string]func() *Theme{
	"default": Default,
	"light":   Default,
	"dark":    Dark,
}

// Builtin returns a copy of a built-in theme.
func Builtin(name string) (*Theme, bool) {
	fn, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// BuiltinNames lists the built-in theme names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of t.
func (t *Theme) Clone() *Theme {
	c := *t
	return &c
}
