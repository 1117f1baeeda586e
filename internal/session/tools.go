package session

import (
	"fmt"

	"github.com/example/colorbook/internal/raster"
)

// Brush and tolerance ranges.
const (
	MinBrush     = 1
	MaxBrush     = 50
	MinTolerance = 0
	MaxTolerance = raster.MaxTolerance

	DefaultBrush     = 5
	DefaultTolerance = 30
)

// ToolState is the active tool and its settings.
type ToolState struct {
	Tool      raster.Tool
	Brush     int
	Tolerance int
	Color     raster.Color
}

// DefaultTools returns the settings a new session starts with.
func DefaultTools() ToolState {
	return ToolState{
		Tool:      raster.ToolFill,
		Brush:     DefaultBrush,
		Tolerance: DefaultTolerance,
		Color:     Palette[0].Color,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Normalize clamps every field into range and fills in missing values.
func (t ToolState) Normalize() ToolState {
	if t.Tool == "" {
		t.Tool = raster.ToolFill
	}
	t.Brush = clamp(t.Brush, MinBrush, MaxBrush)
	t.Tolerance = clamp(t.Tolerance, MinTolerance, MaxTolerance)
	t.Color = t.Color.Opaque()
	return t
}

func (t ToolState) String() string {
	return fmt.Sprintf("tool=%s brush=%d tolerance=%d color=%s", t.Tool, t.Brush, t.Tolerance, t.Color.Hex())
}
