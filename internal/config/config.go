package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/colorbook/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Export  bool
	Share   bool
	Gallery bool
	Error   bool
}

// Tools holds the initial tool settings. Zero values mean "use the
// built-in default".
type Tools struct {
	Tool      string
	Brush     int
	Tolerance int
	Color     string
}

// Config holds the application configuration.
type Config struct {
	Theme      string
	AppName    string
	ExportDir  string
	GalleryDir string
	Tools      Tools
	Notify     Notify
	Themes     map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Notify: Notify{
			Error: true,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.AppName != "" {
		fmt.Fprintf(&sb, "app_name = %s\n", c.AppName)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	if c.GalleryDir != "" {
		fmt.Fprintf(&sb, "gallery_dir = %s\n", c.GalleryDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[tools]\n")
	if c.Tools.Tool != "" {
		fmt.Fprintf(&sb, "tool = %s\n", c.Tools.Tool)
	}
	if c.Tools.Brush != 0 {
		fmt.Fprintf(&sb, "brush = %d\n", c.Tools.Brush)
	}
	if c.Tools.Tolerance != 0 {
		fmt.Fprintf(&sb, "tolerance = %d\n", c.Tools.Tolerance)
	}
	if c.Tools.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Tools.Color)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "share = %v\n", c.Notify.Share)
	fmt.Fprintf(&sb, "gallery = %v\n", c.Notify.Gallery)
	fmt.Fprintf(&sb, "error = %v\n", c.Notify.Error)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		theme.Fields(t, func(field string, col color.RGBA) {
			fmt.Fprintf(&sb, "%s: %s\n", field, theme.Hex(col))
		})
		sb.WriteString("\n")
	}

	return sb.String()
}
