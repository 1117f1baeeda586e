package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/example/colorbook/internal/config"
	"github.com/example/colorbook/internal/export"
	"github.com/example/colorbook/internal/gallery"
	"github.com/example/colorbook/internal/notify"
	"github.com/example/colorbook/internal/raster"
	"github.com/example/colorbook/internal/session"
	"github.com/example/colorbook/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	exportAlerts  bool
	shareAlerts   bool
	galleryAlerts bool
	errorAlerts   bool
	themeName     string
	exportDir     string
	galleryDir    string
	activeTheme   *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	prefs := notify.LoadPreferences()
	if cfg.AppName != "" {
		prefs.AppName = cfg.AppName
	}

	r := &root{
		fs:       flag.NewFlagSet("colorbook", flag.ExitOnError),
		program:  "colorbook",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.shareAlerts, "notify-share", cfg.Notify.Share, "show a desktop notification after sharing to the clipboard")
	r.fs.BoolVar(&r.galleryAlerts, "notify-gallery", cfg.Notify.Gallery, "show a desktop notification after saving to the gallery")
	r.fs.BoolVar(&r.errorAlerts, "notify-error", cfg.Notify.Error, "show a desktop notification when an export fails")
	r.fs.StringVar(&r.exportDir, "export-dir", "", "directory exported images are written to")
	r.fs.StringVar(&r.galleryDir, "gallery-dir", "", "directory holding the gallery")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.BuiltinNames(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventShare, r.shareAlerts)
		r.notifier.Enable(notify.EventGallery, r.galleryAlerts)
		r.notifier.Enable(notify.EventError, r.errorAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "fill":
		cmd, err = parseFillCmd(subArgs, r)
	case "stroke":
		cmd, err = parseStrokeCmd(subArgs, r)
	case "export":
		cmd, err = parseExportCmd(subArgs, r)
	case "gallery":
		cmd, err = parseGalleryCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "interactive":
		cmd = &interactiveCmd{r: r}
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("COLORBOOK_THEME")
	}
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[name]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// toolDefaults returns the starting tool settings from the config file.
func (r *root) toolDefaults() session.ToolState {
	ts := session.DefaultTools()
	if r == nil || r.config == nil {
		return ts
	}
	cfg := r.config.Tools
	if cfg.Tool != "" {
		if t, err := raster.ParseTool(cfg.Tool); err == nil {
			ts.Tool = t
		} else {
			log.Printf("config: %v", err)
		}
	}
	if cfg.Brush > 0 {
		ts.Brush = cfg.Brush
	}
	if cfg.Tolerance > 0 {
		ts.Tolerance = cfg.Tolerance
	}
	if cfg.Color != "" {
		if c, err := session.PaletteColor(cfg.Color); err == nil {
			ts.Color = c
		} else {
			log.Printf("config: %v", err)
		}
	}
	return ts.Normalize()
}

func (r *root) appName() string {
	if r != nil && r.config != nil && r.config.AppName != "" {
		return r.config.AppName
	}
	return export.DefaultApp
}

func (r *root) exporter() *export.Exporter {
	e := &export.Exporter{App: r.appName(), Share: export.ClipboardShare}
	switch {
	case r == nil:
	case r.exportDir != "":
		e.Dir = r.exportDir
	case r.config != nil:
		e.Dir = r.config.ExportDir
	}
	return e
}

func (r *root) gallery() (*gallery.Store, error) {
	dir := gallery.DefaultDir()
	switch {
	case r == nil:
	case r.galleryDir != "":
		dir = r.galleryDir
	case r.config != nil && r.config.GalleryDir != "":
		dir = r.config.GalleryDir
	}
	return gallery.Open(dir)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			r.notifyError(err)
			os.Exit(1)
		}
	}
}

func (r *root) notifyExport(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path)
}

func (r *root) notifyShare(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Share(detail, img)
}

func (r *root) notifyGallery(name string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Gallery(name)
}

func (r *root) notifyError(err error) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Error(err)
}
