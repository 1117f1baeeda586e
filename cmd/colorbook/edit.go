package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/example/colorbook/internal/raster"
	"github.com/example/colorbook/internal/session"
)

// toolFlags binds the tool settings shared by the editing commands.
type toolFlags struct {
	tool      string
	brush     int
	tolerance int
	color     string
}

func (t *toolFlags) register(fs *flag.FlagSet, base session.ToolState, tool, brush, tolerance bool) {
	if tool {
		fs.StringVar(&t.tool, "tool", string(base.Tool), "tool to use (fill, pen, marker, pencil)")
	}
	if brush {
		fs.IntVar(&t.brush, "brush", base.Brush, fmt.Sprintf("brush size %d-%d", session.MinBrush, session.MaxBrush))
	}
	if tolerance {
		fs.IntVar(&t.tolerance, "tolerance", base.Tolerance, fmt.Sprintf("fill tolerance %d-%d", session.MinTolerance, session.MaxTolerance))
	}
	fs.StringVar(&t.color, "color", base.Color.Hex(), "palette name, SVG color name or hex value")
	t.tool = string(base.Tool)
	t.brush = base.Brush
	t.tolerance = base.Tolerance
	t.color = base.Color.Hex()
}

func (t *toolFlags) state() (session.ToolState, error) {
	tool, err := raster.ParseTool(t.tool)
	if err != nil {
		return session.ToolState{}, err
	}
	c, err := session.PaletteColor(t.color)
	if err != nil {
		return session.ToolState{}, err
	}
	return session.ToolState{Tool: tool, Brush: t.brush, Tolerance: t.tolerance, Color: c}.Normalize(), nil
}

// openCmd shows the interactive editor.
type openCmd struct {
	*root
	fs  *flag.FlagSet
	src imageSource
	tf  toolFlags
}

func (c *openCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	c := &openCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.src.register(fs)
	c.tf.register(fs, r.toolDefaults(), true, true, true)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.src.file == "" && fs.NArg() == 1 {
		c.src.file = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if err := c.src.check(); err != nil {
		return nil, err
	}
	return c, nil
}

// fillCmd flood fills one or more points without opening a window.
type fillCmd struct {
	*root
	fs     *flag.FlagSet
	src    imageSource
	tf     toolFlags
	output string
	seeds  []image.Point
}

func (c *fillCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseFillCmd(args []string, r *root) (*fillCmd, error) {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	c := &fillCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.src.register(fs)
	c.tf.register(fs, r.toolDefaults(), false, false, true)
	fs.StringVar(&c.output, "output", "", "output PNG path (defaults to <input>-colored.png)")

	flagArgs, positionals, err := splitArgs(args, fs)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) == 0 {
		return nil, &UsageError{of: c}
	}
	if c.seeds, err = points(positionals, "fill"); err != nil {
		return nil, err
	}
	if err := c.src.check(); err != nil {
		return nil, err
	}
	if c.output == "" {
		if c.output = c.src.defaultOutput(); c.output == "" {
			return nil, fmt.Errorf("output file is required when reading from the clipboard")
		}
	}
	return c, nil
}

func (c *fillCmd) Run() error {
	tools, err := c.tf.state()
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	tools.Tool = raster.ToolFill
	sess, err := c.src.open(tools)
	if err != nil {
		return err
	}
	size := sess.Size()
	for _, p := range c.seeds {
		if !p.In(image.Rect(0, 0, size.X, size.Y)) {
			fmt.Fprintf(os.Stderr, "fill: %d,%d is outside the %dx%d canvas\n", p.X, p.Y, size.X, size.Y)
			continue
		}
		if !sess.Fill(p) {
			fmt.Fprintf(os.Stderr, "fill: nothing changed at %d,%d\n", p.X, p.Y)
		}
	}
	return c.save(sess)
}

func (c *fillCmd) save(sess *session.Session) error {
	saved, err := writePNG(c.output, sess.Buffer())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	c.root.notifyExport(saved)
	return nil
}

// strokeCmd draws one freehand stroke through the given points.
type strokeCmd struct {
	*root
	fs     *flag.FlagSet
	src    imageSource
	tf     toolFlags
	output string
	path   []image.Point
}

func (c *strokeCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseStrokeCmd(args []string, r *root) (*strokeCmd, error) {
	fs := flag.NewFlagSet("stroke", flag.ExitOnError)
	c := &strokeCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.src.register(fs)
	base := r.toolDefaults()
	if !base.Tool.Draws() {
		base.Tool = raster.ToolPen
	}
	c.tf.register(fs, base, true, true, false)
	fs.StringVar(&c.output, "output", "", "output PNG path (defaults to <input>-colored.png)")

	flagArgs, positionals, err := splitArgs(args, fs)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) == 0 {
		return nil, &UsageError{of: c}
	}
	if c.path, err = points(positionals, "stroke"); err != nil {
		return nil, err
	}
	if err := c.src.check(); err != nil {
		return nil, err
	}
	if c.output == "" {
		if c.output = c.src.defaultOutput(); c.output == "" {
			return nil, fmt.Errorf("output file is required when reading from the clipboard")
		}
	}
	return c, nil
}

func (c *strokeCmd) Run() error {
	tools, err := c.tf.state()
	if err != nil {
		return fmt.Errorf("stroke: %w", err)
	}
	if !tools.Tool.Draws() {
		return fmt.Errorf("stroke: %s is not a drawing tool", tools.Tool)
	}
	sess, err := c.src.open(tools)
	if err != nil {
		return err
	}
	sess.BeginStroke(c.path[0])
	for _, p := range c.path[1:] {
		sess.ExtendStroke(p)
	}
	sess.EndStroke()

	saved, err := writePNG(c.output, sess.Buffer())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	c.root.notifyExport(saved)
	return nil
}
