package main

import (
	"flag"
	"fmt"
	"os"
)

// exportCmd writes artwork as a PNG or PDF, or shares it.
type exportCmd struct {
	*root
	fs    *flag.FlagSet
	src   imageSource
	dir   string
	share bool
	pdf   bool
}

func (c *exportCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	c := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	c.src.register(fs)
	fs.StringVar(&c.dir, "dir", "", "directory to write to (overrides -export-dir)")
	fs.BoolVar(&c.share, "share", false, "copy the image to the clipboard, saving a file if that fails")
	fs.BoolVar(&c.pdf, "pdf", false, "write a printable A4 PDF page instead of a PNG")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.share && c.pdf {
		return nil, fmt.Errorf("-share and -pdf cannot be used together")
	}
	if err := c.src.check(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *exportCmd) Run() error {
	sess, err := c.src.open(c.root.toolDefaults())
	if err != nil {
		return err
	}
	e := c.root.exporter()
	if c.dir != "" {
		e.Dir = c.dir
	}
	img := sess.Buffer()

	switch {
	case c.pdf:
		path, err := e.PDF(img, sess.ID(), sess.Name())
		if err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", path)
		c.root.notifyExport(path)
	case c.share:
		res, err := e.ShareImage(img, sess.ID())
		if err != nil {
			return fmt.Errorf("share: %w", err)
		}
		switch {
		case res.Shared:
			fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", sess.Name())
			c.root.notifyShare(sess.Name(), img)
		case res.Canceled:
			fmt.Fprintln(os.Stderr, "share canceled")
		default:
			fmt.Fprintf(os.Stderr, "saved %s\n", res.Path)
			c.root.notifyExport(res.Path)
		}
	default:
		path, err := e.Download(img, sess.ID())
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", path)
		c.root.notifyExport(path)
	}
	return nil
}
