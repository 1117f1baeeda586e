package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/example/colorbook/internal/export"
)

// galleryCmd lists, shows and adds gallery entries.
type galleryCmd struct {
	*root
	fs     *flag.FlagSet
	action string
	id     string
	src    imageSource
}

func (c *galleryCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseGalleryCmd(args []string, r *root) (*galleryCmd, error) {
	fs := flag.NewFlagSet("gallery", flag.ExitOnError)
	c := &galleryCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if len(args) < 1 {
		return nil, &UsageError{of: c}
	}
	c.action = args[0]
	if c.action == "save" {
		c.src.register(fs)
	}
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	switch c.action {
	case "list":
		if fs.NArg() != 0 {
			return nil, &UsageError{of: c}
		}
	case "show":
		if fs.NArg() != 1 {
			return nil, &UsageError{of: c}
		}
		c.id = fs.Arg(0)
	case "save":
		if fs.NArg() != 0 {
			return nil, &UsageError{of: c}
		}
		if err := c.src.check(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown gallery command: %s", c.action)
	}
	return c, nil
}

func (c *galleryCmd) Run() error {
	store, err := c.root.gallery()
	if err != nil {
		return err
	}
	switch c.action {
	case "list":
		entries, err := store.List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(os.Stdout, "the gallery is empty")
			return nil
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tSIZE\tCREATED")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%dx%d\t%s\n", shortID(e.ID), e.Name, e.Width, e.Height, e.Created.Local().Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	case "show":
		e, err := store.Get(c.id)
		if err != nil {
			return fmt.Errorf("gallery show %s: %w", c.id, err)
		}
		fmt.Fprintln(os.Stdout, store.Path(e))
		return nil
	}

	sess, err := c.src.open(c.root.toolDefaults())
	if err != nil {
		return err
	}
	data, err := export.EncodePNG(sess.Buffer())
	if err != nil {
		return err
	}
	e, err := store.Save(sess.ID(), sess.Name(), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %s to the gallery as %s\n", e.Name, e.ID)
	c.root.notifyGallery(e.Name)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
