package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/colorbook/internal/session"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	current := c.root.toolDefaults().Color
	fmt.Fprintln(os.Stdout, "palette colors (* marks the starting color):")
	for idx, entry := range session.Palette {
		marker := " "
		if entry.Color == current {
			marker = "*"
		}
		col := entry.Color
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", col.R, col.G, col.B)
		fmt.Fprintf(os.Stdout, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, col.Hex(), block)
	}
	return nil
}
