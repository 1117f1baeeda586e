package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/colorbook/internal/clipboard"
	"github.com/example/colorbook/internal/export"
	"github.com/example/colorbook/internal/session"
)

var readClipboardFn = clipboard.ReadImage

// imageSource is where a command reads its artwork from.
type imageSource struct {
	file          string
	fromClipboard bool
	sessionID     string
	name          string
}

func (s *imageSource) register(fs *flag.FlagSet) {
	fs.StringVar(&s.file, "file", "", "input image file (PNG, JPEG or GIF)")
	fs.BoolVar(&s.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&s.fromClipboard, "from-clip", false, "read the input image from the clipboard (alias)")
	fs.StringVar(&s.sessionID, "session", "", "session id used in exported file names (default random)")
	fs.StringVar(&s.name, "name", "", "display name of the artwork")
}

func (s *imageSource) check() error {
	if s.fromClipboard && s.file != "" {
		return errors.New("-file and -from-clipboard cannot be used together")
	}
	if !s.fromClipboard && s.file == "" {
		return errors.New("an input file or -from-clipboard is required")
	}
	return nil
}

func (s *imageSource) displayName() string {
	if s.name != "" {
		return s.name
	}
	if s.file != "" {
		return strings.TrimSuffix(filepath.Base(s.file), filepath.Ext(s.file))
	}
	return "clipboard"
}

// open creates a session holding the source image.
func (s *imageSource) open(tools session.ToolState) (*session.Session, error) {
	opts := []session.Option{session.WithName(s.displayName()), session.WithTools(tools)}
	if s.sessionID != "" {
		opts = append(opts, session.WithID(s.sessionID))
	}
	sess := session.New(opts...)
	if s.fromClipboard {
		img, err := readClipboardFn()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		if err := sess.Load(img); err != nil {
			return nil, fmt.Errorf("load clipboard image: %w", err)
		}
		return sess, nil
	}
	if err := sess.LoadFile(s.file); err != nil {
		return nil, fmt.Errorf("open %s: %w", s.file, err)
	}
	return sess, nil
}

// defaultOutput names the result of an edit next to its input.
func (s *imageSource) defaultOutput() string {
	if s.file == "" {
		return ""
	}
	ext := filepath.Ext(s.file)
	return strings.TrimSuffix(s.file, ext) + "-colored.png"
}

func writePNG(path string, img image.Image) (string, error) {
	data, err := export.EncodePNG(img)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs, nil
	}
	return path, nil
}

func expectInts(args []string, what string) ([]int, error) {
	vals := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid coordinate %q", what, a)
		}
		vals[i] = v
	}
	return vals, nil
}

// points pairs up integer arguments into coordinates.
func points(args []string, what string) ([]image.Point, error) {
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, fmt.Errorf("%s requires x y coordinate pairs", what)
	}
	vals, err := expectInts(args, what)
	if err != nil {
		return nil, err
	}
	pts := make([]image.Point, 0, len(vals)/2)
	for i := 0; i < len(vals); i += 2 {
		pts = append(pts, image.Pt(vals[i], vals[i+1]))
	}
	return pts, nil
}

// splitArgs separates flags from positionals so flags may follow the
// coordinates. Negative numbers are positionals.
func splitArgs(args []string, fs *flag.FlagSet) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		if _, err := strconv.Atoi(arg); err == nil {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		f := fs.Lookup(base)
		if f == nil {
			return nil, nil, fmt.Errorf("flag provided but not defined: %s", arg)
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
