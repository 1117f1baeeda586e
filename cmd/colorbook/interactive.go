package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// interactiveCmd reads commands from standard input and runs them one by
// one, so several edits can share the loaded configuration.
type interactiveCmd struct {
	r  *root
	in io.Reader
}

func (i *interactiveCmd) Run() error {
	in := i.in
	if in == nil {
		in = os.Stdin
	}
	fmt.Fprintln(os.Stdout, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(os.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			break
		}
		args := strings.Fields(line)
		if args[0] == "interactive" {
			continue
		}
		if err := i.r.Run(args); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return scanner.Err()
}
