package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"librarian"
)

// promptOrphanDecision asks, per orphan, whether its catalog entry shall be
// removed. Anything but a clear y/n answer re-prompts.
func promptOrphanDecision(in io.Reader, out io.Writer) librarian.DecideOrphan {
	reader := bufio.NewReader(in)
	highlight := fmt.Sprint
	if file, isFile := out.(*os.File); isFile && term.IsTerminal(int(file.Fd())) {
		highlight = color.New(color.Bold).Sprint
	}
	return func(name string) (bool, error) {
		for {
			fmt.Fprintf(out, "Remove orphan %s? (y/n): ", highlight(name))
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return false, fmt.Errorf("reading orphan decision: %w", err)
			}
			switch strings.TrimSpace(line) {
			case "y":
				return true, nil
			case "n":
				return false, nil
			}
			fmt.Fprintln(out, "Invalid response, please enter 'y' or 'n'.")
			if err != nil {
				return false, fmt.Errorf("reading orphan decision: %w", err)
			}
		}
	}
}
