// Package ui holds terminal output helpers shared by the front ends.
//
// The pager runs whatever command the user configured ("pager" key or
// $PAGER). This matches git and man and needs local access to abuse.
package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

const defaultPager = "less -FRSX"

// Writer prints to an output stream and pages long content on terminals.
type Writer struct {
	out           io.Writer
	pagerDisabled bool
	configGetter  func(string) (string, bool)
	envGetter     func(string) string
	isTerminal    func(io.Writer) bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled disables the pager.
func WithPagerDisabled() WriterOption {
	return func(w *Writer) {
		w.pagerDisabled = true
	}
}

// WithConfigGetter sets the config getter function.
func WithConfigGetter(fn func(string) (string, bool)) WriterOption {
	return func(w *Writer) {
		w.configGetter = fn
	}
}

// WithEnvGetter sets the environment variable getter function.
func WithEnvGetter(fn func(string) string) WriterOption {
	return func(w *Writer) {
		w.envGetter = fn
	}
}

// NewWriter creates a Writer for out.
func NewWriter(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:        out,
		envGetter:  os.Getenv,
		isTerminal: IsTerminal,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// IsTerminal reports whether out is a terminal.
func IsTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	return w.out.Write(p)
}

// Printf formats and prints to the output.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(w.out, format, args...)
}

// Println prints a line to the output.
func (w *Writer) Println(args ...any) (int, error) {
	return fmt.Fprintln(w.out, args...)
}

// PagerCommand returns the pager to use, or "" to print directly.
//
// Precedence:
//  1. pager disabled or output not a terminal → direct output
//  2. "pager" config value
//  3. $PAGER
//  4. less -FRSX
//
// "cat" anywhere in the chain means direct output.
func (w *Writer) PagerCommand() string {
	if w.pagerDisabled || !w.isTerminal(w.out) {
		return ""
	}

	cmd := ""
	if w.configGetter != nil {
		cmd, _ = w.configGetter("pager")
	}
	if cmd == "" {
		cmd = w.envGetter("PAGER")
	}
	if cmd == "" {
		cmd = defaultPager
	}
	if cmd == "cat" {
		return ""
	}
	return cmd
}

// Pager displays content through a pager if appropriate.
func (w *Writer) Pager(content string) {
	cmdline := w.PagerCommand()
	parts := strings.Fields(cmdline)
	if len(parts) == 0 {
		_, _ = fmt.Fprint(w.out, content)
		return
	}

	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = w.out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		_, _ = fmt.Fprint(w.out, content)
	}
}
