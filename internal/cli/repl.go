package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/peterh/liner"

	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/ui/style"
)

const replHistorySize = 500

var exitWords = []string{"exit", "quit"}

// REPL is the line-editing front end. Tab completes through the shell and
// up/down walk previous input loaded from the history store.
type REPL struct {
	shell   *Shell
	history domain.HistoryStore
	prompt  func() string
	errOut  io.Writer
}

func NewREPL(shell *Shell, history domain.HistoryStore, prompt func() string, errOut io.Writer) *REPL {
	return &REPL{
		shell:   shell,
		history: history,
		prompt:  prompt,
		errOut:  errOut,
	}
}

// Run reads lines until EOF, Ctrl+C, an exit word, or ctx ends.
func (r *REPL) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetWordCompleter(func(input string, pos int) (string, []string, string) {
		return r.complete(ctx, input, pos)
	})
	r.loadHistory(line)

	for ctx.Err() == nil {
		input, err := line.Prompt(r.prompt())
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if slices.Contains(exitWords, trimmed) {
			return nil
		}
		line.AppendHistory(input)

		if _, err := r.shell.Run(input); err != nil {
			_, _ = fmt.Fprintln(r.errOut, style.RenderError(err))
		}
	}
	return nil
}

// complete adapts shell suggestions to liner's head/completions/tail split.
// pos is liner's rune cursor.
func (r *REPL) complete(ctx context.Context, input string, pos int) (string, []string, string) {
	at := byteOffset(input, pos)
	s, err := r.shell.Complete(ctx, input, at)
	if err != nil || s.IsEmpty() {
		return input[:at], nil, input[at:]
	}
	start := min(s.Range.Start, at)
	return input[:start], s.Texts(), input[at:]
}

// loadHistory seeds liner with stored inputs, oldest first.
func (r *REPL) loadHistory(line *liner.State) {
	if r.history == nil {
		return
	}
	entries, err := r.history.List(domain.HistoryFilter{Limit: replHistorySize})
	if err != nil {
		return
	}
	for _, e := range slices.Backward(entries) {
		line.AppendHistory(e.Input)
	}
}
