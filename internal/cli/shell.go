package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/log"
)

// Shell runs input lines against a dispatcher on behalf of one source and
// records every attempt in the history store.
type Shell struct {
	dispatcher *dispatchers.Dispatcher[domain.Source]
	history    domain.HistoryStore
	logger     domain.Logger
	now        func() time.Time

	mu      sync.RWMutex
	source  domain.Source
	timeout time.Duration

	runMu sync.Mutex // one execution at a time
	outMu sync.Mutex
	out   io.Writer
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithHistory records executions in store.
func WithHistory(store domain.HistoryStore) ShellOption {
	return func(s *Shell) {
		s.history = store
	}
}

func WithLogger(logger domain.Logger) ShellOption {
	return func(s *Shell) {
		s.logger = logger
	}
}

// WithSuggestionTimeout bounds how long Complete waits for providers.
func WithSuggestionTimeout(d time.Duration) ShellOption {
	return func(s *Shell) {
		s.timeout = d
	}
}

// WithOutput sets where commands print. Defaults to stdout.
func WithOutput(w io.Writer) ShellOption {
	return func(s *Shell) {
		s.out = w
	}
}

// NewShell wraps d and installs a result consumer on it.
func NewShell(d *dispatchers.Dispatcher[domain.Source], source domain.Source, opts ...ShellOption) *Shell {
	s := &Shell{
		dispatcher: d,
		source:     source,
		logger:     log.NopLogger{},
		now:        time.Now,
		out:        os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	d.SetConsumer(s.consume)
	return s
}

func (s *Shell) Dispatcher() *dispatchers.Dispatcher[domain.Source] {
	return s.dispatcher
}

func (s *Shell) Source() domain.Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// SetSource changes who later input runs as.
func (s *Shell) SetSource(src domain.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = src
}

// SetSuggestionTimeout changes the completion deadline.
func (s *Shell) SetSuggestionTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeout = d
}

// Printf and Println write to the current output. Commands print through
// them so RunTo can capture their output.
func (s *Shell) Printf(format string, a ...any) (int, error) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	return fmt.Fprintf(s.out, format, a...)
}

func (s *Shell) Println(a ...any) (int, error) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	return fmt.Fprintln(s.out, a...)
}

// Run parses and executes one line. Blank input does nothing.
func (s *Shell) Run(input string) (int, error) {
	return s.RunTo(nil, input)
}

// RunTo is Run with command output sent to w. A nil w keeps the shell's
// output.
func (s *Shell) RunTo(w io.Writer, input string) (int, error) {
	if strings.TrimSpace(input) == "" {
		return 0, nil
	}
	// The dispatcher rejects any leftover input; blanks a line editor
	// leaves after the last token are not part of the command.
	input = strings.TrimRight(input, " ")

	s.runMu.Lock()
	defer s.runMu.Unlock()

	if w != nil {
		s.outMu.Lock()
		prev := s.out
		s.out = w
		s.outMu.Unlock()
		defer func() {
			s.outMu.Lock()
			s.out = prev
			s.outMu.Unlock()
		}()
	}

	src := s.Source()
	parse := s.dispatcher.Parse(input, src)
	if err := parse.Err(); err != nil {
		s.logger.Debug("shell: %q rejected: %v", input, err)
		s.record(src, input, false, 0)
		return 0, err
	}

	result, err := s.dispatcher.Execute(parse)
	if err != nil {
		s.logger.Info("shell: %q failed for %s: %v", input, src, err)
	}
	return result, err
}

// Complete returns suggestions for input at cursor. Providers still
// running when the suggestion timeout passes contribute nothing.
func (s *Shell) Complete(ctx context.Context, input string, cursor int) (*dispatchers.Suggestions, error) {
	s.mu.RLock()
	timeout := s.timeout
	src := s.source
	s.mu.RUnlock()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.dispatcher.CompletionSuggestionsFor(ctx, input, src, cursor)
}

func (s *Shell) consume(ctx *dispatchers.CommandContext[domain.Source], success bool, result int) {
	s.record(ctx.Source(), ctx.Input(), success, result)
}

func (s *Shell) record(src domain.Source, input string, success bool, result int) {
	if s.history == nil {
		return
	}
	_, err := s.history.Record(domain.HistoryEntry{
		SourceID: src.ID,
		Source:   src.Name,
		Input:    input,
		Success:  success,
		Result:   result,
		RanAt:    s.now(),
	})
	if err != nil {
		s.logger.Warn("shell: could not record %q: %v", input, err)
	}
}
