package actions

import (
	"context"
	"errors"
	"strings"

	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/format"
	"github.com/footprint-tools/brig/internal/ui/style"
)

const (
	defaultHistoryLimit   = 20
	historySuggestLimit   = 10
	sayCommandPrefix      = "say "
	historySuggestionsKey = "history_suggestions"
)

// ErrHistoryDisabled is returned by history commands when no store is open.
var ErrHistoryDisabled = errors.New("history is not available")

// HistoryList prints recent executions, newest first. An optional "limit"
// argument overrides the default count. The result is the number of
// entries printed.
func HistoryList(deps Deps) Command {
	return func(ctx *Context) (int, error) {
		if deps.History == nil {
			return 0, ErrHistoryDisabled
		}

		limit := defaultHistoryLimit
		if _, ok := ctx.RawArgument("limit"); ok {
			n, err := dispatchers.GetArgument[int](ctx, "limit")
			if err != nil {
				return 0, err
			}
			limit = n
		}

		entries, err := deps.History.List(domain.HistoryFilter{Limit: limit})
		if err != nil {
			return 0, err
		}
		if len(entries) == 0 {
			_, _ = deps.Println(style.Muted("no history yet"))
			return 0, nil
		}

		var get func(string) (string, bool)
		if deps.Config != nil {
			get = deps.Config.Get
		}
		f := format.New(get)
		now := deps.Now()

		for _, e := range entries {
			mark := style.Success("✓")
			if !e.Success {
				mark = style.Error("✗")
			}
			_, _ = deps.Printf("%s %-10s %-8s %s\n",
				mark,
				style.Muted(f.Ago(e.RanAt, now)),
				style.Info(e.Source),
				e.Input,
			)
		}
		return len(entries), nil
	}
}

// HistoryClear deletes every entry and reports how many were removed.
func HistoryClear(deps Deps) Command {
	return func(*Context) (int, error) {
		if deps.History == nil {
			return 0, ErrHistoryDisabled
		}
		n, err := deps.History.Clear()
		if err != nil {
			return 0, err
		}
		_, _ = deps.Printf("%s %d entries\n", style.Success("cleared"), n)
		return int(n), nil
	}
}

// SayHistorySuggestions offers messages previously said successfully. It
// queries the store with ctx, so a slow database is abandoned when the
// completion deadline passes.
func SayHistorySuggestions(deps Deps) Provider {
	return func(ctx context.Context, _ *Context, b *dispatchers.SuggestionsBuilder) (*dispatchers.Suggestions, error) {
		if deps.History == nil || !historySuggestionsEnabled(deps.Config) {
			return dispatchers.EmptySuggestions(), nil
		}
		inputs, err := deps.History.Inputs(ctx, sayCommandPrefix+b.Remaining(), historySuggestLimit)
		if err != nil {
			return nil, err
		}
		for _, input := range inputs {
			b.Suggest(strings.TrimPrefix(input, sayCommandPrefix))
		}
		return b.Build(), nil
	}
}

func historySuggestionsEnabled(cfg domain.ConfigProvider) bool {
	if cfg == nil {
		return true
	}
	v, ok := cfg.Get(historySuggestionsKey)
	return !ok || v != "false"
}
