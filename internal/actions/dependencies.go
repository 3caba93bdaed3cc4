package actions

import (
	"fmt"
	"time"

	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
)

type (
	// Context is the parsed context every built-in command receives.
	Context = dispatchers.CommandContext[domain.Source]
	// Command is a built-in command bound to a node.
	Command = dispatchers.Command[domain.Source]
	// Modifier maps one source to the sources the rest of a command runs as.
	Modifier = dispatchers.RedirectModifier[domain.Source]
	// Provider proposes completions for an argument.
	Provider = dispatchers.SuggestionProvider[domain.Source]
)

// Deps carries what commands need beyond their parsed arguments.
type Deps struct {
	Config     domain.ConfigProvider
	History    domain.HistoryStore // nil when history is disabled
	Dispatcher *dispatchers.Dispatcher[domain.Source]
	Printf     func(format string, a ...any) (n int, err error)
	Println    func(a ...any) (n int, err error)
	Version    func() string
	Now        func() time.Time
}

// DefaultDeps prints to stdout. Config, History and Dispatcher are left
// for the caller to fill in.
func DefaultDeps() Deps {
	return Deps{
		Printf:  fmt.Printf,
		Println: fmt.Println,
		Version: func() string { return "dev" },
		Now:     time.Now,
	}
}
