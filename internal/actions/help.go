package actions

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/ui/style"
)

// Help prints one condensed usage line per top-level command the source
// may use. The result is the number of lines.
func Help(deps Deps) Command {
	return func(ctx *Context) (int, error) {
		d := deps.Dispatcher
		lines := d.SmartUsage(d.Root(), ctx.Source())
		for _, line := range lines {
			_, _ = deps.Println(style.RenderUsage(line.Usage))
		}
		return len(lines), nil
	}
}

// HelpFor prints usage below the command named by the greedy "command"
// argument, e.g. "help execute".
func HelpFor(deps Deps) Command {
	return func(ctx *Context) (int, error) {
		command, err := dispatchers.GetArgument[string](ctx, "command")
		if err != nil {
			return 0, err
		}

		d := deps.Dispatcher
		parse := d.Parse(command, ctx.Source())
		if strings.TrimSpace(parse.Reader.Remaining()) != "" {
			return 0, fmt.Errorf("no command named %q", command)
		}
		nodes := parse.Context.LastChild().Nodes()
		if len(nodes) == 0 {
			return 0, fmt.Errorf("no command named %q", command)
		}

		node := nodes[len(nodes)-1].Node
		prefix := strings.TrimSpace(command)
		lines := d.SmartUsage(node, ctx.Source())
		if node.Command() != nil {
			_, _ = deps.Println(style.RenderUsage(prefix))
		}
		for _, line := range lines {
			_, _ = deps.Println(style.RenderUsage(prefix + " " + line.Usage))
		}
		return max(len(lines), 1), nil
	}
}

// Usage prints every executable path the source may use, one per line.
func Usage(deps Deps) Command {
	return func(ctx *Context) (int, error) {
		lines := deps.Dispatcher.AllUsage(deps.Dispatcher.Root(), ctx.Source(), true)
		for _, line := range lines {
			_, _ = deps.Println(style.RenderUsage(line))
		}
		return len(lines), nil
	}
}
