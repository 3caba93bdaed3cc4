package actions

import (
	"github.com/footprint-tools/brig/internal/dispatchers"
)

// Echo prints its text argument back.
func Echo(deps Deps) Command {
	return func(ctx *Context) (int, error) {
		text, err := dispatchers.GetArgument[string](ctx, "text")
		if err != nil {
			return 0, err
		}
		_, _ = deps.Println(text)
		return 1, nil
	}
}

// Add prints the sum of a and b and returns it as the command result.
func Add(deps Deps) Command {
	return func(ctx *Context) (int, error) {
		a, err := dispatchers.GetArgument[int](ctx, "a")
		if err != nil {
			return 0, err
		}
		b, err := dispatchers.GetArgument[int](ctx, "b")
		if err != nil {
			return 0, err
		}
		_, _ = deps.Println(a + b)
		return a + b, nil
	}
}

// Say broadcasts a message as the current source.
func Say(deps Deps) Command {
	return func(ctx *Context) (int, error) {
		message, err := dispatchers.GetArgument[string](ctx, "message")
		if err != nil {
			return 0, err
		}
		_, _ = deps.Printf("<%s> %s\n", ctx.Source().Name, message)
		return 1, nil
	}
}

// Whoami describes the current source. The result is its level.
func Whoami(deps Deps) Command {
	return func(ctx *Context) (int, error) {
		src := ctx.Source()
		_, _ = deps.Printf("%s (level %d) %s\n", src.Name, src.Level, src.ID)
		return src.Level, nil
	}
}
