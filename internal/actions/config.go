package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/footprint-tools/brig/internal/config"
	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/ui/style"
)

// ConfigKeyNames lists every key config commands accept, in display order.
func ConfigKeyNames() []string {
	names := make([]string, 0, len(domain.ConfigKeys))
	for _, key := range domain.ConfigKeys {
		names = append(names, key.Name)
	}
	return names
}

// ConfigGet prints the effective value of one key.
func ConfigGet(deps Deps) Command {
	return func(ctx *Context) (int, error) {
		key, err := dispatchers.GetArgument[string](ctx, "key")
		if err != nil {
			return 0, err
		}
		value, ok := deps.Config.Get(key)
		if !ok {
			return 0, fmt.Errorf("%w: %s", config.ErrUnknownKey, key)
		}
		_, _ = deps.Println(value)
		return 1, nil
	}
}

// ConfigSet stores a value after validating it.
func ConfigSet(deps Deps) Command {
	return func(ctx *Context) (int, error) {
		key, err := dispatchers.GetArgument[string](ctx, "key")
		if err != nil {
			return 0, err
		}
		value, err := dispatchers.GetArgument[string](ctx, "value")
		if err != nil {
			return 0, err
		}
		if err := deps.Config.Set(key, value); err != nil {
			return 0, err
		}
		_, _ = deps.Printf("%s %s = %s\n", style.Success("set"), key, value)
		return 1, nil
	}
}

// ConfigUnset removes a key so its default applies again.
func ConfigUnset(deps Deps) Command {
	return func(ctx *Context) (int, error) {
		key, err := dispatchers.GetArgument[string](ctx, "key")
		if err != nil {
			return 0, err
		}
		if err := deps.Config.Unset(key); err != nil {
			return 0, err
		}
		_, _ = deps.Printf("%s %s\n", style.Success("unset"), key)
		return 1, nil
	}
}

// ConfigList prints every visible key grouped by section. The result is
// the number of keys printed.
func ConfigList(deps Deps) Command {
	return func(*Context) (int, error) {
		values, err := deps.Config.GetAll()
		if err != nil {
			return 0, err
		}

		bySection := domain.ConfigKeysBySection()
		count := 0
		for i, section := range domain.ConfigSections() {
			keys := bySection[section]
			if len(keys) == 0 {
				continue
			}
			if i > 0 {
				_, _ = deps.Println()
			}
			_, _ = deps.Println(style.Header(section))
			for _, key := range keys {
				value := values[key.Name]
				if value == "" && key.HideIfEmpty {
					continue
				}
				if deps.Config.IsSet(key.Name) {
					_, _ = deps.Printf("  %-22s %s\n", key.Name, value)
				} else {
					_, _ = deps.Printf("  %-22s %s %s\n", key.Name, value, style.Muted("(default)"))
				}
				count++
			}
		}
		return count, nil
	}
}

// ConfigKeySuggestions completes visible key names, with each key's
// description as the tooltip.
func ConfigKeySuggestions(_ context.Context, _ *Context, b *dispatchers.SuggestionsBuilder) (*dispatchers.Suggestions, error) {
	for _, key := range domain.VisibleConfigKeys() {
		if strings.HasPrefix(key.Name, b.RemainingLowerCase()) {
			b.SuggestWithTooltip(key.Name, key.Description)
		}
	}
	return b.Build(), nil
}

// ConfigValueSuggestions completes the value of "config set <key>" from
// the key's fixed choices, if it has any. The key may sit behind a
// redirect, so it is read from the last segment.
func ConfigValueSuggestions(_ context.Context, cc *Context, b *dispatchers.SuggestionsBuilder) (*dispatchers.Suggestions, error) {
	key, err := dispatchers.GetArgument[string](cc.LastChild(), "key")
	if err != nil {
		return dispatchers.EmptySuggestions(), nil
	}
	for _, choice := range config.Choices(key) {
		if strings.HasPrefix(choice, b.RemainingLowerCase()) {
			b.Suggest(choice)
		}
	}
	return b.Build(), nil
}
