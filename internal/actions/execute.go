package actions

import (
	"fmt"

	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
)

// Resolver turns source names into sources.
type Resolver func(names []string) ([]domain.Source, error)

// AsTargets forks the rest of the command once per source named by the
// "targets" argument.
func AsTargets(resolve Resolver) Modifier {
	return func(ctx *Context) ([]domain.Source, error) {
		names, err := dispatchers.GetArgument[[]string](ctx, "targets")
		if err != nil {
			return nil, err
		}
		return resolve(names)
	}
}

// AtLevel reruns the rest of the command at the "level" argument. Only
// admins may raise their own level.
func AtLevel() Modifier {
	return func(ctx *Context) ([]domain.Source, error) {
		level, err := dispatchers.GetArgument[int](ctx, "level")
		if err != nil {
			return nil, err
		}
		src := ctx.Source()
		if level > src.Level && src.Level < domain.LevelAdmin {
			return nil, fmt.Errorf("%s may not raise level from %d to %d", src.Name, src.Level, level)
		}
		return []domain.Source{src.WithLevel(level)}, nil
	}
}

// AtLeast is a requirement passing sources at level or above.
func AtLeast(level int) dispatchers.Requirement[domain.Source] {
	return func(src domain.Source) bool {
		return src.Level >= level
	}
}
