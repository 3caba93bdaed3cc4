package actions

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/brig/internal/config"
	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
)

var alice = domain.NewSource("alice", domain.LevelUser)

// captureDeps returns deps whose output lands in the returned buffer.
func captureDeps() (Deps, *bytes.Buffer) {
	var out bytes.Buffer
	deps := Deps{
		Printf: func(format string, a ...any) (int, error) {
			return fmt.Fprintf(&out, format, a...)
		},
		Println: func(a ...any) (int, error) {
			return fmt.Fprintln(&out, a...)
		},
		Version: func() string { return "1.2.3" },
		Now: func() time.Time {
			return time.Date(2024, 1, 1, 12, 5, 0, 0, time.UTC)
		},
	}
	return deps, &out
}

func newConfig(t *testing.T) *config.Provider {
	t.Helper()
	p, err := config.NewProvider(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	return p
}

func newDispatcher() *dispatchers.Dispatcher[domain.Source] {
	return dispatchers.New[domain.Source](dispatchers.Options{})
}

func register(t *testing.T, d *dispatchers.Dispatcher[domain.Source], b *dispatchers.Builder[domain.Source]) {
	t.Helper()
	_, err := d.Register(b)
	require.NoError(t, err)
}

func lit(name string) *dispatchers.Builder[domain.Source] {
	return dispatchers.Literal[domain.Source](name)
}

func arg(name string, typ dispatchers.ArgumentType) *dispatchers.Builder[domain.Source] {
	return dispatchers.Argument[domain.Source](name, typ)
}

// namesType reads a comma separated word into a []string.
type namesType struct{}

func (namesType) Parse(r *dispatchers.StringReader) (any, error) {
	start := r.Cursor()
	for r.CanRead() && r.Peek() != ' ' {
		r.Skip()
	}
	return strings.Split(r.String()[start:r.Cursor()], ","), nil
}
