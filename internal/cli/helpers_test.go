package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/brig/internal/actions"
	"github.com/footprint-tools/brig/internal/config"
	"github.com/footprint-tools/brig/internal/dispatchers"
	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/store"
	"github.com/footprint-tools/brig/internal/testutil"
)

type testEnv struct {
	shell   *Shell
	out     *bytes.Buffer
	store   *store.Store
	config  *config.Provider
	sources *Sources
}

// newTestEnv builds the full command tree over an in-memory store and a
// temporary config file, running as alice at level.
func newTestEnv(t *testing.T, level int) *testEnv {
	t.Helper()

	cfg, err := config.NewProvider(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	s := testutil.NewTestStore(t)

	var out bytes.Buffer
	src := domain.NewSource("alice", level)
	d := dispatchers.New[domain.Source](dispatchers.Options{SuggestionLimit: 4})
	shell := NewShell(d, src,
		WithHistory(s),
		WithOutput(&out),
		WithSuggestionTimeout(time.Second),
	)
	sources := NewSources(src)

	deps := actions.Deps{
		Config:  cfg,
		History: s,
		Printf:  shell.Printf,
		Println: shell.Println,
		Version: func() string { return "test" },
		Now:     time.Now,
	}
	require.NoError(t, BuildTree(d, deps, sources))

	return &testEnv{shell: shell, out: &out, store: s, config: cfg, sources: sources}
}
