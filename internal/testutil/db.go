package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/store"
)

// NewTestStore opens an in-memory history store with migrations applied.
// It is closed when the test finishes.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(store.MemoryPath)
	require.NoError(t, err, "failed to open in-memory store")

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// SeedHistory records entries in order, one second apart, as source.
func SeedHistory(t *testing.T, s *store.Store, source domain.Source, inputs ...string) {
	t.Helper()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, input := range inputs {
		_, err := s.Record(domain.HistoryEntry{
			SourceID: source.ID,
			Source:   source.Name,
			Input:    input,
			Success:  true,
			Result:   1,
			RanAt:    base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err, "failed to seed %q", input)
	}
}
