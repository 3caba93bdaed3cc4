package domain

import (
	"time"

	"github.com/google/uuid"
)

// Access levels understood by the built-in command tree.
const (
	LevelUser     = 0
	LevelOperator = 2
	LevelAdmin    = 4
)

// Source identifies who a command runs as. It is comparable so contexts can
// skip copying when a redirect keeps the same source.
type Source struct {
	ID    uuid.UUID
	Name  string
	Level int
}

// NewSource returns a source with a fresh random ID.
func NewSource(name string, level int) Source {
	return Source{ID: uuid.New(), Name: name, Level: level}
}

// WithLevel returns a copy of s running at level.
func (s Source) WithLevel(level int) Source {
	s.Level = level
	return s
}

func (s Source) String() string {
	return s.Name
}

// HistoryEntry records one attempted command execution.
type HistoryEntry struct {
	ID       int64
	SourceID uuid.UUID
	Source   string
	Input    string
	Success  bool
	Result   int
	RanAt    time.Time
}

// HistoryFilter restricts history queries. Zero values match everything.
type HistoryFilter struct {
	Source string
	Prefix string
	Limit  int
}
