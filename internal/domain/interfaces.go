package domain

import (
	"context"
)

// HistoryStore persists executed commands.
type HistoryStore interface {
	// Record appends an entry and returns its ID.
	Record(entry HistoryEntry) (int64, error)

	// List returns entries matching the filter, newest first.
	List(filter HistoryFilter) ([]HistoryEntry, error)

	// Inputs returns distinct inputs starting with prefix, most recent first.
	// It honours ctx so completion can abandon slow queries.
	Inputs(ctx context.Context, prefix string, limit int) ([]string, error)

	// Clear deletes all entries and returns how many were removed.
	Clear() (int64, error)

	// Close closes the store connection.
	Close() error
}

// ConfigProvider defines operations for reading and writing configuration.
type ConfigProvider interface {
	// Get returns the value for a configuration key.
	Get(key string) (string, bool)

	// GetAll returns all configuration values.
	GetAll() (map[string]string, error)

	// IsSet reports whether key was set explicitly rather than defaulted.
	IsSet(key string) bool

	// Set sets a configuration value.
	Set(key, value string) error

	// Unset removes a configuration value.
	Unset(key string) error
}

// Logger defines logging operations.
type Logger interface {
	// Debug logs a debug message.
	Debug(format string, args ...any)

	// Info logs an info message.
	Info(format string, args ...any)

	// Warn logs a warning message.
	Warn(format string, args ...any)

	// Error logs an error message.
	Error(format string, args ...any)

	// Close closes the logger.
	Close() error
}
