package config

import (
	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/paths"
)

// dynamicDefaults are computed at lookup time instead of taken from
// domain.ConfigKeys.
var dynamicDefaults = map[string]func() string{
	"history_path": paths.HistoryDBPath,
}

// defaultValue returns the default for key, or "" when the key is unknown.
func defaultValue(key string) string {
	if fn, ok := dynamicDefaults[key]; ok {
		return fn()
	}
	v, _ := domain.GetDefaultValue(key)
	return v
}

// Defaults returns every known key with its default value.
func Defaults() map[string]string {
	result := make(map[string]string, len(domain.ConfigKeys))
	for _, key := range domain.ConfigKeys {
		result[key.Name] = defaultValue(key.Name)
	}
	return result
}
