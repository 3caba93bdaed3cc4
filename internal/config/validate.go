package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/footprint-tools/brig/internal/domain"
)

// ErrUnknownKey is wrapped by errors for keys outside domain.ConfigKeys.
var ErrUnknownKey = errors.New("config: unknown key")

var choices = map[string][]string{
	"color":        {"auto", "always", "never"},
	"log_level":    {"debug", "info", "warn", "error"},
	"display_time": {"12h", "24h"},
}

var (
	intKeys      = []string{"access_level", "suggestion_limit", "suggestion_timeout_ms"}
	positiveKeys = []string{"suggestion_limit"}
	boolKeys     = []string{"history_suggestions", "log_enabled"}
)

// Validate checks that value is acceptable for key.
func Validate(key, value string) error {
	if !domain.IsValidConfigKey(key) {
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}

	if allowed, ok := choices[key]; ok && !slices.Contains(allowed, value) {
		return fmt.Errorf("config: %s must be one of %v, got %q", key, allowed, value)
	}

	if slices.Contains(intKeys, key) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: %s must be an integer, got %q", key, value)
		}
		if n < 0 || (n == 0 && slices.Contains(positiveKeys, key)) {
			return fmt.Errorf("config: %s out of range: %d", key, n)
		}
	}

	if slices.Contains(boolKeys, key) {
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("config: %s must be true or false, got %q", key, value)
		}
	}

	return nil
}

// Choices returns the fixed set of values key accepts, if it has one.
func Choices(key string) []string {
	if key == "" {
		return nil
	}
	if allowed, ok := choices[key]; ok {
		return allowed
	}
	if slices.Contains(boolKeys, key) {
		return []string{"false", "true"}
	}
	return nil
}
