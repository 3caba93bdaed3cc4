package config

import (
	"maps"
	"strconv"
	"sync"
	"time"

	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/log"
)

// Provider serves configuration from a TOML file with in-code defaults.
// Values are cached in memory; Reload picks up edits made elsewhere.
type Provider struct {
	path string

	mu     sync.RWMutex
	values map[string]string
}

// NewProvider loads the file at path, creating it if needed.
func NewProvider(path string) (*Provider, error) {
	p := &Provider{path: path}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Path returns the backing file.
func (p *Provider) Path() string {
	return p.path
}

// Reload re-reads the backing file.
func (p *Provider) Reload() error {
	values, err := ReadFile(p.path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.values = values
	p.mu.Unlock()
	return nil
}

// Get returns the value for key: the file first, then the default.
func (p *Provider) Get(key string) (string, bool) {
	p.mu.RLock()
	v, ok := p.values[key]
	p.mu.RUnlock()
	if ok {
		return v, true
	}
	if domain.IsValidConfigKey(key) {
		return defaultValue(key), true
	}
	return "", false
}

// GetAll returns user overrides merged over the defaults.
func (p *Provider) GetAll() (map[string]string, error) {
	result := Defaults()
	p.mu.RLock()
	maps.Copy(result, p.values)
	p.mu.RUnlock()
	return result, nil
}

// IsSet reports whether key is present in the file.
func (p *Provider) IsSet(key string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.values[key]
	return ok
}

// Set validates and persists a value.
func (p *Provider) Set(key, value string) error {
	if err := Validate(key, value); err != nil {
		return err
	}
	return p.update(func(values map[string]string) {
		values[key] = value
	})
}

// Unset removes key from the file so its default applies again.
func (p *Provider) Unset(key string) error {
	if !domain.IsValidConfigKey(key) {
		return Validate(key, "")
	}
	return p.update(func(values map[string]string) {
		delete(values, key)
	})
}

// update re-reads the file under the lock so edits from other processes
// are not lost, applies fn and writes the result back.
func (p *Provider) update(fn func(map[string]string)) error {
	return WithLock(p.path, func() error {
		values, err := ReadFile(p.path)
		if err != nil {
			return err
		}
		fn(values)
		if err := WriteFile(p.path, values); err != nil {
			return err
		}
		p.mu.Lock()
		p.values = values
		p.mu.Unlock()
		log.Debug("config: wrote %s", p.path)
		return nil
	})
}

// GetInt returns key as an integer, or fallback when unset or malformed.
func (p *Provider) GetInt(key string, fallback int) int {
	v, ok := p.Get(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn("config: %s is not an integer: %q", key, v)
		return fallback
	}
	return n
}

// GetBool returns key as a boolean, or fallback when unset or malformed.
func (p *Provider) GetBool(key string, fallback bool) bool {
	v, ok := p.Get(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Warn("config: %s is not a boolean: %q", key, v)
		return fallback
	}
	return b
}

// GetMillis reads an integer key as a duration in milliseconds.
func (p *Provider) GetMillis(key string, fallback time.Duration) time.Duration {
	n := p.GetInt(key, -1)
	if n < 0 {
		return fallback
	}
	return time.Duration(n) * time.Millisecond
}

var _ domain.ConfigProvider = (*Provider)(nil)
