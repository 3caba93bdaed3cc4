package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/footprint-tools/brig/internal/domain"
	"github.com/footprint-tools/brig/internal/log"
)

// ReadFile decodes the TOML file at path into flat string values.
// A missing or empty file is created with the visible defaults.
func ReadFile(path string) (map[string]string, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.Size() == 0) {
		if err := WriteFile(path, nil); err != nil {
			log.Warn("config: could not write default config: %v", err)
		}
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}

	if info.Mode().Perm() != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			log.Warn("config: could not set permissions on config file: %v", err)
		}
	}

	raw := map[string]any{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for key, v := range raw {
		switch v := v.(type) {
		case string:
			values[key] = v
		case int64:
			values[key] = strconv.FormatInt(v, 10)
		case float64:
			values[key] = strconv.FormatFloat(v, 'g', -1, 64)
		case bool:
			values[key] = strconv.FormatBool(v)
		default:
			log.Warn("config: ignoring %s, unsupported value type %T", key, v)
		}
	}
	return values, nil
}

// WriteFile atomically replaces the file at path. Keys are written in the
// order of domain.ConfigKeys; unset visible keys are left as comments so the
// file documents itself.
func WriteFile(path string, values map[string]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".config.toml.tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(0600); err != nil {
		return err
	}

	w := bufio.NewWriter(tmpFile)
	_, _ = fmt.Fprintln(w, "# brig configuration")
	_, _ = fmt.Fprintln(w, "# Edit values below or use: brig run 'config set <key> <value>'")

	section := ""
	for _, key := range domain.ConfigKeys {
		if key.Hidden {
			continue
		}
		if key.Section != section {
			section = key.Section
			_, _ = fmt.Fprintf(w, "\n# %s\n", section)
		}

		value, ok := values[key.Name]
		if !ok {
			if key.HideIfEmpty {
				_, _ = fmt.Fprintf(w, "# %s = \"\"\n", key.Name)
				continue
			}
			_, _ = fmt.Fprintf(w, "# %s\n", encodeLine(key.Name, defaultValue(key.Name)))
			continue
		}
		_, _ = fmt.Fprintln(w, encodeLine(key.Name, value))
	}

	if err := w.Flush(); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	success = true
	return nil
}

// encodeLine renders one key/value pair, keeping numbers and booleans
// unquoted so hand edits stay natural.
func encodeLine(key, value string) string {
	b, err := toml.Marshal(map[string]any{key: typed(value)})
	if err != nil {
		return key + " = " + strconv.Quote(value)
	}
	return string(trimNewline(b))
}

func typed(value string) any {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil && (value == "true" || value == "false") {
		return b
	}
	return value
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
