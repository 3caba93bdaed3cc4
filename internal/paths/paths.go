package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "brig"

// ConfigEnv overrides the config file location when set.
const ConfigEnv = "BRIG_CONFIG"

// AppDataDir returns the application directory for config and logs.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)
	_ = os.MkdirAll(path, 0700)

	return path
}

// AppLocalDataDir returns the OS-appropriate local data directory.
// The history database lives here.
//   - macOS: ~/Library/Application Support/brig
//   - Linux: $XDG_DATA_HOME/brig or ~/.local/share/brig
//   - Windows: %LOCALAPPDATA%\brig
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// ConfigFilePath returns the TOML config file, honouring $BRIG_CONFIG.
func ConfigFilePath() (string, error) {
	if p := os.Getenv(ConfigEnv); p != "" {
		return filepath.Abs(p)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, "config.toml"), nil
}

// HistoryDBPath returns the default location of the execution history.
func HistoryDBPath() string {
	return filepath.Join(AppLocalDataDir(), "history.db")
}

// LogFilePath returns the path to the application log file.
//   - macOS: ~/Library/Application Support/brig/brig.log
//   - Linux: $XDG_CONFIG_HOME/brig/brig.log or ~/.config/brig/brig.log
//   - Windows: %AppData%\brig\brig.log
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "brig.log")
}
