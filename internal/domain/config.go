package domain

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string // Section for grouping in listings (Shell, Suggestions, etc.)
	Hidden      bool   // Hidden keys are not shown in help or config list
	HideIfEmpty bool   // Only show in config list if explicitly set
}

// ConfigKeys defines all available configuration keys.
// This is the single source of truth for configuration.
// Order determines display order in `brig config list`.
var ConfigKeys = []ConfigKey{
	// Shell
	{
		Name:        "prompt",
		Default:     "brig> ",
		Description: "Prompt shown by the interactive shell",
		Section:     "Shell",
	},
	{
		Name:        "user",
		Default:     "",
		Description: "Name of the source commands run as (defaults to $USER)",
		Section:     "Shell",
		HideIfEmpty: true,
	},
	{
		Name:        "access_level",
		Default:     "0",
		Description: "Permission level of the source; gates restricted commands",
		Section:     "Shell",
	},
	{
		Name:        "color",
		Default:     "auto",
		Description: "Colored output: auto, always, never",
		Section:     "Shell",
	},
	{
		Name:        "theme",
		Default:     "default",
		Description: "Color theme: default, mono, contrast (-dark/-light to force)",
		Section:     "Shell",
	},
	{
		Name:        "display_date",
		Default:     "Jan 02",
		Description: "Date format in history: mm/dd/yyyy, dd/mm/yyyy, yyyy-mm-dd or a Go layout",
		Section:     "Shell",
	},
	{
		Name:        "display_time",
		Default:     "24h",
		Description: "Time format in history: 12h or 24h",
		Section:     "Shell",
	},
	{
		Name:        "pager",
		Default:     "less -FRSX",
		Description: "Pager for long listings such as `brig usage` (cat disables)",
		Section:     "Shell",
	},
	// Suggestions
	{
		Name:        "suggestion_limit",
		Default:     "8",
		Description: "Maximum completion providers queried concurrently",
		Section:     "Suggestions",
	},
	{
		Name:        "suggestion_timeout_ms",
		Default:     "250",
		Description: "Milliseconds to wait for slow completion providers",
		Section:     "Suggestions",
	},
	{
		Name:        "history_suggestions",
		Default:     "true",
		Description: "Offer previously said messages as completions (true/false)",
		Section:     "Suggestions",
	},
	// History
	{
		Name:        "history_path",
		Default:     "", // Set dynamically to paths.HistoryDBPath()
		Description: "Path to the execution history database",
		Section:     "History",
		HideIfEmpty: true,
	},
	// Logging
	{
		Name:        "log_enabled",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
	},
	{
		Name:        "log_level",
		Default:     "warn",
		Description: "Minimum log level: debug, info, warn, error",
		Section:     "Logging",
	},
}

// configKeyMap is a lookup map for configuration keys.
var configKeyMap map[string]ConfigKey

func init() {
	configKeyMap = make(map[string]ConfigKey, len(ConfigKeys))
	for _, key := range ConfigKeys {
		configKeyMap[key.Name] = key
	}
}

// IsValidConfigKey checks if a key name is valid.
func IsValidConfigKey(name string) bool {
	_, ok := configKeyMap[name]
	return ok
}

// GetDefaultValue returns the default value for a config key.
func GetDefaultValue(name string) (string, bool) {
	if key, ok := configKeyMap[name]; ok {
		return key.Default, true
	}
	return "", false
}

// VisibleConfigKeys returns all non-hidden configuration keys.
func VisibleConfigKeys() []ConfigKey {
	var visible []ConfigKey
	for _, key := range ConfigKeys {
		if !key.Hidden {
			visible = append(visible, key)
		}
	}
	return visible
}

// ConfigSections returns the ordered list of section names.
func ConfigSections() []string {
	return []string{"Shell", "Suggestions", "History", "Logging"}
}

// ConfigKeysBySection returns visible config keys grouped by section.
func ConfigKeysBySection() map[string][]ConfigKey {
	result := make(map[string][]ConfigKey)
	for _, key := range ConfigKeys {
		if !key.Hidden {
			result[key.Section] = append(result[key.Section], key)
		}
	}
	return result
}
