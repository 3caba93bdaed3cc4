package style

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorConfig holds all configurable colors for the UI.
// Values can be ANSI color numbers (0-255) or "bold" for bold styling.
type ColorConfig struct {
	Success   string
	Warning   string
	Error     string
	Info      string
	Muted     string
	Header    string
	Literal   string // usage keywords
	Argument  string // usage <placeholders>
	Highlight string // selected suggestion
}

// BaseThemeNames lists available theme bases (auto-detects dark/light).
var BaseThemeNames = []string{
	"default",
	"mono",
	"contrast",
}

// Themes contains the built-in color themes.
// Dark themes use BRIGHT colors (high contrast on dark backgrounds).
// Light themes use DARK colors (high contrast on light/white backgrounds).
var Themes = map[string]ColorConfig{
	"default-dark": {
		Success:   "10",  // bright green
		Warning:   "11",  // bright yellow
		Error:     "9",   // bright red
		Info:      "14",  // bright cyan
		Muted:     "245", // medium gray
		Header:    "bold",
		Literal:   "12", // bright blue
		Argument:  "13", // bright magenta
		Highlight: "14",
	},
	"default-light": {
		Success:   "28",  // dark green
		Warning:   "130", // dark orange
		Error:     "124", // dark red
		Info:      "27",  // dark blue
		Muted:     "242", // dark gray
		Header:    "bold",
		Literal:   "19", // navy
		Argument:  "90", // purple
		Highlight: "27",
	},

	// Grayscale only, for terminals with poor color support.
	"mono-dark": {
		Success:   "255",
		Warning:   "250",
		Error:     "bold",
		Info:      "252",
		Muted:     "242",
		Header:    "bold",
		Literal:   "255",
		Argument:  "248",
		Highlight: "255",
	},
	"mono-light": {
		Success:   "232",
		Warning:   "238",
		Error:     "bold",
		Info:      "235",
		Muted:     "246",
		Header:    "bold",
		Literal:   "232",
		Argument:  "240",
		Highlight: "232",
	},

	"contrast-dark": {
		Success:   "46",
		Warning:   "226",
		Error:     "196",
		Info:      "51",
		Muted:     "250",
		Header:    "bold",
		Literal:   "231",
		Argument:  "219",
		Highlight: "226",
	},
	"contrast-light": {
		Success:   "22",
		Warning:   "94",
		Error:     "88",
		Info:      "18",
		Muted:     "236",
		Header:    "bold",
		Literal:   "16",
		Argument:  "53",
		Highlight: "18",
	},
}

// colorEnvKeys maps BRIG_COLOR_* suffixes to ColorConfig fields.
var colorEnvKeys = map[string]func(*ColorConfig, string){
	"SUCCESS":   func(c *ColorConfig, v string) { c.Success = v },
	"WARNING":   func(c *ColorConfig, v string) { c.Warning = v },
	"ERROR":     func(c *ColorConfig, v string) { c.Error = v },
	"INFO":      func(c *ColorConfig, v string) { c.Info = v },
	"MUTED":     func(c *ColorConfig, v string) { c.Muted = v },
	"HEADER":    func(c *ColorConfig, v string) { c.Header = v },
	"LITERAL":   func(c *ColorConfig, v string) { c.Literal = v },
	"ARGUMENT":  func(c *ColorConfig, v string) { c.Argument = v },
	"HIGHLIGHT": func(c *ColorConfig, v string) { c.Highlight = v },
}

// IsDarkBackground returns true if the terminal has a dark background.
// Uses termenv to query the terminal. Returns true if detection fails.
func IsDarkBackground() bool {
	return termenv.HasDarkBackground()
}

// ResolveThemeName takes a theme name and returns the full theme name.
// If the name doesn't have a -dark/-light suffix, it appends one based
// on terminal background detection.
func ResolveThemeName(name string) string {
	if strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, "-light") {
		return name
	}
	if IsDarkBackground() {
		return name + "-dark"
	}
	return name + "-light"
}

// LoadColorConfig builds a ColorConfig from the given configuration map.
// Resolution priority:
//  1. Environment variable (BRIG_COLOR_*)
//  2. Theme (BRIG_THEME, then the "theme" config value)
//  3. Default theme (auto-detected based on terminal background)
func LoadColorConfig(cfg map[string]string) ColorConfig {
	themeName := "default"
	if envTheme := os.Getenv("BRIG_THEME"); envTheme != "" {
		themeName = envTheme
	} else if cfgTheme := cfg["theme"]; cfgTheme != "" {
		themeName = cfgTheme
	}

	result, ok := Themes[ResolveThemeName(themeName)]
	if !ok {
		result = Themes["default-dark"]
	}

	for suffix, set := range colorEnvKeys {
		if v := os.Getenv("BRIG_COLOR_" + suffix); v != "" {
			set(&result, v)
		}
	}

	return result
}
