// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss is imported. All styling
// is semantic (Success, Error, Literal, etc.) rather than visual (RedBold, etc.).
//
// When disabled, all helpers return the input string unchanged with no ANSI codes.
package style

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	mu      sync.RWMutex
	enabled bool
	colors  ColorConfig

	// Only used when enabled is true.
	successStyle   lipgloss.Style
	warningStyle   lipgloss.Style
	errorStyle     lipgloss.Style
	infoStyle      lipgloss.Style
	headerStyle    lipgloss.Style
	mutedStyle     lipgloss.Style
	literalStyle   lipgloss.Style
	argumentStyle  lipgloss.Style
	highlightStyle lipgloss.Style
)

// Init initializes the style package with the given enabled state and config.
// NO_COLOR and BRIG_NO_COLOR, if set to any non-empty value, disable
// styling regardless of enable.
//
// The cfg map supplies "theme"; per-color overrides come from BRIG_COLOR_*.
// A nil cfg uses the auto-detected default theme.
//
// Call it from main before any output, and again after a config reload.
func Init(enable bool, cfg map[string]string) {
	mu.Lock()
	defer mu.Unlock()

	if os.Getenv("NO_COLOR") != "" || os.Getenv("BRIG_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable
	if enabled {
		colors = LoadColorConfig(cfg)
		initStyles(colors)
	}
}

// ShouldEnable resolves the "color" setting against whether output is a
// terminal.
func ShouldEnable(mode string, isTTY bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTTY
	}
}

// initStyles creates the lipgloss styles from the given color configuration.
func initStyles(colors ColorConfig) {
	// ANSI256 regardless of TTY detection; Init already decided.
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = makeStyle(colors.Success)
	warningStyle = makeStyle(colors.Warning)
	errorStyle = makeStyle(colors.Error)
	infoStyle = makeStyle(colors.Info)
	mutedStyle = makeStyle(colors.Muted)
	headerStyle = makeStyle(colors.Header)
	literalStyle = makeStyle(colors.Literal)
	argumentStyle = makeStyle(colors.Argument).Italic(true)
	highlightStyle = makeStyle(colors.Highlight).Reverse(true)
}

// makeStyle creates a lipgloss style from a color value.
// The value can be "bold" for bold styling, or an ANSI color number (0-255).
func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

func render(s *lipgloss.Style, text string) string {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Success styles text for successful operations.
func Success(text string) string { return render(&successStyle, text) }

// Warning styles text for warning messages.
func Warning(text string) string { return render(&warningStyle, text) }

// Error styles text for error messages.
func Error(text string) string { return render(&errorStyle, text) }

// Info styles text for informational messages.
func Info(text string) string { return render(&infoStyle, text) }

// Header styles text for section headers or titles.
func Header(text string) string { return render(&headerStyle, text) }

// Muted styles text for less important or secondary information.
func Muted(text string) string { return render(&mutedStyle, text) }

// Literal styles a literal keyword in usage text.
func Literal(text string) string { return render(&literalStyle, text) }

// Argument styles an argument placeholder in usage text.
func Argument(text string) string { return render(&argumentStyle, text) }

// Highlight marks the selected entry of a list.
func Highlight(text string) string { return render(&highlightStyle, text) }
