package style

import (
	"os"
	"strings"
	"testing"
)

func TestDisabledReturnsPlainText(t *testing.T) {
	// Ensure no env vars interfere
	os.Unsetenv("NO_COLOR")
	os.Unsetenv("BRIG_NO_COLOR")

	Init(false, nil)

	tests := []struct {
		name string
		fn   func(string) string
	}{
		{"Success", Success},
		{"Warning", Warning},
		{"Error", Error},
		{"Info", Info},
		{"Header", Header},
		{"Muted", Muted},
		{"Literal", Literal},
		{"Argument", Argument},
		{"Highlight", Highlight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "test message"
			output := tt.fn(input)

			if output != input {
				t.Errorf("%s() with disabled styling: got %q, want %q", tt.name, output, input)
			}

			// Verify no ANSI escape codes
			if strings.Contains(output, "\x1b[") {
				t.Errorf("%s() with disabled styling contains ANSI codes: %q", tt.name, output)
			}
		})
	}
}

func TestEnabledReturnsStyledText(t *testing.T) {
	// Ensure no env vars interfere
	os.Unsetenv("NO_COLOR")
	os.Unsetenv("BRIG_NO_COLOR")

	Init(true, nil)

	tests := []struct {
		name string
		fn   func(string) string
	}{
		{"Success", Success},
		{"Warning", Warning},
		{"Error", Error},
		{"Info", Info},
		{"Header", Header},
		{"Muted", Muted},
		{"Literal", Literal},
		{"Argument", Argument},
		{"Highlight", Highlight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "test message"
			output := tt.fn(input)

			// Output should contain the original text
			if !strings.Contains(output, input) {
				t.Errorf("%s() output %q does not contain input %q", tt.name, output, input)
			}

			// Output should contain ANSI escape codes when enabled
			if !strings.Contains(output, "\x1b[") {
				t.Errorf("%s() with enabled styling should contain ANSI codes: %q", tt.name, output)
			}
		})
	}
}

func TestNoColorEnvDisablesStyling(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	Init(true, nil) // Try to enable, but NO_COLOR should override

	if Enabled() {
		t.Error("Enabled() should return false when NO_COLOR is set")
	}

	input := "test"
	output := Success(input)
	if output != input {
		t.Errorf("Success() should return plain text when NO_COLOR is set: got %q, want %q", output, input)
	}
}

func TestBrigNoColorEnvDisablesStyling(t *testing.T) {
	os.Setenv("BRIG_NO_COLOR", "1")
	defer os.Unsetenv("BRIG_NO_COLOR")

	Init(true, nil) // Try to enable, but BRIG_NO_COLOR should override

	if Enabled() {
		t.Error("Enabled() should return false when BRIG_NO_COLOR is set")
	}

	input := "test"
	output := Warning(input)
	if output != input {
		t.Errorf("Warning() should return plain text when BRIG_NO_COLOR is set: got %q, want %q", output, input)
	}
}

func TestEnabledReturnsCorrectState(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	os.Unsetenv("BRIG_NO_COLOR")

	Init(false, nil)
	if Enabled() {
		t.Error("Enabled() should return false after Init(false, nil)")
	}

	Init(true, nil)
	if !Enabled() {
		t.Error("Enabled() should return true after Init(true, nil)")
	}
}

func TestEmptyStringHandling(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	os.Unsetenv("BRIG_NO_COLOR")

	// Test with disabled
	Init(false, nil)
	if got := Success(""); got != "" {
		t.Errorf("Success(\"\") with disabled styling: got %q, want \"\"", got)
	}

	// Test with enabled - should still handle empty gracefully
	Init(true, nil)
	output := Success("")
	// Empty string with styling might have escape codes but should be minimal
	if !strings.Contains(output, "") {
		t.Errorf("Success(\"\") with enabled styling failed")
	}
}

func TestShouldEnable(t *testing.T) {
	tests := []struct {
		mode  string
		isTTY bool
		want  bool
	}{
		{"always", false, true},
		{"never", true, false},
		{"auto", true, true},
		{"auto", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		if got := ShouldEnable(tt.mode, tt.isTTY); got != tt.want {
			t.Errorf("ShouldEnable(%q, %v) = %v, want %v", tt.mode, tt.isTTY, got, tt.want)
		}
	}
}

func TestLoadColorConfig_ThemeAndOverrides(t *testing.T) {
	t.Setenv("BRIG_THEME", "")
	t.Setenv("BRIG_COLOR_ERROR", "")

	got := LoadColorConfig(map[string]string{"theme": "mono-dark"})
	if got != Themes["mono-dark"] {
		t.Errorf("theme from config not applied: %+v", got)
	}

	t.Setenv("BRIG_THEME", "contrast-light")
	t.Setenv("BRIG_COLOR_ERROR", "201")
	got = LoadColorConfig(map[string]string{"theme": "mono-dark"})
	if got.Success != Themes["contrast-light"].Success {
		t.Errorf("BRIG_THEME should win over config: %+v", got)
	}
	if got.Error != "201" {
		t.Errorf("BRIG_COLOR_ERROR override not applied: %q", got.Error)
	}

	got = LoadColorConfig(map[string]string{"theme": "no-such-dark"})
	if got.Success != Themes["contrast-light"].Success {
		t.Errorf("env theme should still apply: %+v", got)
	}
}

func TestLoadColorConfig_UnknownThemeFallsBack(t *testing.T) {
	t.Setenv("BRIG_THEME", "")
	got := LoadColorConfig(map[string]string{"theme": "nope-dark"})
	if got != Themes["default-dark"] {
		t.Errorf("unknown theme should fall back to default-dark: %+v", got)
	}
}
