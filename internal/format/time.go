package format

import (
	"strconv"
	"strings"
	"time"
)

// Formatter renders timestamps using the display_date and display_time
// settings read through get.
type Formatter struct {
	get func(string) (string, bool)
}

// New returns a Formatter backed by a config getter. A nil getter uses
// the built-in defaults.
func New(get func(string) (string, bool)) Formatter {
	if get == nil {
		get = func(string) (string, bool) { return "", false }
	}
	return Formatter{get: get}
}

// DateTime formats a time with both date and time according to config.
// Example output: "23/01/2024 15:04" or "01/23/2024 3:04 PM"
func (f Formatter) DateTime(t time.Time) string {
	return f.Date(t) + " " + f.Time(t)
}

// DateTimeShort formats a time with short date and time (no year).
// Example output: "23/01 15:04" or "01/23 3:04 PM"
func (f Formatter) DateTimeShort(t time.Time) string {
	return f.DateShort(t) + " " + f.Time(t)
}

// Date formats only the date portion.
func (f Formatter) Date(t time.Time) string {
	return t.Format(f.dateLayout())
}

// DateShort formats date without year.
func (f Formatter) DateShort(t time.Time) string {
	return t.Format(f.dateLayoutShort())
}

// Time formats only the time portion.
func (f Formatter) Time(t time.Time) string {
	return t.Format(f.timeLayout(false))
}

// TimeFull formats time with seconds.
func (f Formatter) TimeFull(t time.Time) string {
	return t.Format(f.timeLayout(true))
}

// Full formats with full date and time with seconds.
func (f Formatter) Full(t time.Time) string {
	return f.Date(t) + " " + f.TimeFull(t)
}

func (f Formatter) setting(key, fallback string) string {
	if v, _ := f.get(key); v != "" {
		return v
	}
	return fallback
}

func (f Formatter) dateLayout() string {
	switch display := f.setting("display_date", "Jan 02"); display {
	case "mm/dd/yyyy":
		return "01/02/2006"
	case "yyyy-mm-dd":
		return "2006-01-02"
	case "dd/mm/yyyy":
		return "02/01/2006"
	default:
		// A custom Go layout such as "Jan 02".
		return display
	}
}

func (f Formatter) dateLayoutShort() string {
	switch display := f.setting("display_date", "Jan 02"); display {
	case "mm/dd/yyyy":
		return "01/02"
	case "yyyy-mm-dd":
		return "01-02"
	case "dd/mm/yyyy":
		return "02/01"
	default:
		short := display
		for _, year := range []string{"2006", "/06", "-06", " 06"} {
			short = strings.ReplaceAll(short, year, "")
		}
		short = strings.Trim(strings.TrimSpace(short), "/-")
		if short == "" {
			return "Jan 02"
		}
		return short
	}
}

func (f Formatter) timeLayout(seconds bool) string {
	if f.setting("display_time", "24h") == "12h" {
		if seconds {
			return "3:04:05 PM"
		}
		return "3:04 PM"
	}
	if seconds {
		return "15:04:05"
	}
	return "15:04"
}

// Ago renders how long before now t happened, coarsely: "just now",
// "5m ago", "3h ago", "2d ago". Older times fall back to DateShort.
func (f Formatter) Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d/time.Hour)) + "h ago"
	case d < 7*24*time.Hour:
		return strconv.Itoa(int(d/(24*time.Hour))) + "d ago"
	default:
		return f.DateShort(t)
	}
}
