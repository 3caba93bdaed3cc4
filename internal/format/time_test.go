package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testTime is a fixed time for consistent test results
var testTime = time.Date(2024, 1, 23, 15, 4, 5, 0, time.UTC)

func withConfig(values map[string]string) Formatter {
	return New(func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	})
}

func TestDateTime_Defaults(t *testing.T) {
	f := New(nil)

	require.Equal(t, "Jan 23 15:04", f.DateTime(testTime))
	require.Equal(t, "Jan 23 15:04", f.DateTimeShort(testTime))
	require.Equal(t, "Jan 23 15:04:05", f.Full(testTime))
}

func TestDate(t *testing.T) {
	tests := []struct {
		name    string
		display string
		want    string
	}{
		{name: "default format", display: "", want: "Jan 23"},
		{name: "mm/dd/yyyy", display: "mm/dd/yyyy", want: "01/23/2024"},
		{name: "yyyy-mm-dd", display: "yyyy-mm-dd", want: "2024-01-23"},
		{name: "dd/mm/yyyy", display: "dd/mm/yyyy", want: "23/01/2024"},
		{name: "custom Go format", display: "2006/01/02", want: "2024/01/23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := withConfig(map[string]string{"display_date": tt.display})
			require.Equal(t, tt.want, f.Date(testTime))
		})
	}
}

func TestDateShort(t *testing.T) {
	tests := []struct {
		display string
		want    string
	}{
		{display: "mm/dd/yyyy", want: "01/23"},
		{display: "yyyy-mm-dd", want: "01-23"},
		{display: "dd/mm/yyyy", want: "23/01"},
		{display: "02/01/2006", want: "23/01"},
		{display: "Jan 02 2006", want: "Jan 23"},
		{display: "2006", want: "Jan 23"},
	}

	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			f := withConfig(map[string]string{"display_date": tt.display})
			require.Equal(t, tt.want, f.DateShort(testTime))
		})
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		display  string
		wantTime string
		wantFull string
	}{
		{display: "24h", wantTime: "15:04", wantFull: "15:04:05"},
		{display: "12h", wantTime: "3:04 PM", wantFull: "3:04:05 PM"},
		{display: "", wantTime: "15:04", wantFull: "15:04:05"},
		{display: "bogus", wantTime: "15:04", wantFull: "15:04:05"},
	}

	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			f := withConfig(map[string]string{"display_time": tt.display})
			require.Equal(t, tt.wantTime, f.Time(testTime))
			require.Equal(t, tt.wantFull, f.TimeFull(testTime))
		})
	}
}

func TestDateTime_WithMorningTime(t *testing.T) {
	morning := time.Date(2024, 1, 23, 9, 5, 0, 0, time.UTC)
	f := withConfig(map[string]string{"display_time": "12h"})

	require.Equal(t, "Jan 23 9:05 AM", f.DateTime(morning))
}

func TestAgo(t *testing.T) {
	f := New(nil)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{ago: 10 * time.Second, want: "just now"},
		{ago: 5 * time.Minute, want: "5m ago"},
		{ago: 3 * time.Hour, want: "3h ago"},
		{ago: 50 * time.Hour, want: "2d ago"},
		{ago: 30 * 24 * time.Hour, want: "Dec 24"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, f.Ago(testTime.Add(-tt.ago), testTime))
		})
	}
}
