// ABOUTME: Tests for bracketed timestamp parsing and formatting
// ABOUTME: Verifies the zero fallback for malformed tokens and round-tripping

package transcript

import "testing"

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"zero", "[00:00:00]", 0},
		{"one of each", "[01:01:01]", 3661},
		{"minutes and seconds", "[00:12:34]", 754},
		{"hours", "[02:00:00]", 7200},
		{"trailing text ignored", "[00:00:10] hello", 10},
		{"missing brackets", "00:00:10", 0},
		{"single digit fields", "[0:0:10]", 0},
		{"garbage", "not a timestamp", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTimestamp(tt.token); got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %d, want %d", tt.token, got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{3661, "01:01:01"},
		{754, "00:12:34"},
		{7325, "02:02:05"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("FormatTimestamp(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	for _, seconds := range []int{0, 1, 59, 60, 3599, 3600, 3661, 86399} {
		formatted := "[" + FormatTimestamp(seconds) + "]"
		if got := ParseTimestamp(formatted); got != seconds {
			t.Errorf("round trip %d -> %q -> %d", seconds, formatted, got)
		}
	}
}
