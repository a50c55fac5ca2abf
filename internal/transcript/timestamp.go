// ABOUTME: Bracketed [HH:MM:SS] timestamp parsing and formatting
// ABOUTME: Parse is total: non-matching input maps to 0 seconds, never an error
package transcript

import (
	"fmt"
	"regexp"
	"strconv"
)

var timestampRe = regexp.MustCompile(`^\[(\d{2}):(\d{2}):(\d{2})\]`)

// ParseTimestamp converts a "[HH:MM:SS]" token to seconds. Input that
// does not match the bracketed form yields 0, keeping segment building
// total over malformed lines.
func ParseTimestamp(token string) int {
	m := timestampRe.FindStringSubmatch(token)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds
}

// FormatTimestamp converts seconds to "HH:MM:SS", zero-padded, without
// brackets.
func FormatTimestamp(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
