// ABOUTME: YouTube URL helpers: video id extraction and deep links
// ABOUTME: Handles youtu.be, youtube.com/watch, and embed-style URLs
package util

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIDRe = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ExtractVideoID pulls the video id out of a YouTube URL in any of the
// common formats (youtu.be/ID, youtube.com/watch?v=ID, embed URLs).
func ExtractVideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err == nil {
		if strings.Contains(parsed.Host, "youtu.be") {
			id := strings.TrimPrefix(parsed.Path, "/")
			if i := strings.IndexByte(id, '?'); i >= 0 {
				id = id[:i]
			}
			if id != "" {
				return id, nil
			}
		}
		if strings.Contains(parsed.Host, "youtube.com") {
			if v := parsed.Query().Get("v"); v != "" {
				return v, nil
			}
		}
	}

	if m := videoIDRe.FindStringSubmatch(rawURL); m != nil {
		return m[1], nil
	}

	return "", fmt.Errorf("could not extract video id from URL: %s", rawURL)
}

// WatchURL returns the canonical watch URL for a video, positioned at
// the given offset in seconds.
func WatchURL(videoID string, start int) string {
	return fmt.Sprintf("https://youtube.com/watch?v=%s&t=%d", videoID, start)
}

// DeepLink appends a time-offset parameter to the recording's own URL,
// preserving whatever query string it already carries.
func DeepLink(videoURL string, start int) string {
	sep := "?"
	if strings.Contains(videoURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%st=%d", videoURL, sep, start)
}
