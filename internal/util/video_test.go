// ABOUTME: Tests for YouTube URL parsing and deep link helpers
// ABOUTME: Covers youtu.be, watch, embed, and malformed URL cases

package util

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"short link", "https://youtu.be/BErxU9o_gOk", "BErxU9o_gOk", false},
		{"short link with params", "https://youtu.be/BErxU9o_gOk?si=xyz", "BErxU9o_gOk", false},
		{"watch url", "https://www.youtube.com/watch?v=BErxU9o_gOk", "BErxU9o_gOk", false},
		{"watch url extra params", "https://www.youtube.com/watch?v=BErxU9o_gOk&list=PLx", "BErxU9o_gOk", false},
		{"embed url", "https://www.youtube.com/embed/BErxU9o_gOk", "BErxU9o_gOk", false},
		{"no id", "https://www.youtube.com/", "", true},
		{"unrelated url", "https://example.com/watch?v=nope", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractVideoID(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestWatchURL(t *testing.T) {
	got := WatchURL("abc123def45", 90)
	want := "https://youtube.com/watch?v=abc123def45&t=90"
	if got != want {
		t.Errorf("WatchURL = %q, want %q", got, want)
	}
}

func TestDeepLink(t *testing.T) {
	tests := []struct {
		name string
		url  string
		t    int
		want string
	}{
		{"with query", "https://youtube.com/watch?v=abc", 30, "https://youtube.com/watch?v=abc&t=30"},
		{"without query", "https://youtu.be/abc", 30, "https://youtu.be/abc?t=30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeepLink(tt.url, tt.t); got != tt.want {
				t.Errorf("DeepLink = %q, want %q", got, tt.want)
			}
		})
	}
}
