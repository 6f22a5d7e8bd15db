// Package youtube resolves the 11-character video identifier out of the
// URL shapes YouTube hands out (watch, short links, shorts, embeds).
package youtube

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Ordered; first match wins.
	videoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com|youtube-nocookie\.com)/watch\?(?:[^#]*&)?v=([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com|youtube-nocookie\.com)/shorts/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com|youtube-nocookie\.com)/embed/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`(?:youtube\.com|youtube-nocookie\.com)/live/([a-zA-Z0-9_-]{11})`),
	}

	videoIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ParseVideoID extracts the video ID from a YouTube URL. A bare 11-character
// ID is accepted as-is. Returns an empty string when no ID can be resolved.
func ParseVideoID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if videoIDPattern.MatchString(raw) {
		return raw
	}
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(raw); m != nil {
			return m[1]
		}
	}
	return ""
}

// IsValidVideoID reports whether s is a well-formed YouTube video ID.
func IsValidVideoID(s string) bool {
	return videoIDPattern.MatchString(s)
}

// WatchURL returns the canonical watch page URL for a video ID.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
