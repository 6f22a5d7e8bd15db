package youtube

import "testing"

func TestParseVideoID(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with extra params", "https://www.youtube.com/watch?list=PLx&v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with timestamp", "https://youtu.be/dQw4w9WgXcQ?t=30", "dQw4w9WgXcQ"},
		{"shorts url", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"live url", "https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"nocookie embed", "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id with whitespace", "  dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
		{"id with underscore and dash", "https://youtu.be/a_b-C1d2E3f", "a_b-C1d2E3f"},
		{"empty", "", ""},
		{"not a video url", "https://www.youtube.com/@somechannel", ""},
		{"playlist only", "https://www.youtube.com/playlist?list=PLx", ""},
		{"id too short", "https://www.youtube.com/watch?v=abc123", ""},
		{"unrelated site", "https://vimeo.com/123456789", ""},
		{"garbage", "not a url at all", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseVideoID(tt.raw); got != tt.want {
				t.Errorf("ParseVideoID(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestIsValidVideoID(t *testing.T) {
	valid := []string{"dQw4w9WgXcQ", "a_b-C1d2E3f", "___________"}
	for _, id := range valid {
		if !IsValidVideoID(id) {
			t.Errorf("IsValidVideoID(%q) = false, want true", id)
		}
	}

	invalid := []string{"", "short", "dQw4w9WgXcQQ", "dQw4w9WgXc!", "dQw4w9WgXc "}
	for _, id := range invalid {
		if IsValidVideoID(id) {
			t.Errorf("IsValidVideoID(%q) = true, want false", id)
		}
	}
}

func TestWatchURL(t *testing.T) {
	got := WatchURL("dQw4w9WgXcQ")
	want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got != want {
		t.Errorf("WatchURL() = %q, want %q", got, want)
	}
}
