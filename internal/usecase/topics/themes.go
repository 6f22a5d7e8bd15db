package topics

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Semantic themes for clusters whose keyword extraction comes up empty.
// Detection is substring-based over lowercased text, so multi-word cues
// are allowed.
var themeOrder = []string{
	"sound_quality",
	"production",
	"memories",
	"emotional_impact",
	"lyrics",
	"live_performance",
	"artist_appreciation",
	"new_discovery",
	"constructive_feedback",
	"engagement",
}

var topicThemes = map[string][]string{
	"sound_quality":         {"sound quality", "audio", "mix", "mastering", "bass", "crisp"},
	"production":            {"production", "editing", "camera", "visuals", "effects", "cinematography"},
	"memories":              {"memories", "childhood", "nostalgia", "remember", "grew up"},
	"emotional_impact":      {"cry", "tears", "chills", "goosebumps", "emotional", "moved me"},
	"lyrics":                {"lyrics", "verse", "chorus", "wordplay", "poetry"},
	"live_performance":      {"live", "concert", "performance", "stage", "tour"},
	"artist_appreciation":   {"talented", "underrated", "masterpiece", "legend", "appreciation"},
	"new_discovery":         {"discovered", "algorithm", "recommended", "first time", "stumbled"},
	"constructive_feedback": {"improve", "feedback", "would help", "consider", "advice"},
	"engagement":            {"subscribed", "liked", "playlist", "on repeat", "shared"},
}

var themeDisplayNames = map[string]string{
	"sound_quality":         "Sound Quality",
	"production":            "Production Value",
	"memories":              "Memories & Nostalgia",
	"emotional_impact":      "Emotional Impact",
	"lyrics":                "Lyrics & Writing",
	"live_performance":      "Live Performance",
	"artist_appreciation":   "Creator Appreciation",
	"new_discovery":         "New Discovery",
	"constructive_feedback": "Constructive Feedback",
	"engagement":            "Audience Engagement",
}

// detectTheme returns the best-scoring theme for the text, or "" when no
// cue matches. Iteration follows themeOrder so ties resolve the same way
// every run.
func detectTheme(text string) string {
	lower := strings.ToLower(text)

	best := ""
	bestScore := 0
	for _, theme := range themeOrder {
		score := 0
		for _, cue := range topicThemes[theme] {
			if strings.Contains(lower, cue) {
				score++
			}
		}
		if score > bestScore {
			best = theme
			bestScore = score
		}
	}
	return best
}

// formatThemeName converts a theme key to its display name.
func formatThemeName(theme string) string {
	if name, ok := themeDisplayNames[theme]; ok {
		return name
	}
	return capitalizeWords(strings.ReplaceAll(theme, "_", " "))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
