package sentiment

import "regexp"

// Suggestion cues are checked before any model runs. A comment asking for
// something is a suggestion even when its wording scores as positive or
// negative, so the lexical pass wins.
var suggestionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\byou (should|could)\b`),
	regexp.MustCompile(`(?i)\b(please|pls)\b`),
	regexp.MustCompile(`(?i)\bwould be (nice|great|awesome)\b`),
	regexp.MustCompile(`(?i)\bi (wish|hope|suggest)\b`),
	regexp.MustCompile(`(?i)\b(can|could) you\b`),
	regexp.MustCompile(`(?i)\bnext video\b`),
	regexp.MustCompile(`(?i)\bfor next time\b`),
	regexp.MustCompile(`(?i)\bfeature request\b`),
	regexp.MustCompile(`(?i)\bsuggestion\b`),
	regexp.MustCompile(`(?i)\bpourriez-vous\b`),
	regexp.MustCompile(`(?i)\bce serait bien\b`),
	regexp.MustCompile(`(?i)\bje (propose|suggere)\b`),
}

// IsSuggestion reports whether the text carries a request or improvement
// cue. Matching is case-insensitive and word-bounded.
func IsSuggestion(text string) bool {
	for _, p := range suggestionPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
