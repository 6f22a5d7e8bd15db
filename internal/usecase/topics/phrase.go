package topics

import (
	"sort"
	"strings"
)

// Theme indicator words that make a cluster name descriptive enough to
// serve as its phrase directly.
var themeIndicators = []string{
	"quality", "memories", "emotional", "lyrics", "performance",
	"appreciation", "discovery", "feedback", "production", "engagement",
}

const (
	maxPhraseSamples = 10
	fallbackPhrase   = "General Discussion"
)

// generateTopicPhrase builds a short human-readable phrase for a cluster.
//
// Strategy, in order: reuse a descriptive theme name, promote the most
// frequent bigram from the sample texts, fall back to the top keyword.
func generateTopicPhrase(name string, keywords []string, sampleTexts []string) string {
	if name != "" && !strings.HasPrefix(strings.ToLower(name), "topic ") && len(name) > 3 {
		lower := strings.ToLower(name)
		for _, indicator := range themeIndicators {
			if strings.Contains(lower, indicator) {
				return name
			}
		}
	}

	if len(sampleTexts) >= 2 {
		if bigram := topBigram(sampleTexts); bigram != "" {
			return capitalizeWords(bigram)
		}
	}

	for _, kw := range keywords {
		if !isStopword(kw) {
			return capitalize(kw)
		}
	}

	if name != "" {
		return capitalize(name)
	}

	return fallbackPhrase
}

// topBigram returns the most frequent bigram of valid tokens across the
// first maxPhraseSamples texts, requiring at least two occurrences.
// Ties resolve by lexicographic order for determinism.
func topBigram(texts []string) string {
	if len(texts) > maxPhraseSamples {
		texts = texts[:maxPhraseSamples]
	}

	counts := make(map[string]int)
	for _, text := range texts {
		words := tokenize(text)
		for i := 0; i+1 < len(words); i++ {
			counts[words[i]+" "+words[i+1]]++
		}
	}

	bigrams := make([]string, 0, len(counts))
	for bigram, count := range counts {
		if count >= 2 {
			bigrams = append(bigrams, bigram)
		}
	}
	if len(bigrams) == 0 {
		return ""
	}

	sort.Slice(bigrams, func(i, j int) bool {
		if counts[bigrams[i]] != counts[bigrams[j]] {
			return counts[bigrams[i]] > counts[bigrams[j]]
		}
		return bigrams[i] < bigrams[j]
	})
	return bigrams[0]
}
