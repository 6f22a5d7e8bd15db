package topics

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenLength is the shortest token worth clustering on.
const minTokenLength = 3

// stopwords covers English plus the French fillers that show up in the
// comment corpora we analyze, and the YouTube-specific words that appear
// in nearly every comment and carry no topical signal.
var stopwords = buildStopwords(
	// English
	"the", "and", "for", "are", "but", "not", "you", "your", "yours", "all",
	"any", "can", "could", "did", "does", "doing", "down", "each", "few",
	"from", "further", "had", "has", "have", "having", "her", "here", "hers",
	"him", "his", "how", "into", "its", "itself", "just", "more", "most",
	"myself", "nor", "now", "off", "once", "only", "other", "our", "ours",
	"out", "over", "own", "same", "she", "should", "some", "such", "than",
	"that", "their", "theirs", "them", "then", "there", "these", "they",
	"this", "those", "through", "too", "under", "until", "very", "was",
	"were", "what", "when", "where", "which", "while", "who", "whom", "why",
	"will", "with", "would", "about", "above", "after", "again", "against",
	"because", "been", "before", "being", "below", "between", "both",
	"during", "really", "also", "get", "got", "like", "love", "one", "make",
	"made", "makes", "much", "many", "even", "still", "ever", "never",
	"always", "thing", "things", "way", "know", "think", "see", "say",
	"said", "want", "good", "great", "best", "better", "nice", "well",
	"people", "time", "year", "years", "day", "back", "come", "came",
	// French
	"les", "des", "une", "est", "pas", "pour", "que", "qui", "avec", "dans",
	"sur", "plus", "mais", "comme", "tout", "tous", "cette", "votre", "vous",
	"nous", "ils", "elles", "son", "ses", "leur", "fait", "faire", "bien",
	"tres", "très", "merci", "cest", "sont",
	// Platform noise
	"video", "videos", "youtube", "watch", "watching", "watched", "channel",
	"subscribe", "subscribed", "comment", "comments",
)

func buildStopwords(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func isStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// tokenize lowercases the text and returns its letter-only tokens of
// minTokenLength or more, stopwords removed. Accented characters count
// as letters, so French comments tokenize cleanly.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenLength {
			continue
		}
		if _, ok := stopwords[f]; ok {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// validKeywords drops keywords that are too short, stopwords, or all
// digits. Keeps input order.
func validKeywords(keywords []string) []string {
	var valid []string
	for _, kw := range keywords {
		lower := strings.ToLower(kw)
		if _, ok := stopwords[lower]; ok {
			continue
		}
		if utf8.RuneCountInString(kw) < minTokenLength {
			continue
		}
		if isAllDigits(kw) {
			continue
		}
		valid = append(valid, kw)
	}
	return valid
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
