package aspects

import (
	"regexp"
	"strings"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
)

// cueSet holds the lexical cues for one aspect. Exact cues match whole
// words only; stem cues tolerate inflected endings ("edit" covers
// "editing" and "edited").
type cueSet struct {
	exact []string
	stems []string
}

var aspectCues = map[entities.AspectType]cueSet{
	entities.AspectContent: {
		stems: []string{"content", "topic", "subject", "tutorial", "example", "explain", "explanation", "information", "detail", "depth"},
	},
	entities.AspectAudio: {
		exact: []string{"mic"},
		stems: []string{"audio", "sound", "microphone", "volume", "music", "voice", "noise", "echo"},
	},
	entities.AspectProduction: {
		exact: []string{"b-roll"},
		stems: []string{"production", "edit", "camera", "lighting", "visual", "graphic", "quality", "resolution", "thumbnail", "transition"},
	},
	entities.AspectPacing: {
		stems: []string{"pacing", "pace", "speed", "slow", "fast", "rushed", "length", "long", "short", "drag"},
	},
	entities.AspectPresenter: {
		exact: []string{"host", "hosts"},
		stems: []string{"presenter", "speaker", "energy", "charisma", "personality", "accent", "delivery"},
	},
}

// Tagger maps comment text to the fixed aspect set. Matching is
// case-insensitive with word boundaries; zero matches is the common case.
type Tagger struct {
	patterns map[entities.AspectType]*regexp.Regexp
}

// NewTagger compiles one matcher per aspect from the cue table.
func NewTagger() *Tagger {
	patterns := make(map[entities.AspectType]*regexp.Regexp, len(aspectCues))
	for aspect, cues := range aspectCues {
		patterns[aspect] = compileCues(cues)
	}
	return &Tagger{patterns: patterns}
}

// Tag returns every aspect the text mentions, in the fixed enum order so
// output is deterministic. No failure mode: unmatched text yields nil.
func (t *Tagger) Tag(text string) []entities.AspectType {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var matched []entities.AspectType
	for _, aspect := range entities.AllAspects() {
		if t.patterns[aspect].MatchString(text) {
			matched = append(matched, aspect)
		}
	}
	return matched
}

func compileCues(cues cueSet) *regexp.Regexp {
	var alternatives []string
	for _, cue := range cues.exact {
		alternatives = append(alternatives, `\b`+regexp.QuoteMeta(cue)+`\b`)
	}
	for _, cue := range cues.stems {
		alternatives = append(alternatives, `\b`+regexp.QuoteMeta(cue)+`\w*`)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(alternatives, "|"))
}
