package summary

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
	usecaseErrors "github.com/vidinsight/vidinsight/internal/usecase/errors"
)

// maxSampleLength caps each quoted comment inside the prompt so a handful
// of rambling comments cannot blow the model's context window.
const maxSampleLength = 200

// TextModel is the LLM the generator prompts. The Ollama client satisfies
// it.
type TextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Available(ctx context.Context) bool
}

// bucketFraming maps each summarizable sentiment bucket to the angle the
// prompt asks the model to take.
var bucketFraming = map[entities.SentimentLabel]string{
	entities.SentimentPositive:   "what viewers liked about the video",
	entities.SentimentNegative:   "the concerns and criticisms viewers raised",
	entities.SentimentSuggestion: "what viewers asked for or suggested",
}

// bucketTitles are the display headings shown above each bucket summary.
var bucketTitles = map[entities.SentimentLabel]string{
	entities.SentimentPositive:   "What People Liked",
	entities.SentimentNegative:   "Concerns and Criticisms",
	entities.SentimentSuggestion: "Suggestions for Improvement",
}

// BucketTitle returns the display heading for a summarizable bucket, or ""
// for buckets that are never summarized.
func BucketTitle(label entities.SentimentLabel) string {
	return bucketTitles[label]
}

// Generator writes a short narrative paragraph per sentiment bucket from
// sampled comments.
type Generator struct {
	model  TextModel
	logger *zap.Logger
}

// NewGenerator constructs a bucket summary generator
func NewGenerator(model TextModel, logger *zap.Logger) *Generator {
	return &Generator{
		model:  model,
		logger: logger,
	}
}

// Available reports whether the backing model can currently serve
// requests.
func (g *Generator) Available(ctx context.Context) bool {
	return g.model != nil && g.model.Available(ctx)
}

// Summarize produces the narrative for one sentiment bucket from the given
// comment samples. bucketCount is the full bucket size, which may exceed
// the number of samples.
func (g *Generator) Summarize(ctx context.Context, label entities.SentimentLabel, bucketCount int, samples []string) (string, error) {
	if g.model == nil {
		return "", usecaseErrors.ErrSummarizerUnavailable
	}

	framing, ok := bucketFraming[label]
	if !ok {
		return "", fmt.Errorf("no summary framing for label %s", label)
	}

	text, err := g.model.Generate(ctx, buildPrompt(framing, bucketCount, samples))
	if err != nil {
		return "", fmt.Errorf("failed to generate %s summary: %w", label, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("model returned an empty %s summary", label)
	}

	if g.logger != nil {
		g.logger.Info("✅ Bucket summary generated",
			zap.String("bucket", string(label)),
			zap.Int("sample_count", len(samples)),
			zap.Int("summary_length", len(text)),
		)
	}

	return text, nil
}

func buildPrompt(framing string, bucketCount int, samples []string) string {
	var sb strings.Builder
	sb.WriteString("You are summarizing YouTube comments for the video's creator.\n")
	fmt.Fprintf(&sb, "Write 2-3 plain sentences describing %s, drawn from %d comments.\n", framing, bucketCount)
	sb.WriteString("Mention only points that appear in the comments below.\n\nComments:\n")
	for _, sample := range samples {
		fmt.Fprintf(&sb, "- %s\n", truncateSample(sample))
	}
	return sb.String()
}

func truncateSample(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= maxSampleLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxSampleLength]) + "..."
}
