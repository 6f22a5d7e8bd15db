package sentiment

import (
	"context"
	"strings"

	"github.com/jonreiter/govader"
	"go.uber.org/zap"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
)

const (
	// VADER compound thresholds separating polar from neutral text.
	positiveThreshold = 0.2
	negativeThreshold = -0.2

	// Lexical suggestion matches bypass the model entirely.
	suggestionConfidence = 0.9
)

// zeroShotLabels are the candidate labels sent to the remote model.
// Suggestion is deliberately absent: it is a lexical category, not a
// polarity the model votes on.
var zeroShotLabels = []string{"positive", "negative", "neutral"}

// ZeroShotModel classifies text against candidate labels and returns the
// top label with its score.
type ZeroShotModel interface {
	Classify(ctx context.Context, text string, labels []string) (string, float64, error)
}

// Classifier assigns exactly one sentiment label per comment. Suggestion
// cues win first; otherwise the remote zero-shot model decides when
// configured, with the local VADER lexicon as the always-available
// fallback.
type Classifier struct {
	model  ZeroShotModel
	vader  *govader.SentimentIntensityAnalyzer
	logger *zap.Logger
}

// NewClassifier creates a Classifier. model may be nil, in which case
// classification is fully local.
func NewClassifier(model ZeroShotModel, logger *zap.Logger) *Classifier {
	return &Classifier{
		model:  model,
		vader:  govader.NewSentimentIntensityAnalyzer(),
		logger: logger,
	}
}

// Classify returns the sentiment label and confidence for a single comment.
//
// Empty or whitespace-only text is neutral with confidence 0 and never
// reaches a model. The returned error is always nil today; it stays in the
// signature so callers treat classification as fallible.
func (c *Classifier) Classify(ctx context.Context, text string) (entities.SentimentLabel, float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return entities.SentimentNeutral, 0, nil
	}

	if IsSuggestion(trimmed) {
		return entities.SentimentSuggestion, suggestionConfidence, nil
	}

	if c.model != nil {
		label, score, err := c.model.Classify(ctx, trimmed, zeroShotLabels)
		if err == nil {
			if parsed := entities.SentimentLabel(label); parsed.Valid() && parsed != entities.SentimentSuggestion {
				return parsed, score, nil
			}
		}
		if c.logger != nil {
			c.logger.Warn("zero-shot classification failed, falling back to lexicon",
				zap.Error(err),
			)
		}
	}

	return c.classifyLocal(trimmed)
}

// classifyLocal scores the text with VADER. Compound scores inside the
// neutral band map to neutral; confidence reflects distance from the band.
func (c *Classifier) classifyLocal(text string) (entities.SentimentLabel, float64, error) {
	scores := c.vader.PolarityScores(text)
	compound := scores.Compound

	switch {
	case compound >= positiveThreshold:
		return entities.SentimentPositive, abs(compound), nil
	case compound <= negativeThreshold:
		return entities.SentimentNegative, abs(compound), nil
	default:
		return entities.SentimentNeutral, 1 - abs(compound), nil
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
