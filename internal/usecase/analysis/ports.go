package analysis

import (
	"context"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
	"github.com/vidinsight/vidinsight/internal/usecase/topics"
)

// CommentSource produces video metadata and raw comments for a video ID.
// The yt-dlp client implements it; fakes stand in for it in tests.
type CommentSource interface {
	// FetchMetadata resolves the video's metadata, failing with a
	// not-found or access-denied error for unreachable videos
	FetchMetadata(ctx context.Context, videoID string) (*entities.Video, error)

	// FetchComments returns up to limit top-level comments and replies.
	// Returning fewer than limit is not an error.
	FetchComments(ctx context.Context, videoID string, limit int) ([]*entities.Comment, error)
}

// SentimentClassifier labels a single comment text with exactly one
// sentiment category and a confidence in [0,1].
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (entities.SentimentLabel, float64, error)
}

// AspectTagger reports which of the fixed aspect dimensions a text
// mentions. Tagging is pure string matching and needs no context.
type AspectTagger interface {
	Tag(text string) []entities.AspectType
}

// TopicClusterer groups the batch's comment texts into topics.
type TopicClusterer interface {
	Cluster(ctx context.Context, texts []string) (*topics.ClusterResult, error)
}

// SummaryGenerator writes a short narrative for one sentiment bucket. It
// is optional at analysis time and never blocks pipeline completion.
type SummaryGenerator interface {
	Available(ctx context.Context) bool
	Summarize(ctx context.Context, label entities.SentimentLabel, bucketCount int, samples []string) (string, error)
}

// SnapshotStore archives the run's annotated comment batch as a JSON
// object. Upload failures are logged and never fail the run.
type SnapshotStore interface {
	UploadJSON(ctx context.Context, objectName string, v any) (string, error)
}

// ProgressSink receives ordered progress events during a run. A nil sink
// is valid and only costs observability.
type ProgressSink func(event entities.ProgressEvent)

// RunRequest describes one analysis run.
type RunRequest struct {
	URL         string
	MaxComments int
	EnableAI    bool
}
