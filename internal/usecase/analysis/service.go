package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
	"github.com/vidinsight/vidinsight/internal/domain/repositories"
	"github.com/vidinsight/vidinsight/internal/infrastructure/cache"
	usecaseErrors "github.com/vidinsight/vidinsight/internal/usecase/errors"
	"github.com/vidinsight/vidinsight/internal/usecase/insights"
	"github.com/vidinsight/vidinsight/internal/usecase/topics"
	"github.com/vidinsight/vidinsight/pkg/config"
	"github.com/vidinsight/vidinsight/pkg/runcontext"
	"github.com/vidinsight/vidinsight/pkg/youtube"
)

const (
	runLockKeyPrefix   = "analysis:lock:"
	videoMetaKeyPrefix = "video:meta:"
	videoMetaTTL       = time.Hour
)

// stagePercents fixes the progress reported when each stage begins.
var stagePercents = map[entities.Stage]int{
	entities.StageValidating:         5,
	entities.StageFetchingMetadata:   10,
	entities.StageExtractingComments: 30,
	entities.StageAnalyzingSentiment: 55,
	entities.StageDetectingTopics:    75,
	entities.StageGeneratingInsights: 90,
	entities.StageComplete:           100,
}

// Service drives the analysis pipeline and serves stored results
type Service interface {
	// Analyze runs the full pipeline for one video and returns the
	// assembled result. Progress events stream to sink as stages begin.
	Analyze(ctx context.Context, req RunRequest, sink ProgressSink) (*entities.AnalysisResult, error)

	// GetAnalysis loads a stored analysis with its video and topics
	GetAnalysis(ctx context.Context, id uuid.UUID) (*entities.Analysis, error)

	// ListAnalyses pages through past analyses, most recent first
	ListAnalyses(ctx context.Context, videoID *uuid.UUID, limit, offset int) ([]*entities.Analysis, int64, error)

	// DeleteAnalysis removes a stored analysis and its dependent rows
	DeleteAnalysis(ctx context.Context, id uuid.UUID) error
}

type analysisService struct {
	videoRepo    repositories.VideoRepository
	commentRepo  repositories.CommentRepository
	analysisRepo repositories.AnalysisRepository
	source       CommentSource
	classifier   SentimentClassifier
	tagger       AspectTagger
	clusterer    TopicClusterer
	summarizer   SummaryGenerator
	aggregator   *insights.Aggregator
	store        cache.Store
	snapshots    SnapshotStore
	cfg          *config.Config
	logger       *zap.Logger
}

// NewAnalysisService constructs the pipeline service. summarizer and
// snapshots may be nil when those integrations are disabled.
func NewAnalysisService(
	videoRepo repositories.VideoRepository,
	commentRepo repositories.CommentRepository,
	analysisRepo repositories.AnalysisRepository,
	source CommentSource,
	classifier SentimentClassifier,
	tagger AspectTagger,
	clusterer TopicClusterer,
	summarizer SummaryGenerator,
	store cache.Store,
	snapshots SnapshotStore,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &analysisService{
		videoRepo:    videoRepo,
		commentRepo:  commentRepo,
		analysisRepo: analysisRepo,
		source:       source,
		classifier:   classifier,
		tagger:       tagger,
		clusterer:    clusterer,
		summarizer:   summarizer,
		aggregator:   insights.NewAggregator(logger),
		store:        store,
		snapshots:    snapshots,
		cfg:          cfg,
		logger:       logger,
	}
}

// Analyze walks the stage machine: validating, fetching_metadata,
// extracting_comments, analyzing_sentiment, detecting_topics,
// generating_insights, complete. Transitions are strictly forward; fatal
// errors end the run with an error event, cancellation ends it silently.
func (s *analysisService) Analyze(ctx context.Context, req RunRequest, sink ProgressSink) (*entities.AnalysisResult, error) {
	started := time.Now()
	runID := uuid.New()
	progress := newProgressEmitter(sink, s.logger)

	// Stage: validating
	progress.emit(entities.StageValidating, "Validating video URL")
	videoID := youtube.ParseVideoID(req.URL)
	if videoID == "" {
		return nil, s.fail(progress, usecaseErrors.ErrInvalidVideoURL)
	}

	maxComments := req.MaxComments
	if maxComments <= 0 || maxComments > s.cfg.Pipeline.MaxComments {
		maxComments = s.cfg.Pipeline.MaxComments
	}

	runCtx, cancel := runcontext.RunBegin(ctx, runID, videoID, s.cfg.Pipeline.RunTimeout)
	defer cancel()

	// One run per video at a time. A cache outage downgrades to running
	// without the lock rather than refusing the analysis.
	lockKey := runLockKeyPrefix + videoID
	acquired, err := s.store.SetNX(runCtx, lockKey, runID.String(), s.cfg.Pipeline.RunTimeout)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Run lock unavailable, continuing without it", zap.Error(err))
		}
	} else if !acquired {
		return nil, s.fail(progress, usecaseErrors.ErrRunInProgress)
	} else {
		defer func() {
			// The run context may already be cancelled here.
			_ = s.store.Delete(context.Background(), lockKey)
		}()
	}

	if s.logger != nil {
		s.logger.Info("🚀 Analysis run started",
			zap.String("run_id", runID.String()),
			zap.String("video_id", videoID),
			zap.Int("max_comments", maxComments),
			zap.Bool("ai_summaries", req.EnableAI),
		)
	}

	// Stage: fetching_metadata
	progress.emit(entities.StageFetchingMetadata, "Fetching video metadata")
	video, err := s.fetchMetadata(runCtx, videoID)
	if err != nil {
		return nil, s.fail(progress, s.runErr(runCtx, err))
	}

	// Stage: extracting_comments
	progress.emit(entities.StageExtractingComments, "Extracting comments")
	comments, err := s.extractComments(runCtx, video, maxComments)
	if err != nil {
		return nil, s.fail(progress, s.runErr(runCtx, err))
	}

	if err := runCtx.Err(); err != nil {
		return nil, s.fail(progress, s.runErr(runCtx, err))
	}

	// Stage: analyzing_sentiment
	progress.emit(entities.StageAnalyzingSentiment, fmt.Sprintf("Classifying %d comments", len(comments)))
	failedCount, err := s.classifyComments(runCtx, comments)
	if err != nil {
		return nil, s.fail(progress, s.runErr(runCtx, err))
	}

	// Stage: detecting_topics
	progress.emit(entities.StageDetectingTopics, "Detecting discussion topics")
	clusters, err := s.detectTopics(runCtx, comments)
	if err != nil {
		return nil, s.fail(progress, s.runErr(runCtx, err))
	}

	if err := runCtx.Err(); err != nil {
		return nil, s.fail(progress, s.runErr(runCtx, err))
	}

	// Stage: generating_insights
	progress.emit(entities.StageGeneratingInsights, "Aggregating insights")
	result, err := s.buildResult(runCtx, runID, video, comments, clusters, failedCount, req.EnableAI)
	if err != nil {
		return nil, s.fail(progress, s.runErr(runCtx, err))
	}

	if err := s.persist(runCtx, video, comments, result, time.Since(started)); err != nil {
		return nil, s.fail(progress, s.runErr(runCtx, err))
	}

	progress.emit(entities.StageComplete, "Analysis complete")
	if s.logger != nil {
		s.logger.Info("✅ Analysis run finished",
			zap.String("run_id", runID.String()),
			zap.String("video_id", videoID),
			zap.Int("total_comments", result.TotalComments),
			zap.Int("topics", len(result.Topics)),
			zap.Int("failed_classifications", result.FailedClassifications),
			zap.Duration("took", time.Since(started)),
		)
	}

	return result, nil
}

// GetAnalysis loads a stored analysis with its video and topics attached
func (s *analysisService) GetAnalysis(ctx context.Context, id uuid.UUID) (*entities.Analysis, error) {
	record, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, usecaseErrors.ErrAnalysisNotFound
	}

	if video, err := s.videoRepo.FindByID(ctx, record.VideoID); err == nil && video != nil {
		record.Video = video
	}

	topicRows, err := s.analysisRepo.FindTopics(ctx, id)
	if err != nil {
		return nil, err
	}
	record.Topics = make([]entities.Topic, len(topicRows))
	for i, t := range topicRows {
		record.Topics[i] = *t
	}

	return record, nil
}

// ListAnalyses pages through stored analyses, most recent first
func (s *analysisService) ListAnalyses(ctx context.Context, videoID *uuid.UUID, limit, offset int) ([]*entities.Analysis, int64, error) {
	if limit <= 0 {
		limit = s.cfg.Pipeline.HistoryLimit
	}
	if limit > s.cfg.Pipeline.MaxHistoryLimit {
		limit = s.cfg.Pipeline.MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := s.analysisRepo.List(ctx, repositories.AnalysisFilters{
		VideoID: videoID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, 0, err
	}

	// History rows carry their video so listings can show titles without
	// a second round trip.
	seen := make(map[uuid.UUID]*entities.Video)
	for _, record := range records {
		if video, ok := seen[record.VideoID]; ok {
			record.Video = video
			continue
		}
		video, err := s.videoRepo.FindByID(ctx, record.VideoID)
		if err != nil {
			continue
		}
		seen[record.VideoID] = video
		record.Video = video
	}

	return records, total, nil
}

// DeleteAnalysis removes a stored analysis
func (s *analysisService) DeleteAnalysis(ctx context.Context, id uuid.UUID) error {
	record, err := s.analysisRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return usecaseErrors.ErrAnalysisNotFound
	}
	return s.analysisRepo.Delete(ctx, id)
}

// fetchMetadata resolves video metadata, preferring the cache snapshot
// from a recent run over another yt-dlp call.
func (s *analysisService) fetchMetadata(ctx context.Context, videoID string) (*entities.Video, error) {
	stageCtx, cancel := runcontext.StageBegin(ctx, string(entities.StageFetchingMetadata), s.cfg.Pipeline.StageTimeout)
	defer cancel()

	if raw, ok, _ := s.store.Get(stageCtx, videoMetaKeyPrefix+videoID); ok {
		var cached entities.Video
		if err := json.Unmarshal([]byte(raw), &cached); err == nil && cached.ID != uuid.Nil {
			if s.logger != nil {
				s.logger.Info("📦 Video metadata served from cache", zap.String("video_id", videoID))
			}
			return &cached, nil
		}
	}

	video, err := s.source.FetchMetadata(stageCtx, videoID)
	if err != nil {
		return nil, err
	}

	// Re-running a video must keep the stored row's identity so older
	// analyses and comments stay attached to it.
	existing, err := s.videoRepo.FindByExternalID(stageCtx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up video: %w", err)
	}
	if existing != nil {
		video.ID = existing.ID
		video.CreatedAt = existing.CreatedAt
	}

	if err := s.videoRepo.Upsert(stageCtx, video); err != nil {
		return nil, fmt.Errorf("failed to store video metadata: %w", err)
	}

	if raw, err := json.Marshal(video); err == nil {
		_ = s.store.Set(stageCtx, videoMetaKeyPrefix+videoID, string(raw), videoMetaTTL)
	}

	return video, nil
}

// extractComments pulls the raw comment batch and enforces the minimum
// analyzable count. Getting fewer comments than requested is fine; getting
// fewer than the floor is fatal.
func (s *analysisService) extractComments(ctx context.Context, video *entities.Video, limit int) ([]*entities.Comment, error) {
	stageCtx, cancel := runcontext.StageBegin(ctx, string(entities.StageExtractingComments), s.cfg.Pipeline.StageTimeout)
	defer cancel()

	comments, err := s.source.FetchComments(stageCtx, video.ExternalID, limit)
	if err != nil {
		return nil, err
	}

	for _, c := range comments {
		c.VideoID = video.ID
	}

	if len(comments) < s.cfg.Pipeline.MinComments {
		return nil, fmt.Errorf("%w: got %d, need at least %d",
			usecaseErrors.ErrTooFewComments, len(comments), s.cfg.Pipeline.MinComments)
	}

	if s.logger != nil {
		s.logger.Info("💬 Comments extracted",
			zap.String("video_id", video.ExternalID),
			zap.Int("count", len(comments)),
		)
	}

	return comments, nil
}

// classifyComments labels and aspect-tags every comment concurrently.
// Workers write to disjoint comments, so the channel is the only
// synchronization; the worker count doubles as the concurrency gate on
// the shared model. A failed classification degrades that comment to
// neutral with zero confidence and is counted, never surfaced.
func (s *analysisService) classifyComments(ctx context.Context, comments []*entities.Comment) (int, error) {
	stageCtx, cancel := runcontext.StageBegin(ctx, string(entities.StageAnalyzingSentiment), s.cfg.Pipeline.StageTimeout)
	defer cancel()

	workers := s.cfg.Pipeline.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(comments) {
		workers = len(comments)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var failed atomic.Int64

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				c := comments[idx]
				err := runcontext.Guard(stageCtx, func(gctx context.Context) error {
					label, confidence, err := s.classifier.Classify(gctx, c.Text)
					if err != nil {
						return err
					}
					c.SetSentiment(label, confidence)
					return nil
				})
				if err != nil {
					if stageCtx.Err() != nil {
						continue // run is ending; the comment stays unlabeled
					}
					failed.Add(1)
					c.SetSentiment(entities.SentimentNeutral, 0)
					if s.logger != nil {
						s.logger.Warn("⚠️ Comment classification failed, counted as neutral",
							zap.String("comment_id", c.ExternalID),
							zap.Error(err),
						)
					}
				}
				c.Aspects = s.tagger.Tag(c.Text)
			}
		}()
	}

feed:
	for i := range comments {
		select {
		case <-stageCtx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := stageCtx.Err(); err != nil {
		return int(failed.Load()), err
	}
	return int(failed.Load()), nil
}

// detectTopics clusters the batch. Clustering is degradable: when the
// model is unavailable the run proceeds with zero topics.
func (s *analysisService) detectTopics(ctx context.Context, comments []*entities.Comment) (*topics.ClusterResult, error) {
	stageCtx, cancel := runcontext.StageBegin(ctx, string(entities.StageDetectingTopics), s.cfg.Pipeline.StageTimeout)
	defer cancel()

	texts := make([]string, len(comments))
	for i, c := range comments {
		texts[i] = c.Text
	}

	clusters, err := s.clusterer.Cluster(stageCtx, texts)
	if err != nil {
		if stageCtx.Err() != nil {
			return nil, err
		}
		if s.logger != nil {
			s.logger.Warn("⚠️ Clustering unavailable, continuing without topics", zap.Error(err))
		}
		return nil, nil
	}

	return clusters, nil
}

// buildResult runs the aggregation join barrier: classification, tagging
// and clustering are all complete when this is called.
func (s *analysisService) buildResult(
	ctx context.Context,
	runID uuid.UUID,
	video *entities.Video,
	comments []*entities.Comment,
	clusters *topics.ClusterResult,
	failedCount int,
	enableAI bool,
) (*entities.AnalysisResult, error) {
	stageCtx, cancel := runcontext.StageBegin(ctx, string(entities.StageGeneratingInsights), s.cfg.Pipeline.StageTimeout)
	defer cancel()

	baseline := s.healthBaseline(stageCtx, video.ID)

	// Aggregation operates on normalized data and should not fault; any
	// panic here means partial aggregates, which are not trustworthy.
	var built *insights.Insights
	if err := runcontext.Guard(stageCtx, func(context.Context) error {
		built = s.aggregator.Build(comments, clusters, baseline)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrAggregationFailed, err)
	}

	return &entities.AnalysisResult{
		ID:                    runID,
		VideoID:               video.ExternalID,
		TotalComments:         len(comments),
		AnalyzedAt:            time.Now().UTC(),
		Sentiment:             built.Sentiment,
		Topics:                built.Topics,
		AspectStats:           built.AspectStats,
		Health:                built.Health,
		Recommendations:       built.Recommendations,
		Summaries:             s.generateSummaries(stageCtx, comments, built.Sentiment, enableAI),
		FailedClassifications: failedCount,
	}, nil
}

// healthBaseline loads the previous run's health score for the trend
// comparison. Any failure here only costs the trend signal.
func (s *analysisService) healthBaseline(ctx context.Context, videoID uuid.UUID) *entities.HealthScore {
	prev, err := s.analysisRepo.FindLatestByVideoID(ctx, videoID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Could not load previous analysis for trend", zap.Error(err))
		}
		return nil
	}
	if prev == nil {
		return nil
	}
	return &prev.Health
}

// generateSummaries writes the positive, negative and suggestion bucket
// narratives. A nil map means generation was disabled or the model is
// down; a nil entry means that bucket was attempted and failed.
func (s *analysisService) generateSummaries(
	ctx context.Context,
	comments []*entities.Comment,
	sentiment entities.SentimentSummary,
	enabled bool,
) map[entities.SentimentLabel]*string {
	if !enabled || s.summarizer == nil {
		return nil
	}
	if !s.summarizer.Available(ctx) {
		if s.logger != nil {
			s.logger.Warn("⚠️ Summary model unavailable, skipping summaries")
		}
		return nil
	}

	out := make(map[entities.SentimentLabel]*string)
	for _, label := range []entities.SentimentLabel{
		entities.SentimentPositive,
		entities.SentimentNegative,
		entities.SentimentSuggestion,
	} {
		count := sentiment.Count(label)
		if count == 0 {
			continue
		}

		text, err := s.summarizer.Summarize(ctx, label, count, sampleTexts(comments, label, s.cfg.Pipeline.SummarySamples))
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Bucket summary failed",
					zap.String("bucket", string(label)),
					zap.Error(err),
				)
			}
			out[label] = nil
			continue
		}
		out[label] = &text
	}

	return out
}

// persist stores the annotated comments, the analysis row, its topics and
// the topic-comment memberships, then archives a snapshot.
func (s *analysisService) persist(
	ctx context.Context,
	video *entities.Video,
	comments []*entities.Comment,
	result *entities.AnalysisResult,
	took time.Duration,
) error {
	if err := s.commentRepo.ReplaceForVideo(ctx, video.ID, comments); err != nil {
		return fmt.Errorf("failed to store comments: %w", err)
	}

	record := entities.NewAnalysis(video.ID, result, took)

	topicRows := make([]*entities.Topic, 0, len(result.Topics))
	var memberships []*entities.TopicComment
	for i := range result.Topics {
		t := &result.Topics[i]
		t.ID = uuid.New()
		t.AnalysisID = record.ID
		topicRows = append(topicRows, t)
		for _, idx := range t.MemberIndexes {
			if idx < 0 || idx >= len(comments) {
				continue
			}
			memberships = append(memberships, &entities.TopicComment{
				TopicID:   t.ID,
				CommentID: comments[idx].ID,
			})
		}
	}

	if err := s.analysisRepo.Create(ctx, record, topicRows, memberships); err != nil {
		return fmt.Errorf("failed to store analysis: %w", err)
	}

	// Archive the annotated comment batch for later reprocessing. Losing
	// the snapshot never fails the run.
	if s.snapshots != nil {
		object := fmt.Sprintf("comments/%s/%s.json", video.ExternalID, result.ID)
		location, err := s.snapshots.UploadJSON(ctx, object, comments)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Comment snapshot upload failed", zap.Error(err))
			}
		} else if s.logger != nil {
			s.logger.Info("📦 Comment batch archived", zap.String("object", location))
		}
	}

	return nil
}

// runErr maps context failures onto the run outcome, keeping user
// cancellation distinct from the run deadline.
func (s *analysisService) runErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return usecaseErrors.ErrRunCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return usecaseErrors.ErrRunTimeout
	default:
		return err
	}
}

// fail reports a fatal run outcome. Cancellation is a distinct outcome
// and deliberately emits no error event.
func (s *analysisService) fail(progress *progressEmitter, err error) error {
	if errors.Is(err, usecaseErrors.ErrRunCancelled) {
		if s.logger != nil {
			s.logger.Info("🛑 Analysis run cancelled")
		}
		return err
	}

	progress.emit(entities.StageError, err.Error())
	if s.logger != nil {
		s.logger.Error("❌ Analysis run failed", zap.Error(err))
	}
	return err
}

// sampleTexts picks the first limit comment texts carrying the label.
func sampleTexts(comments []*entities.Comment, label entities.SentimentLabel, limit int) []string {
	samples := make([]string, 0, limit)
	for _, c := range comments {
		if c.Label() != label {
			continue
		}
		samples = append(samples, c.Text)
		if len(samples) == limit {
			break
		}
	}
	return samples
}

// progressEmitter serializes progress reporting for one run and keeps the
// reported percent monotonically non-decreasing. The error stage carries
// the last percent reached.
type progressEmitter struct {
	sink   ProgressSink
	logger *zap.Logger
	last   int
}

func newProgressEmitter(sink ProgressSink, logger *zap.Logger) *progressEmitter {
	return &progressEmitter{sink: sink, logger: logger}
}

func (p *progressEmitter) emit(stage entities.Stage, message string) {
	percent, ok := stagePercents[stage]
	if !ok || percent < p.last {
		percent = p.last
	}
	p.last = percent

	if p.sink != nil {
		p.sink(entities.ProgressEvent{Stage: stage, Message: message, Percent: percent})
	}
	if p.logger != nil {
		p.logger.Info("📊 Pipeline progress",
			zap.String("stage", string(stage)),
			zap.Int("percent", percent),
			zap.String("message", message),
		)
	}
}
