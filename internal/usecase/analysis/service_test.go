package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
	"github.com/vidinsight/vidinsight/internal/domain/repositories"
	"github.com/vidinsight/vidinsight/internal/infrastructure/cache"
	usecaseErrors "github.com/vidinsight/vidinsight/internal/usecase/errors"
	"github.com/vidinsight/vidinsight/internal/usecase/topics"
	"github.com/vidinsight/vidinsight/pkg/config"
)

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

type fakeSource struct {
	comments []*entities.Comment
	metaErr  error
	fetchErr error
}

func (f *fakeSource) FetchMetadata(_ context.Context, videoID string) (*entities.Video, error) {
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	v := entities.NewVideo(videoID)
	v.Title = "Test Video"
	v.ChannelName = "Test Channel"
	return v, nil
}

func (f *fakeSource) FetchComments(_ context.Context, _ string, limit int) ([]*entities.Comment, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if len(f.comments) > limit {
		return f.comments[:limit], nil
	}
	return f.comments, nil
}

// fakeClassifier labels by text prefix and can be told to fail for exact
// texts. Safe for concurrent workers.
type fakeClassifier struct {
	failTexts map[string]bool
	calls     atomic.Int64
}

func (f *fakeClassifier) Classify(_ context.Context, text string) (entities.SentimentLabel, float64, error) {
	f.calls.Add(1)
	if f.failTexts[text] {
		return "", 0, errors.New("model offline")
	}
	switch {
	case strings.HasPrefix(text, "love"):
		return entities.SentimentPositive, 0.9, nil
	case strings.HasPrefix(text, "bad"):
		return entities.SentimentNegative, 0.8, nil
	case strings.HasPrefix(text, "please"):
		return entities.SentimentSuggestion, 0.9, nil
	default:
		return entities.SentimentNeutral, 0.6, nil
	}
}

type fakeTagger struct{}

func (fakeTagger) Tag(text string) []entities.AspectType {
	if strings.Contains(text, "audio") {
		return []entities.AspectType{entities.AspectAudio}
	}
	return nil
}

type fakeClusterer struct {
	result *topics.ClusterResult
	err    error
}

func (f *fakeClusterer) Cluster(_ context.Context, texts []string) (*topics.ClusterResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	assignments := make([]int, len(texts))
	for i := range assignments {
		assignments[i] = topics.Unclustered
	}
	return &topics.ClusterResult{Assignments: assignments}, nil
}

type fakeSummarizer struct {
	available bool
	failFor   map[entities.SentimentLabel]bool
}

func (f *fakeSummarizer) Available(context.Context) bool { return f.available }

func (f *fakeSummarizer) Summarize(_ context.Context, label entities.SentimentLabel, count int, _ []string) (string, error) {
	if f.failFor[label] {
		return "", errors.New("summary model error")
	}
	return fmt.Sprintf("%s summary of %d comments", label, count), nil
}

type fakeVideoRepo struct {
	mu     sync.Mutex
	videos map[uuid.UUID]*entities.Video
}

func (f *fakeVideoRepo) Upsert(_ context.Context, v *entities.Video) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.videos == nil {
		f.videos = make(map[uuid.UUID]*entities.Video)
	}
	f.videos[v.ID] = v
	return nil
}

func (f *fakeVideoRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.videos[id], nil
}

func (f *fakeVideoRepo) FindByExternalID(_ context.Context, externalID string) (*entities.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.videos {
		if v.ExternalID == externalID {
			return v, nil
		}
	}
	return nil, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	videoID  uuid.UUID
	replaced []*entities.Comment
}

func (f *fakeCommentRepo) ReplaceForVideo(_ context.Context, videoID uuid.UUID, comments []*entities.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.videoID = videoID
	f.replaced = comments
	return nil
}

func (f *fakeCommentRepo) FindByVideoID(_ context.Context, _ uuid.UUID, _ repositories.CommentFilters) ([]*entities.Comment, int64, error) {
	return f.replaced, int64(len(f.replaced)), nil
}

type fakeAnalysisRepo struct {
	mu          sync.Mutex
	byID        map[uuid.UUID]*entities.Analysis
	latest      *entities.Analysis
	created     *entities.Analysis
	topics      []*entities.Topic
	memberships []*entities.TopicComment
	gotFilters  repositories.AnalysisFilters
}

func (f *fakeAnalysisRepo) Create(_ context.Context, a *entities.Analysis, ts []*entities.Topic, ms []*entities.TopicComment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byID == nil {
		f.byID = make(map[uuid.UUID]*entities.Analysis)
	}
	f.byID[a.ID] = a
	f.created = a
	f.topics = ts
	f.memberships = ms
	return nil
}

func (f *fakeAnalysisRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Analysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id], nil
}

func (f *fakeAnalysisRepo) FindLatestByVideoID(context.Context, uuid.UUID) (*entities.Analysis, error) {
	return f.latest, nil
}

func (f *fakeAnalysisRepo) List(_ context.Context, filters repositories.AnalysisFilters) ([]*entities.Analysis, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotFilters = filters
	return nil, 0, nil
}

func (f *fakeAnalysisRepo) FindTopics(_ context.Context, _ uuid.UUID) ([]*entities.Topic, error) {
	return f.topics, nil
}

func (f *fakeAnalysisRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type fakeSnapshots struct {
	mu      sync.Mutex
	objects []string
}

func (f *fakeSnapshots) UploadJSON(_ context.Context, name string, _ any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects = append(f.objects, name)
	return "https://storage.local/" + name, nil
}

type pipelineFixture struct {
	svc          Service
	source       *fakeSource
	classifier   *fakeClassifier
	clusterer    *fakeClusterer
	summarizer   *fakeSummarizer
	videoRepo    *fakeVideoRepo
	commentRepo  *fakeCommentRepo
	analysisRepo *fakeAnalysisRepo
	snapshots    *fakeSnapshots
	store        cache.Store
}

func testConfig() *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{
			MaxComments:     500,
			MinComments:     5,
			Workers:         4,
			MinClusterSize:  2,
			MaxTopics:       8,
			StageTimeout:    time.Minute,
			RunTimeout:      time.Minute,
			SummarySamples:  20,
			HistoryLimit:    10,
			MaxHistoryLimit: 50,
		},
	}
}

func newFixture(t *testing.T, comments []*entities.Comment) *pipelineFixture {
	t.Helper()

	store := cache.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	f := &pipelineFixture{
		source:       &fakeSource{comments: comments},
		classifier:   &fakeClassifier{},
		clusterer:    &fakeClusterer{},
		summarizer:   &fakeSummarizer{available: true},
		videoRepo:    &fakeVideoRepo{},
		commentRepo:  &fakeCommentRepo{},
		analysisRepo: &fakeAnalysisRepo{},
		snapshots:    &fakeSnapshots{},
		store:        store,
	}
	f.svc = NewAnalysisService(
		f.videoRepo, f.commentRepo, f.analysisRepo,
		f.source, f.classifier, fakeTagger{}, f.clusterer, f.summarizer,
		f.store, f.snapshots, testConfig(), nil,
	)
	return f
}

func commentBatch(texts ...string) []*entities.Comment {
	out := make([]*entities.Comment, len(texts))
	for i, text := range texts {
		out[i] = entities.NewComment(uuid.Nil, fmt.Sprintf("yt-c%d", i), "viewer", text)
	}
	return out
}

func repeatComments(n int, prefix string) []*entities.Comment {
	out := make([]*entities.Comment, n)
	for i := range out {
		out[i] = entities.NewComment(uuid.Nil, fmt.Sprintf("yt-c%d", i), "viewer", fmt.Sprintf("%s %d", prefix, i))
	}
	return out
}

func collectEvents(events *[]entities.ProgressEvent) ProgressSink {
	return func(ev entities.ProgressEvent) {
		*events = append(*events, ev)
	}
}

func TestAnalyze_FullRun(t *testing.T) {
	comments := commentBatch(
		"love the editing here",
		"love this channel",
		"love the deep dive",
		"love it, instant sub",
		"love the topic choice",
		"bad audio in the intro",
		"bad audio again at 5:00",
		"bad audio mix overall",
		"please add subtitles",
		"please add subtitles next time",
		"first",
		"who is here in 2025",
	)
	clusters := &topics.ClusterResult{
		Assignments: []int{-1, -1, -1, -1, -1, 0, 0, 0, 1, 1, -1, -1},
		Keywords:    [][]string{{"audio"}, {"subtitles"}},
		Phrases:     []string{"Audio", "Subtitles"},
		Names:       []string{"Audio", "Subtitles"},
	}
	f := newFixture(t, comments)
	f.clusterer.result = clusters

	var events []entities.ProgressEvent
	result, err := f.svc.Analyze(context.Background(), RunRequest{URL: testURL, EnableAI: true}, collectEvents(&events))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.TotalComments != 12 {
		t.Errorf("TotalComments = %d, want 12", result.TotalComments)
	}
	if got := result.Sentiment.Total(); got != 12 {
		t.Errorf("sentiment counts sum to %d, want 12", got)
	}
	if result.Sentiment.PositiveCount != 5 || result.Sentiment.NegativeCount != 3 ||
		result.Sentiment.SuggestionCount != 2 || result.Sentiment.NeutralCount != 2 {
		t.Errorf("sentiment counts = %+v", result.Sentiment)
	}
	if result.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("VideoID = %q", result.VideoID)
	}

	if len(result.Topics) != 2 {
		t.Fatalf("len(Topics) = %d, want 2", len(result.Topics))
	}
	if result.Topics[0].Name != "Audio" {
		t.Errorf("Topics[0].Name = %q, want Audio (negative topic ranks first)", result.Topics[0].Name)
	}

	// Event order: one event per stage, strictly forward, percent
	// non-decreasing.
	wantStages := []entities.Stage{
		entities.StageValidating,
		entities.StageFetchingMetadata,
		entities.StageExtractingComments,
		entities.StageAnalyzingSentiment,
		entities.StageDetectingTopics,
		entities.StageGeneratingInsights,
		entities.StageComplete,
	}
	if len(events) != len(wantStages) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(wantStages), events)
	}
	for i, ev := range events {
		if ev.Stage != wantStages[i] {
			t.Errorf("events[%d].Stage = %s, want %s", i, ev.Stage, wantStages[i])
		}
		if i > 0 && ev.Percent < events[i-1].Percent {
			t.Errorf("percent decreased at event %d: %d -> %d", i, events[i-1].Percent, ev.Percent)
		}
	}
	if last := events[len(events)-1]; last.Percent != 100 {
		t.Errorf("final percent = %d, want 100", last.Percent)
	}

	// Summaries for the three summarizable buckets.
	if len(result.Summaries) != 3 {
		t.Fatalf("len(Summaries) = %d, want 3", len(result.Summaries))
	}
	pos := result.Summaries[entities.SentimentPositive]
	if pos == nil || !strings.Contains(*pos, "5 comments") {
		t.Errorf("positive summary = %v", pos)
	}

	// Persistence side effects.
	if f.analysisRepo.created == nil {
		t.Fatal("analysis row was not stored")
	}
	if f.analysisRepo.created.TotalComments != 12 {
		t.Errorf("stored TotalComments = %d", f.analysisRepo.created.TotalComments)
	}
	if len(f.analysisRepo.topics) != 2 {
		t.Errorf("stored %d topic rows, want 2", len(f.analysisRepo.topics))
	}
	if len(f.analysisRepo.memberships) != 5 {
		t.Errorf("stored %d memberships, want 5", len(f.analysisRepo.memberships))
	}
	if len(f.commentRepo.replaced) != 12 {
		t.Errorf("stored %d comments, want 12", len(f.commentRepo.replaced))
	}
	for _, c := range f.commentRepo.replaced {
		if c.VideoID != f.commentRepo.videoID {
			t.Fatalf("comment %s not linked to the stored video", c.ExternalID)
		}
	}
	if len(f.snapshots.objects) != 1 || !strings.HasPrefix(f.snapshots.objects[0], "comments/dQw4w9WgXcQ/") {
		t.Errorf("snapshot objects = %v", f.snapshots.objects)
	}
}

func TestAnalyze_ClassifierFailuresDegradeToNeutral(t *testing.T) {
	comments := repeatComments(50, "love take")
	f := newFixture(t, comments)
	f.classifier.failTexts = map[string]bool{
		comments[7].Text:  true,
		comments[21].Text: true,
		comments[33].Text: true,
	}

	result, err := f.svc.Analyze(context.Background(), RunRequest{URL: testURL}, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if result.TotalComments != 50 {
		t.Errorf("TotalComments = %d, want 50", result.TotalComments)
	}
	if result.FailedClassifications != 3 {
		t.Errorf("FailedClassifications = %d, want 3", result.FailedClassifications)
	}
	if result.Sentiment.PositiveCount != 47 || result.Sentiment.NeutralCount != 3 {
		t.Errorf("sentiment counts = %+v", result.Sentiment)
	}
	if got := result.Sentiment.Total(); got != 50 {
		t.Errorf("sentiment counts sum to %d, want 50", got)
	}

	for _, idx := range []int{7, 21, 33} {
		c := comments[idx]
		if c.Label() != entities.SentimentNeutral || c.SentimentConfidence != 0 {
			t.Errorf("comment %d = %s/%.2f, want neutral/0", idx, c.Label(), c.SentimentConfidence)
		}
	}
}

func TestAnalyze_CancelledBetweenStages(t *testing.T) {
	f := newFixture(t, repeatComments(20, "love take"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var events []entities.ProgressEvent
	sink := func(ev entities.ProgressEvent) {
		events = append(events, ev)
		if ev.Stage == entities.StageExtractingComments {
			cancel()
		}
	}

	result, err := f.svc.Analyze(ctx, RunRequest{URL: testURL}, sink)
	if !errors.Is(err, usecaseErrors.ErrRunCancelled) {
		t.Fatalf("Analyze() error = %v, want ErrRunCancelled", err)
	}
	if result != nil {
		t.Error("cancelled run must not produce a result")
	}

	for _, ev := range events {
		if ev.Stage == entities.StageError {
			t.Errorf("error event emitted on cancellation: %+v", ev)
		}
		if ev.Stage.Order() > entities.StageExtractingComments.Order() {
			t.Errorf("stage %s ran after cancellation", ev.Stage)
		}
	}
	if f.classifier.calls.Load() != 0 {
		t.Errorf("classifier was called %d times after cancellation", f.classifier.calls.Load())
	}
	if f.analysisRepo.created != nil {
		t.Error("cancelled run must not persist an analysis")
	}
}

func TestAnalyze_TooFewCommentsIsFatal(t *testing.T) {
	f := newFixture(t, repeatComments(3, "love take"))

	var events []entities.ProgressEvent
	_, err := f.svc.Analyze(context.Background(), RunRequest{URL: testURL}, collectEvents(&events))
	if !errors.Is(err, usecaseErrors.ErrTooFewComments) {
		t.Fatalf("Analyze() error = %v, want ErrTooFewComments", err)
	}

	last := events[len(events)-1]
	if last.Stage != entities.StageError {
		t.Fatalf("last event stage = %s, want error", last.Stage)
	}
	if !strings.Contains(last.Message, "need at least 5") {
		t.Errorf("error message %q does not explain the floor", last.Message)
	}
	if last.Percent != 30 {
		t.Errorf("error event percent = %d, want 30 (last reached)", last.Percent)
	}
}

func TestAnalyze_InvalidURL(t *testing.T) {
	f := newFixture(t, nil)

	var events []entities.ProgressEvent
	_, err := f.svc.Analyze(context.Background(), RunRequest{URL: "https://vimeo.com/12345"}, collectEvents(&events))
	if !errors.Is(err, usecaseErrors.ErrInvalidVideoURL) {
		t.Fatalf("Analyze() error = %v, want ErrInvalidVideoURL", err)
	}
	if last := events[len(events)-1]; last.Stage != entities.StageError {
		t.Errorf("last event stage = %s, want error", last.Stage)
	}
}

func TestAnalyze_VideoNotFoundIsFatal(t *testing.T) {
	f := newFixture(t, nil)
	f.source.metaErr = usecaseErrors.ErrVideoNotFound

	_, err := f.svc.Analyze(context.Background(), RunRequest{URL: testURL}, nil)
	if !errors.Is(err, usecaseErrors.ErrVideoNotFound) {
		t.Fatalf("Analyze() error = %v, want ErrVideoNotFound", err)
	}
}

func TestAnalyze_ClusteringUnavailableMeansNoTopics(t *testing.T) {
	f := newFixture(t, repeatComments(10, "love take"))
	f.clusterer.err = errors.New("embedding service down")

	var events []entities.ProgressEvent
	result, err := f.svc.Analyze(context.Background(), RunRequest{URL: testURL}, collectEvents(&events))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(result.Topics) != 0 {
		t.Errorf("len(Topics) = %d, want 0", len(result.Topics))
	}
	if last := events[len(events)-1]; last.Stage != entities.StageComplete {
		t.Errorf("last event stage = %s, want complete", last.Stage)
	}
}

func TestAnalyze_SummaryBucketFailureIsNull(t *testing.T) {
	f := newFixture(t, commentBatch(
		"love it", "love it so much", "love this one", "love everything",
		"bad audio", "bad lighting",
	))
	f.summarizer.failFor = map[entities.SentimentLabel]bool{entities.SentimentNegative: true}

	result, err := f.svc.Analyze(context.Background(), RunRequest{URL: testURL, EnableAI: true}, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	neg, ok := result.Summaries[entities.SentimentNegative]
	if !ok {
		t.Fatal("negative bucket missing from summaries")
	}
	if neg != nil {
		t.Errorf("negative summary = %q, want nil for a failed bucket", *neg)
	}
	if pos := result.Summaries[entities.SentimentPositive]; pos == nil {
		t.Error("positive summary missing despite healthy model")
	}
}

func TestAnalyze_SummariesDisabled(t *testing.T) {
	f := newFixture(t, repeatComments(6, "love take"))

	result, err := f.svc.Analyze(context.Background(), RunRequest{URL: testURL, EnableAI: false}, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Summaries != nil {
		t.Errorf("Summaries = %v, want nil when AI is disabled", result.Summaries)
	}
}

func TestAnalyze_ConcurrentRunRefused(t *testing.T) {
	f := newFixture(t, repeatComments(10, "love take"))

	if _, err := f.store.SetNX(context.Background(), runLockKeyPrefix+"dQw4w9WgXcQ", "other-run", time.Minute); err != nil {
		t.Fatalf("seeding lock: %v", err)
	}

	_, err := f.svc.Analyze(context.Background(), RunRequest{URL: testURL}, nil)
	if !errors.Is(err, usecaseErrors.ErrRunInProgress) {
		t.Fatalf("Analyze() error = %v, want ErrRunInProgress", err)
	}
}

func TestAnalyze_TrendUsesStoredBaseline(t *testing.T) {
	f := newFixture(t, commentBatch(
		"bad audio here", "bad audio there", "bad audio everywhere",
		"bad audio mix", "bad audio levels",
	))
	f.analysisRepo.latest = &entities.Analysis{
		Health: entities.HealthScore{OverallScore: 90, Trend: entities.TrendStable},
	}

	result, err := f.svc.Analyze(context.Background(), RunRequest{URL: testURL}, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if result.Health.Trend != entities.TrendDeclining {
		t.Errorf("Trend = %s, want declining against a 90 baseline", result.Health.Trend)
	}
}

func TestGetAnalysis_NotFound(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.GetAnalysis(context.Background(), uuid.New())
	if !errors.Is(err, usecaseErrors.ErrAnalysisNotFound) {
		t.Fatalf("GetAnalysis() error = %v, want ErrAnalysisNotFound", err)
	}
}

func TestGetAnalysis_AttachesVideoAndTopics(t *testing.T) {
	f := newFixture(t, repeatComments(6, "love take"))

	result, err := f.svc.Analyze(context.Background(), RunRequest{URL: testURL}, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	record, err := f.svc.GetAnalysis(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("GetAnalysis() error = %v", err)
	}
	if record.Video == nil || record.Video.ExternalID != "dQw4w9WgXcQ" {
		t.Errorf("Video = %+v, want the analyzed video attached", record.Video)
	}
}

func TestListAnalyses_ClampsLimits(t *testing.T) {
	f := newFixture(t, nil)

	if _, _, err := f.svc.ListAnalyses(context.Background(), nil, 0, -3); err != nil {
		t.Fatalf("ListAnalyses() error = %v", err)
	}
	if f.analysisRepo.gotFilters.Limit != 10 || f.analysisRepo.gotFilters.Offset != 0 {
		t.Errorf("filters = %+v, want default limit 10 offset 0", f.analysisRepo.gotFilters)
	}

	if _, _, err := f.svc.ListAnalyses(context.Background(), nil, 500, 20); err != nil {
		t.Fatalf("ListAnalyses() error = %v", err)
	}
	if f.analysisRepo.gotFilters.Limit != 50 {
		t.Errorf("limit = %d, want clamped to 50", f.analysisRepo.gotFilters.Limit)
	}
}

func TestDeleteAnalysis_NotFound(t *testing.T) {
	f := newFixture(t, nil)

	err := f.svc.DeleteAnalysis(context.Background(), uuid.New())
	if !errors.Is(err, usecaseErrors.ErrAnalysisNotFound) {
		t.Fatalf("DeleteAnalysis() error = %v, want ErrAnalysisNotFound", err)
	}
}
