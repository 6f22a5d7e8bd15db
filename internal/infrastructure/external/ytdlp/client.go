package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vidinsight/vidinsight/internal/domain/entities"
	usecaseErrors "github.com/vidinsight/vidinsight/internal/usecase/errors"
	"github.com/vidinsight/vidinsight/pkg/config"
	"github.com/vidinsight/vidinsight/pkg/youtube"
)

// runCmdFunc executes one yt-dlp invocation and returns stdout and stderr
// separately. Injectable so tests never spawn a process.
type runCmdFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// Client shells out to yt-dlp for video metadata, comment extraction and
// search. Transient failures are retried with exponential backoff;
// unavailable or comment-disabled videos fail immediately.
type Client struct {
	binary        string
	timeout       time.Duration
	maxRetries    int
	retryInterval time.Duration
	logger        *zap.Logger
	runCmd        runCmdFunc
}

// NewClient creates a yt-dlp client from configuration
func NewClient(cfg *config.YTDLPConfig, logger *zap.Logger) *Client {
	binary := "yt-dlp"
	timeout := 3 * time.Minute
	maxRetries := 3
	if cfg != nil {
		if cfg.BinaryPath != "" {
			binary = cfg.BinaryPath
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		if cfg.MaxRetries > 0 {
			maxRetries = cfg.MaxRetries
		}
	}

	return &Client{
		binary:        binary,
		timeout:       timeout,
		maxRetries:    maxRetries,
		retryInterval: 2 * time.Second,
		logger:        logger,
		runCmd:        defaultRunCmd,
	}
}

// videoInfo mirrors the yt-dlp --dump-json fields the pipeline consumes.
type videoInfo struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Channel      string        `json:"channel"`
	Uploader     string        `json:"uploader"`
	Duration     float64       `json:"duration"`
	ViewCount    int64         `json:"view_count"`
	CommentCount int64         `json:"comment_count"`
	Thumbnail    string        `json:"thumbnail"`
	Tags         []string      `json:"tags"`
	Comments     []commentInfo `json:"comments"`
}

type commentInfo struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	Author    string  `json:"author"`
	LikeCount int     `json:"like_count"`
	Timestamp float64 `json:"timestamp"`
	Parent    string  `json:"parent"`
}

// searchInfo mirrors one --flat-playlist search hit.
type searchInfo struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Channel    string  `json:"channel"`
	Uploader   string  `json:"uploader"`
	Duration   float64 `json:"duration"`
	ViewCount  int64   `json:"view_count"`
	WebpageURL string  `json:"webpage_url"`
}

func (v *videoInfo) toEntity() *entities.Video {
	video := entities.NewVideo(v.ID)
	video.Title = v.Title
	video.ChannelName = v.Channel
	if video.ChannelName == "" {
		video.ChannelName = v.Uploader
	}
	video.DurationSeconds = int(v.Duration)
	video.ViewCount = v.ViewCount
	video.CommentCount = v.CommentCount
	video.ThumbnailURL = v.Thumbnail
	if len(v.Tags) > 0 {
		if data, err := json.Marshal(v.Tags); err == nil {
			video.Tags = data
		}
	}
	return video
}

// FetchMetadata resolves a video's metadata without touching comments.
func (c *Client) FetchMetadata(ctx context.Context, videoID string) (*entities.Video, error) {
	stdout, err := c.run(ctx,
		"--dump-json",
		"--skip-download",
		"--no-warnings",
		youtube.WatchURL(videoID),
	)
	if err != nil {
		return nil, err
	}

	var info videoInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp metadata: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("🎬 Video metadata fetched",
			zap.String("video_id", info.ID),
			zap.String("title", info.Title),
			zap.Int64("comment_count", info.CommentCount),
		)
	}

	return info.toEntity(), nil
}

// FetchComments extracts up to limit comments, replies included. Reply
// threading is preserved through ParentID; yt-dlp reports top-level
// comments with parent "root", which maps to nil.
func (c *Client) FetchComments(ctx context.Context, videoID string, limit int) ([]*entities.Comment, error) {
	stdout, err := c.run(ctx,
		"--dump-json",
		"--skip-download",
		"--write-comments",
		"--no-warnings",
		"--extractor-args", fmt.Sprintf("youtube:max_comments=%d,all,100,100", limit),
		youtube.WatchURL(videoID),
	)
	if err != nil {
		return nil, err
	}

	var info videoInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	comments := make([]*entities.Comment, 0, len(info.Comments))
	for _, raw := range info.Comments {
		if strings.TrimSpace(raw.Text) == "" {
			continue
		}
		// The caller links comments to its stored video row.
		comment := entities.NewComment(uuid.Nil, raw.ID, raw.Author, raw.Text)
		comment.LikeCount = raw.LikeCount
		if raw.Timestamp > 0 {
			comment.PublishedAt = time.Unix(int64(raw.Timestamp), 0).UTC()
		}
		if raw.Parent != "" && raw.Parent != "root" {
			parent := raw.Parent
			comment.ParentID = &parent
		}
		comments = append(comments, comment)
		if limit > 0 && len(comments) == limit {
			break
		}
	}

	if c.logger != nil {
		c.logger.Info("💬 Comments extracted from yt-dlp",
			zap.String("video_id", videoID),
			zap.Int("count", len(comments)),
		)
	}

	return comments, nil
}

// Search runs a YouTube search and returns lightweight hits. yt-dlp
// prints one JSON object per line in flat-playlist mode.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]*entities.VideoSearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	stdout, err := c.run(ctx,
		"--dump-json",
		"--flat-playlist",
		"--no-warnings",
		fmt.Sprintf("ytsearch%d:%s", limit, query),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrSearchUnavailable, err)
	}

	results := make([]*entities.VideoSearchResult, 0, limit)
	for _, line := range bytes.Split(stdout, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var hit searchInfo
		if err := json.Unmarshal(line, &hit); err != nil {
			if c.logger != nil {
				c.logger.Warn("⚠️ Skipping unparseable search hit", zap.Error(err))
			}
			continue
		}
		channel := hit.Channel
		if channel == "" {
			channel = hit.Uploader
		}
		url := hit.WebpageURL
		if url == "" {
			url = youtube.WatchURL(hit.ID)
		}
		results = append(results, &entities.VideoSearchResult{
			ExternalID:      hit.ID,
			Title:           hit.Title,
			ChannelName:     channel,
			DurationSeconds: int(hit.Duration),
			ViewCount:       hit.ViewCount,
			URL:             url,
		})
	}

	return results, nil
}

// run executes yt-dlp with retries. Videos that are gone, private or have
// comments turned off are permanent failures; everything else is retried
// up to maxRetries times.
func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	var stdout []byte

	operation := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		out, stderr, err := c.runCmd(attemptCtx, c.binary, args...)
		if err != nil {
			mapped := classifyError(stderr, err)
			if errors.Is(mapped, usecaseErrors.ErrVideoNotFound) || errors.Is(mapped, usecaseErrors.ErrCommentsDisabled) {
				return backoff.Permanent(mapped)
			}
			if c.logger != nil {
				c.logger.Warn("⚠️ yt-dlp attempt failed", zap.Error(mapped))
			}
			return mapped
		}
		stdout = out
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInterval
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 0 // the retry count is the budget, not wall time

	policy := backoff.WithMaxRetries(backoff.WithContext(bo, ctx), uint64(c.maxRetries))
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return stdout, nil
}

// classifyError maps yt-dlp stderr onto the pipeline's error taxonomy.
func classifyError(stderr []byte, err error) error {
	msg := strings.ToLower(string(stderr))
	switch {
	case strings.Contains(msg, "video unavailable"), strings.Contains(msg, "private video"):
		return usecaseErrors.ErrVideoNotFound
	case strings.Contains(msg, "comments are disabled"), strings.Contains(msg, "comments are turned off"):
		return usecaseErrors.ErrCommentsDisabled
	}
	return fmt.Errorf("%w: %v: %s", usecaseErrors.ErrExtractionFailed, err, firstLine(stderr))
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

func defaultRunCmd(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
