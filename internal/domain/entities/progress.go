package entities

// Stage identifies a pipeline stage. Transitions are strictly forward;
// error is terminal and reachable from any non-terminal stage.
type Stage string

const (
	StageValidating         Stage = "validating"
	StageFetchingMetadata   Stage = "fetching_metadata"
	StageExtractingComments Stage = "extracting_comments"
	StageAnalyzingSentiment Stage = "analyzing_sentiment"
	StageDetectingTopics    Stage = "detecting_topics"
	StageGeneratingInsights Stage = "generating_insights"
	StageComplete           Stage = "complete"
	StageError              Stage = "error"
)

// stageOrder fixes the forward ordering of pipeline stages.
var stageOrder = map[Stage]int{
	StageValidating:         0,
	StageFetchingMetadata:   1,
	StageExtractingComments: 2,
	StageAnalyzingSentiment: 3,
	StageDetectingTopics:    4,
	StageGeneratingInsights: 5,
	StageComplete:           6,
}

// Order returns the stage's position in the pipeline, or -1 for terminal
// error.
func (s Stage) Order() int {
	if o, ok := stageOrder[s]; ok {
		return o
	}
	return -1
}

// ProgressEvent is emitted on every stage transition. Percent is
// monotonically non-decreasing within a run.
type ProgressEvent struct {
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
	Percent int    `json:"percent"`
}
