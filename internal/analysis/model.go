// Package analysis implements the comparison engine that scores AI-generated
// code reviews against human reviews on the same pull requests
package analysis

// GeneralKey is the index key for comments not scoped to a particular file,
// such as formal review summaries. It is excluded from per-file scoring.
const GeneralKey = "general"

// Origin identifies which side of the comparison a comment came from
type Origin string

const (
	// OriginHuman marks comments left by human reviewers
	OriginHuman Origin = "human"

	// OriginAI marks comments produced by the AI reviewer
	OriginAI Origin = "ai"
)

// ReviewComment is a single normalized review comment from either side
type ReviewComment struct {
	Author string `json:"user_login"`
	Body   string `json:"body"`
	Line   int    `json:"line"`
	Origin Origin `json:"origin,omitempty"`
	Kind   string `json:"type,omitempty"` // "summary" or "file_review" for AI comments
}

// FileCommentIndex maps a file path (or GeneralKey) to its comments in
// insertion order
type FileCommentIndex map[string][]ReviewComment

// FileChange describes the diff of one file changed by the PR
type FileChange struct {
	Patch     string `json:"patch"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Status    string `json:"status"`
}

// ContentAnalysis is the parsed outcome of one content-overlap judgment
type ContentAnalysis struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
	HumanOnly string  `json:"human_only"`
	AIOnly    string  `json:"ai_only"`
}

// FileComparison is the per-file comparison result for one PR
type FileComparison struct {
	HumanCommentCount  int             `json:"human_comments_count"`
	AICommentCount     int             `json:"ai_comments_count"`
	SentimentAgreement float64         `json:"sentiment_agreement"`
	ContentOverlap     float64         `json:"content_overlap"`
	ContentAnalysis    ContentAnalysis `json:"content_analysis"`
}

// PRAssessment is the whole-PR qualitative verdict
type PRAssessment struct {
	QualityScore    int    `json:"quality_score"`
	CouldSubstitute bool   `json:"could_substitute"`
	FullAssessment  string `json:"full_assessment"`
}

// PRResult is the complete analysis result for one pull request
type PRResult struct {
	PRNumber          int                       `json:"pr_number"`
	Title             string                    `json:"title"`
	FileOverlapScore  float64                   `json:"file_overlap_score"`
	PerFileResults    map[string]FileComparison `json:"per_file_results"`
	OverallAssessment PRAssessment              `json:"overall_assessment"`
}

// Metrics is the corpus-wide accumulator for one analysis run. It is owned
// by a single Service and must not be shared across runs.
type Metrics struct {
	TotalPRsAnalyzed            int         `json:"total_prs_analyzed"`
	HumanReviewerComments       int         `json:"human_reviewer_comments"`
	AIReviewComments            int         `json:"ai_review_comments"`
	FileOverlapScores           []float64   `json:"file_overlap_scores"`
	SentimentAgreementScores    []float64   `json:"sentiment_agreement_scores"`
	ContentOverlapScores        []float64   `json:"content_overlap_scores"`
	HumanCommentsWithoutAIMatch int         `json:"human_comments_without_ai_match"`
	AICommentsWithoutHumanMatch int         `json:"ai_comments_without_human_match"`
	PRResults                   []*PRResult `json:"pr_results"`
}

// NewMetrics returns a fresh accumulator with empty score lists
func NewMetrics() *Metrics {
	return &Metrics{
		FileOverlapScores:        []float64{},
		SentimentAgreementScores: []float64{},
		ContentOverlapScores:     []float64{},
		PRResults:                []*PRResult{},
	}
}
