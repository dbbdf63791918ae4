package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/tildaslashalef/revjudge/internal/config"
	"github.com/tildaslashalef/revjudge/internal/extractor"
	"github.com/tildaslashalef/revjudge/internal/llm"
	"github.com/tildaslashalef/revjudge/internal/loggy"
	"github.com/tildaslashalef/revjudge/internal/pr"
)

// Assessor produces the whole-PR qualitative verdict by asking an LLM to
// judge the AI review against the human reviews
type Assessor struct {
	client         llm.Client
	sideCap        int
	reviewCap      int
	maxFileReviews int
	logger         *loggy.Logger
}

// Caps applied when building the assessment prompt. Each side's text is
// limited to assessmentSideCap characters after assembly.
const assessmentSideCap = 1500

// NewAssessor creates a PR assessor backed by the given LLM client
func NewAssessor(client llm.Client, cfg config.AnalysisConfig, logger *loggy.Logger) *Assessor {
	return &Assessor{
		client:         client,
		sideCap:        assessmentSideCap,
		reviewCap:      cfg.ReviewCapChars,
		maxFileReviews: cfg.MaxFileReviews,
		logger:         logger,
	}
}

// Assess produces the PR-level quality verdict. Any LLM failure degrades
// to a default assessment; this method never fails.
func (a *Assessor) Assess(ctx context.Context, pullRequest *pr.PullRequest, humanMap, aiMap FileCommentIndex) PRAssessment {
	humanText := a.buildHumanText(humanMap)
	aiText := a.buildAIText(pullRequest)

	prompt, err := buildAssessmentPrompt(pullRequest.Number, pullRequest.Title, humanText, aiText, a.sideCap)
	if err != nil {
		return a.errorAssessment(err)
	}

	resp, err := a.client.GenerateChat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: assessmentSystemInstruction},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1,
	})
	if err != nil {
		a.logger.Warn("PR assessment call failed, using default assessment", "error", err)
		return a.errorAssessment(err)
	}

	return parseAssessmentResponse(resp.Content)
}

// buildHumanText concatenates every human comment across all files,
// labeling each line with its author. Files are visited in sorted order
// so the assembled text, and what survives the side cap, is stable
// across runs.
func (a *Assessor) buildHumanText(humanMap FileCommentIndex) string {
	var all []ReviewComment
	for _, filename := range keys(humanMap) {
		all = append(all, humanMap[filename]...)
	}
	return joinAttributed(all)
}

// buildAIText assembles the aggregated summary plus at most the first
// maxFileReviews per-file reviews, each capped to reviewCap characters
func (a *Assessor) buildAIText(pullRequest *pr.PullRequest) string {
	var summary strings.Builder
	var fileReviews []string

	for _, aiReview := range pullRequest.AIReviews {
		summary.WriteString(aiReview.Summary)
		for _, fileReview := range aiReview.FileReviews {
			fileReviews = append(fileReviews, fmt.Sprintf("[%s]: %s...", fileReview.Filename, truncate(fileReview.Content, a.reviewCap)))
		}
	}

	if len(fileReviews) > a.maxFileReviews {
		fileReviews = fileReviews[:a.maxFileReviews]
	}

	return summary.String() + "\n" + strings.Join(fileReviews, "\n")
}

func (a *Assessor) errorAssessment(err error) PRAssessment {
	return PRAssessment{
		QualityScore:    5,
		CouldSubstitute: false,
		FullAssessment:  fmt.Sprintf("Error generating assessment: %s", err),
	}
}

// parseAssessmentResponse extracts the quality score and substitutability
// verdict, falling back to score 5 and "no" when absent
func parseAssessmentResponse(content string) PRAssessment {
	qualityScore, found := extractor.Int(content, labelQualityScore)
	if !found {
		qualityScore = 5
	}

	couldSubstitute, found := extractor.YesNo(content, labelCouldSubstitute)
	if !found {
		couldSubstitute = false
	}

	return PRAssessment{
		QualityScore:    qualityScore,
		CouldSubstitute: couldSubstitute,
		FullAssessment:  content,
	}
}
