package analysis

import (
	"context"
	"sort"

	"github.com/tildaslashalef/revjudge/internal/loggy"
	"github.com/tildaslashalef/revjudge/internal/pr"
	"github.com/tildaslashalef/revjudge/internal/sentiment"
)

// Service orchestrates the per-PR comparison pipeline and owns the
// corpus-wide accumulator for one run
type Service struct {
	classifier sentiment.Classifier
	judge      *Judge
	assessor   *Assessor
	metrics    *Metrics
	logger     *loggy.Logger
}

// NewService creates an analysis service with a fresh accumulator
func NewService(classifier sentiment.Classifier, judge *Judge, assessor *Assessor, logger *loggy.Logger) *Service {
	return &Service{
		classifier: classifier,
		judge:      judge,
		assessor:   assessor,
		metrics:    NewMetrics(),
		logger:     logger,
	}
}

// Metrics returns the accumulator for this run
func (s *Service) Metrics() *Metrics {
	return s.metrics
}

// AnalyzePR runs the full comparison pipeline for one pull request and
// folds the result into the running metrics. Per-file and PR-level scoring
// degrade to defaults on failure, so this always returns a result.
func (s *Service) AnalyzePR(ctx context.Context, pullRequest *pr.PullRequest) *PRResult {
	s.logger.Info("Analyzing PR", "number", pullRequest.Number, "title", pullRequest.Title)

	humanMap := HumanFileMap(pullRequest)
	aiMap := AIFileMap(pullRequest)
	changes := FileChanges(pullRequest)

	// File-targeting overlap is computed over the raw key sets, general
	// bucket included, since it measures targeting behavior
	fileOverlap := FileOverlap(keys(humanMap), keys(aiMap))
	s.metrics.FileOverlapScores = append(s.metrics.FileOverlapScores, fileOverlap)

	perFileResults := map[string]FileComparison{}

	for _, filename := range s.fileUnion(humanMap, aiMap, changes) {
		humanComments := humanMap[filename]
		aiComments := aiMap[filename]

		if len(humanComments) > 0 && len(aiComments) == 0 {
			s.metrics.HumanCommentsWithoutAIMatch++
		}
		if len(aiComments) > 0 && len(humanComments) == 0 {
			s.metrics.AICommentsWithoutHumanMatch++
		}

		sentimentAgreement := SentimentAgreement(humanComments, aiComments, s.classifier)

		var change *FileChange
		if c, ok := changes[filename]; ok {
			change = &c
		}
		contentAnalysis := s.judge.Compare(ctx, humanComments, aiComments, change)

		// Agreement averages only cover files both sides commented on;
		// one-sided files feed the without-match counters instead
		if len(humanComments) > 0 && len(aiComments) > 0 {
			s.metrics.SentimentAgreementScores = append(s.metrics.SentimentAgreementScores, sentimentAgreement)
			s.metrics.ContentOverlapScores = append(s.metrics.ContentOverlapScores, contentAnalysis.Score)
		}

		perFileResults[filename] = FileComparison{
			HumanCommentCount:  len(humanComments),
			AICommentCount:     len(aiComments),
			SentimentAgreement: sentimentAgreement,
			ContentOverlap:     contentAnalysis.Score,
			ContentAnalysis:    contentAnalysis,
		}
	}

	assessment := s.assessor.Assess(ctx, pullRequest, humanMap, aiMap)

	s.metrics.TotalPRsAnalyzed++
	s.metrics.HumanReviewerComments += countComments(humanMap)
	s.metrics.AIReviewComments += countComments(aiMap)

	result := &PRResult{
		PRNumber:          pullRequest.Number,
		Title:             pullRequest.Title,
		FileOverlapScore:  fileOverlap,
		PerFileResults:    perFileResults,
		OverallAssessment: assessment,
	}
	s.metrics.PRResults = append(s.metrics.PRResults, result)

	return result
}

// AnalyzeAll analyzes every PR in order and returns the accumulator
func (s *Service) AnalyzeAll(ctx context.Context, pullRequests []*pr.PullRequest) *Metrics {
	for _, pullRequest := range pullRequests {
		s.AnalyzePR(ctx, pullRequest)
	}
	return s.metrics
}

// fileUnion returns the sorted union of file keys from both comment
// indexes and the change map, excluding the general bucket
func (s *Service) fileUnion(humanMap, aiMap FileCommentIndex, changes map[string]FileChange) []string {
	union := map[string]struct{}{}
	for file := range humanMap {
		union[file] = struct{}{}
	}
	for file := range aiMap {
		union[file] = struct{}{}
	}
	for file := range changes {
		union[file] = struct{}{}
	}
	delete(union, GeneralKey)

	files := make([]string, 0, len(union))
	for file := range union {
		files = append(files, file)
	}
	sort.Strings(files)

	return files
}

// keys returns the index's file keys in sorted order
func keys(index FileCommentIndex) []string {
	result := make([]string, 0, len(index))
	for file := range index {
		result = append(result, file)
	}
	sort.Strings(result)
	return result
}

// countComments totals comments across the entire index, general included
func countComments(index FileCommentIndex) int {
	total := 0
	for _, comments := range index {
		total += len(comments)
	}
	return total
}
