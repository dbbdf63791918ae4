// Package report reduces the per-PR analysis results into corpus-wide
// summary statistics and renders them for the terminal
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tildaslashalef/revjudge/internal/analysis"
	"github.com/tildaslashalef/revjudge/internal/utils"
)

// Summary holds the aggregate metrics derived from one analysis run
type Summary struct {
	TotalPRsAnalyzed            int     `json:"total_prs_analyzed"`
	TotalHumanComments          int     `json:"total_human_comments"`
	TotalAIComments             int     `json:"total_ai_comments"`
	AvgFileOverlapScore         float64 `json:"avg_file_overlap_score"`
	AvgSentimentAgreement       float64 `json:"avg_sentiment_agreement"`
	AvgContentOverlap           float64 `json:"avg_content_overlap"`
	HumanCommentsWithoutAIMatch int     `json:"human_comments_without_ai_match"`
	AICommentsWithoutHumanMatch int     `json:"ai_comments_without_human_match"`
	PRQualityScores             []int   `json:"pr_quality_scores"`
	PRSubstituteCounts          []int   `json:"pr_substitute_counts"`
}

// Build reduces the accumulator into a Summary. Every mean is defined to
// be 0 over an empty list.
func Build(metrics *analysis.Metrics) *Summary {
	summary := &Summary{
		TotalPRsAnalyzed:            metrics.TotalPRsAnalyzed,
		TotalHumanComments:          metrics.HumanReviewerComments,
		TotalAIComments:             metrics.AIReviewComments,
		AvgFileOverlapScore:         mean(metrics.FileOverlapScores),
		AvgSentimentAgreement:       mean(metrics.SentimentAgreementScores),
		AvgContentOverlap:           mean(metrics.ContentOverlapScores),
		HumanCommentsWithoutAIMatch: metrics.HumanCommentsWithoutAIMatch,
		AICommentsWithoutHumanMatch: metrics.AICommentsWithoutHumanMatch,
		PRQualityScores:             []int{},
		PRSubstituteCounts:          []int{},
	}

	for _, result := range metrics.PRResults {
		summary.PRQualityScores = append(summary.PRQualityScores, result.OverallAssessment.QualityScore)
		if result.OverallAssessment.CouldSubstitute {
			summary.PRSubstituteCounts = append(summary.PRSubstituteCounts, 1)
		} else {
			summary.PRSubstituteCounts = append(summary.PRSubstituteCounts, 0)
		}
	}

	return summary
}

// AvgQuality is the mean per-PR quality score, 0 for an empty run
func (s *Summary) AvgQuality() float64 {
	if len(s.PRQualityScores) == 0 {
		return 0
	}

	total := 0
	for _, score := range s.PRQualityScores {
		total += score
	}

	return float64(total) / float64(len(s.PRQualityScores))
}

// SubstitutePercent is the percentage of PRs judged substitutable
func (s *Summary) SubstitutePercent() float64 {
	if len(s.PRSubstituteCounts) == 0 {
		return 0
	}

	total := 0
	for _, count := range s.PRSubstituteCounts {
		total += count
	}

	return 100 * float64(total) / float64(len(s.PRSubstituteCounts))
}

// Render prints the full analysis report to the terminal
func Render(metrics *analysis.Metrics) {
	summary := Build(metrics)

	utils.PrintHeading(fmt.Sprintf("Analysis results for %d pull requests", summary.TotalPRsAnalyzed))
	utils.PrintDivider()

	utils.PrintSubHeading("Comment counts")
	utils.PrintKeyValue("Human reviewer comments", fmt.Sprintf("%d", summary.TotalHumanComments))
	utils.PrintKeyValue("AI reviewer comments", fmt.Sprintf("%d", summary.TotalAIComments))

	if len(metrics.PRResults) > 0 {
		rows := make([][]string, 0, len(metrics.PRResults))
		for _, result := range metrics.PRResults {
			rows = append(rows, []string{
				fmt.Sprintf("#%d", result.PRNumber),
				result.Title,
				fmt.Sprintf("%d/10", result.OverallAssessment.QualityScore),
				yesNo(result.OverallAssessment.CouldSubstitute),
				fmt.Sprintf("%.2f", result.FileOverlapScore),
			})
		}

		utils.PrintTable(
			[]string{"PR", "Title", "Quality", "Could Substitute", "File Overlap"},
			rows,
			utils.TableOptions{Title: "PR by PR assessments"},
		)
	}

	utils.PrintSubHeading("Aggregate metrics")
	utils.PrintKeyValue("Average file overlap score", fmt.Sprintf("%.2f", summary.AvgFileOverlapScore))
	utils.PrintKeyValue("Average sentiment agreement", fmt.Sprintf("%.2f", summary.AvgSentimentAgreement))
	utils.PrintKeyValue("Average content overlap", fmt.Sprintf("%.2f", summary.AvgContentOverlap))
	utils.PrintKeyValue("Human comments without AI match", fmt.Sprintf("%d", summary.HumanCommentsWithoutAIMatch))
	utils.PrintKeyValue("AI comments without human match", fmt.Sprintf("%d", summary.AICommentsWithoutHumanMatch))

	utils.PrintSubHeading("Overall AI review assessment")
	utils.PrintKeyValue("Average quality score", fmt.Sprintf("%.1f/10", summary.AvgQuality()))
	utils.PrintKeyValue("Could substitute for human review", fmt.Sprintf("%.1f%% of PRs", summary.SubstitutePercent()))
}

// WriteJSON persists the full accumulator, detailed per-PR results
// included, as an indented JSON document
func WriteJSON(metrics *analysis.Metrics, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating results directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results file: %w", err)
	}

	return nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	total := 0.0
	for _, v := range values {
		total += v
	}

	return total / float64(len(values))
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
