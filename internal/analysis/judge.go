package analysis

import (
	"context"
	"fmt"

	"github.com/tildaslashalef/revjudge/internal/config"
	"github.com/tildaslashalef/revjudge/internal/extractor"
	"github.com/tildaslashalef/revjudge/internal/llm"
	"github.com/tildaslashalef/revjudge/internal/loggy"
)

// Judge estimates the semantic overlap between human and AI comments on a
// single file by asking an LLM and defensively parsing its answer
type Judge struct {
	client     llm.Client
	commentCap int
	diffCap    int
	logger     *loggy.Logger
}

// NewJudge creates a content-overlap judge backed by the given LLM client
func NewJudge(client llm.Client, cfg config.AnalysisConfig, logger *loggy.Logger) *Judge {
	return &Judge{
		client:     client,
		commentCap: cfg.CommentCapChars,
		diffCap:    cfg.DiffCapChars,
		logger:     logger,
	}
}

// Compare scores the topical similarity between the two comment lists.
// When either side is empty no LLM call is made. Call and parse failures
// both degrade to a neutral default result; this method never fails.
func (j *Judge) Compare(ctx context.Context, humanComments, aiComments []ReviewComment, change *FileChange) ContentAnalysis {
	if len(humanComments) == 0 || len(aiComments) == 0 {
		return ContentAnalysis{
			Score:     0.0,
			Reasoning: "No overlap - either human or AI comments missing",
			HumanOnly: "N/A",
			AIOnly:    "N/A",
		}
	}

	prompt, err := buildOverlapPrompt(joinBodies(humanComments), joinBodies(aiComments), change, j.commentCap, j.diffCap)
	if err != nil {
		return j.errorResult(err)
	}

	resp, err := j.client.GenerateChat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: overlapSystemInstruction},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1,
	})
	if err != nil {
		j.logger.Warn("Content overlap call failed, using neutral default", "error", err)
		return j.errorResult(err)
	}

	return parseOverlapResponse(resp.Content)
}

func (j *Judge) errorResult(err error) ContentAnalysis {
	return ContentAnalysis{
		Score:     0.5,
		Reasoning: fmt.Sprintf("Error: %s", err),
		HumanOnly: "Error analyzing",
		AIOnly:    "Error analyzing",
	}
}

// parseOverlapResponse extracts the score and per-side points from the raw
// model output, substituting neutral defaults for anything missing. The
// full response text is kept as the reasoning for auditability.
func parseOverlapResponse(content string) ContentAnalysis {
	score, found := extractor.Float(content, labelOverlapScore)
	if !found {
		score = 0.5
	}
	score = clamp(score, 0, 1)

	humanOnly, found := extractor.Section(content, labelHumanOnlyPoints, labelAIOnlyPoints)
	if !found {
		humanOnly = "None identified"
	}

	aiOnly, found := extractor.Section(content, labelAIOnlyPoints)
	if !found {
		aiOnly = "None identified"
	}

	return ContentAnalysis{
		Score:     score,
		Reasoning: content,
		HumanOnly: humanOnly,
		AIOnly:    aiOnly,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
