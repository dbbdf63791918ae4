package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/revjudge/internal/llm"
	"github.com/tildaslashalef/revjudge/internal/loggy"
	"github.com/tildaslashalef/revjudge/internal/pr"
)

func newTestAssessor(client llm.Client) *Assessor {
	return NewAssessor(client, testAnalysisConfig(), loggy.NewNoopLogger())
}

func assessmentPR() *pr.PullRequest {
	return &pr.PullRequest{
		Number: 7,
		Title:  "Add retry logic",
		AIReviews: []pr.AIReview{
			{
				Summary: "The change adds retry logic.",
				FileReviews: []pr.FileReview{
					{Filename: "a.go", Content: "Review of a"},
					{Filename: "b.go", Content: "Review of b"},
					{Filename: "c.go", Content: "Review of c"},
					{Filename: "d.go", Content: "Review of d"},
				},
			},
		},
	}
}

func TestAssessParsesResponse(t *testing.T) {
	response := `Quality Score: 7
Could Substitute: Yes
Explanation: The AI caught most of what humans did.
Humans caught but AI missed: nothing significant
AI caught but humans missed: a race condition`

	mock := &mockLLMClient{response: response}
	assessor := newTestAssessor(mock)

	humanMap := FileCommentIndex{"a.go": comments("unchecked error")}
	aiMap := FileCommentIndex{"a.go": comments("error not handled")}

	assessment := assessor.Assess(context.Background(), assessmentPR(), humanMap, aiMap)

	assert.Equal(t, 7, assessment.QualityScore)
	assert.True(t, assessment.CouldSubstitute)
	assert.Equal(t, response, assessment.FullAssessment)
	assert.Equal(t, 0.1, mock.lastReq.Temperature)
}

func TestAssessDefaults(t *testing.T) {
	cases := []struct {
		name            string
		response        string
		expectedScore   int
		expectedVerdict bool
	}{
		{
			name:            "missing both fields",
			response:        "I cannot assess this PR.",
			expectedScore:   5,
			expectedVerdict: false,
		},
		{
			name:            "no verdict",
			response:        "Quality Score: 9\nCould Substitute: No",
			expectedScore:   9,
			expectedVerdict: false,
		},
		{
			name:            "case insensitive verdict",
			response:        "quality score: 3\nCould Substitute: yes",
			expectedScore:   5, // label is case sensitive for the score
			expectedVerdict: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assessor := newTestAssessor(&mockLLMClient{response: tc.response})

			assessment := assessor.Assess(context.Background(), assessmentPR(), FileCommentIndex{}, FileCommentIndex{})

			assert.Equal(t, tc.expectedScore, assessment.QualityScore)
			assert.Equal(t, tc.expectedVerdict, assessment.CouldSubstitute)
		})
	}
}

func TestAssessFailsOpen(t *testing.T) {
	assessor := newTestAssessor(&mockLLMClient{err: errors.New("timeout")})

	assessment := assessor.Assess(context.Background(), assessmentPR(), FileCommentIndex{}, FileCommentIndex{})

	assert.Equal(t, 5, assessment.QualityScore)
	assert.False(t, assessment.CouldSubstitute)
	assert.Contains(t, assessment.FullAssessment, "timeout")
}

func TestAssessPromptComposition(t *testing.T) {
	mock := &mockLLMClient{response: "Quality Score: 5\nCould Substitute: No"}
	assessor := newTestAssessor(mock)

	humanMap := FileCommentIndex{
		"a.go": {
			{Author: "alice", Body: "please add a test"},
		},
		GeneralKey: {
			{Author: "bob", Body: "overall fine"},
		},
	}

	assessor.Assess(context.Background(), assessmentPR(), humanMap, FileCommentIndex{})

	require.Equal(t, 1, mock.calls)
	prompt := mock.lastReq.Messages[1].Content

	assert.Contains(t, prompt, `PR #7: "Add retry logic"`)
	assert.Contains(t, prompt, "[alice]: please add a test")
	assert.Contains(t, prompt, "[bob]: overall fine")

	// Only the first three per-file AI reviews are included
	assert.Contains(t, prompt, "[a.go]:")
	assert.Contains(t, prompt, "[c.go]:")
	assert.NotContains(t, prompt, "[d.go]:")

	assert.Equal(t, assessmentSystemInstruction, mock.lastReq.Messages[0].Content)
}

func TestBuildHumanTextOrdering(t *testing.T) {
	assessor := newTestAssessor(&mockLLMClient{})

	humanMap := FileCommentIndex{
		"z.go": {
			{Author: "zed", Body: "late comment"},
		},
		"a.go": {
			{Author: "alice", Body: "early comment"},
		},
		"m.go": {
			{Author: "mel", Body: "middle comment"},
		},
	}

	text := assessor.buildHumanText(humanMap)
	expected := "[alice]: early comment\n[mel]: middle comment\n[zed]: late comment"
	assert.Equal(t, expected, text)

	// Stable across repeated builds regardless of map iteration order
	for i := 0; i < 10; i++ {
		assert.Equal(t, expected, assessor.buildHumanText(humanMap))
	}
}

func TestAssessSideCaps(t *testing.T) {
	mock := &mockLLMClient{response: "Quality Score: 5\nCould Substitute: No"}
	assessor := newTestAssessor(mock)

	humanMap := FileCommentIndex{
		"a.go": {
			{Author: "alice", Body: strings.Repeat("h", 4000)},
		},
	}

	assessor.Assess(context.Background(), assessmentPR(), humanMap, FileCommentIndex{})

	prompt := mock.lastReq.Messages[1].Content
	assert.NotContains(t, prompt, strings.Repeat("h", 1501), "human side capped at 1500 chars")
}
