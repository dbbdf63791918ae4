package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tildaslashalef/revjudge/internal/sentiment"
)

func TestFileOverlap(t *testing.T) {
	cases := []struct {
		name     string
		human    []string
		ai       []string
		expected float64
	}{
		{name: "both empty is perfect agreement", human: nil, ai: nil, expected: 1.0},
		{name: "human empty is total disagreement", human: nil, ai: []string{"a.go"}, expected: 0.0},
		{name: "ai empty is total disagreement", human: []string{"a.go"}, ai: nil, expected: 0.0},
		{name: "identical sets", human: []string{"a.go", "b.go"}, ai: []string{"b.go", "a.go"}, expected: 1.0},
		{name: "partial overlap", human: []string{"a.go", "b.go"}, ai: []string{"b.go", "c.go"}, expected: 1.0 / 3.0},
		{name: "disjoint sets", human: []string{"a.go"}, ai: []string{"b.go"}, expected: 0.0},
		{name: "duplicates collapse", human: []string{"a.go", "a.go"}, ai: []string{"a.go"}, expected: 1.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, FileOverlap(tc.human, tc.ai), 1e-9)
		})
	}
}

func TestFileOverlapSymmetry(t *testing.T) {
	human := []string{"a.go", "b.go", "c.go"}
	ai := []string{"c.go", "d.go"}

	assert.Equal(t, FileOverlap(human, ai), FileOverlap(ai, human))
}

func comments(bodies ...string) []ReviewComment {
	result := make([]ReviewComment, len(bodies))
	for i, body := range bodies {
		result[i] = ReviewComment{Body: body}
	}
	return result
}

func TestSentimentAgreement(t *testing.T) {
	classifier := sentiment.NewKeywordClassifier()

	cases := []struct {
		name     string
		human    []ReviewComment
		ai       []ReviewComment
		expected float64
	}{
		{
			name:     "human empty returns neutral score",
			human:    nil,
			ai:       comments("LGTM"),
			expected: 0.5,
		},
		{
			name:     "ai empty returns neutral score",
			human:    comments("LGTM"),
			ai:       nil,
			expected: 0.5,
		},
		{
			name:     "both predominantly positive",
			human:    comments("LGTM", "nice work"),
			ai:       comments("looks good overall"),
			expected: 1.0,
		},
		{
			name:     "positive versus negative clash",
			human:    comments("LGTM", "great"),
			ai:       comments("there is a bug here", "broken logic"),
			expected: 0.0,
		},
		{
			name:     "neutral side gives partial credit",
			human:    comments("what does this return?"),
			ai:       comments("bug in the loop"),
			expected: 0.5,
		},
		{
			name:     "majority wins within a side",
			human:    comments("LGTM", "nice", "one bug though"),
			ai:       comments("looks good"),
			expected: 1.0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SentimentAgreement(tc.human, tc.ai, classifier))
		})
	}
}

func TestPredominantSentimentTieBreak(t *testing.T) {
	classifier := sentiment.NewKeywordClassifier()

	// One positive, one negative: positive wins the tie by fixed order
	tied := comments("LGTM", "this is broken")
	assert.Equal(t, sentiment.Positive, predominantSentiment(tied, classifier))

	// One neutral, one negative: neutral precedes negative in the order
	tied = comments("please rebase", "found a bug")
	assert.Equal(t, sentiment.Neutral, predominantSentiment(tied, classifier))
}
