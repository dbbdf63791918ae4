package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/revjudge/internal/pr"
)

func intPtr(v int) *int { return &v }

func TestHumanFileMap(t *testing.T) {
	pullRequest := &pr.PullRequest{
		Number: 1,
		Comments: []pr.Comment{
			{UserLogin: "alice", Body: "fix this loop", Path: "main.go", Position: intPtr(12)},
			{UserLogin: "bob", Body: "second comment", Path: "main.go", Position: intPtr(20)},
			{UserLogin: "carol", Body: "no file attached", Path: ""},
			{UserLogin: "dave", Body: "whitespace path", Path: "   "},
			{UserLogin: "erin", Body: "docs", Path: "README.md"},
		},
		GithubReviews: []pr.Review{
			{UserLogin: "alice", Body: "Overall this looks solid"},
			{UserLogin: "bob", Body: ""},
			{UserLogin: "carol", Body: "   "},
		},
	}

	index := HumanFileMap(pullRequest)

	require.Len(t, index, 3)

	require.Len(t, index["main.go"], 2)
	assert.Equal(t, "alice", index["main.go"][0].Author)
	assert.Equal(t, 12, index["main.go"][0].Line)
	assert.Equal(t, OriginHuman, index["main.go"][0].Origin)
	assert.Equal(t, "bob", index["main.go"][1].Author)

	require.Len(t, index["README.md"], 1)
	assert.Equal(t, 0, index["README.md"][0].Line)

	// Empty or whitespace review bodies are dropped
	require.Len(t, index[GeneralKey], 1)
	assert.Equal(t, "Overall this looks solid", index[GeneralKey][0].Body)
	assert.Equal(t, 0, index[GeneralKey][0].Line)
}

func TestAIFileMap(t *testing.T) {
	pullRequest := &pr.PullRequest{
		AIReviews: []pr.AIReview{
			{
				Summary: "Solid change with minor issues.",
				FileReviews: []pr.FileReview{
					{Filename: "main.go", Content: "Potential nil dereference."},
					{Filename: "", Content: "orphan review"},
					{Filename: "util.go", Content: "Consider a table test."},
				},
			},
			{
				Summary: "",
			},
		},
	}

	index := AIFileMap(pullRequest)

	// Every AI review contributes a general entry, even with empty summary
	require.Len(t, index[GeneralKey], 2)
	assert.Equal(t, "Solid change with minor issues.", index[GeneralKey][0].Body)
	assert.Equal(t, "summary", index[GeneralKey][0].Kind)
	assert.Equal(t, AIAuthor, index[GeneralKey][0].Author)
	assert.Equal(t, "", index[GeneralKey][1].Body)

	require.Len(t, index["main.go"], 1)
	assert.Equal(t, "file_review", index["main.go"][0].Kind)
	assert.Equal(t, OriginAI, index["main.go"][0].Origin)

	require.Len(t, index["util.go"], 1)

	// File reviews without a filename are dropped
	assert.Len(t, index, 3)
}

func TestFileChanges(t *testing.T) {
	pullRequest := &pr.PullRequest{
		Patches: []pr.Patch{
			{Filename: "main.go", Patch: "@@ -1 +1 @@", Additions: 5, Deletions: 2, Status: "modified"},
			{Filename: "new.go", Patch: "@@ -0 +10 @@", Additions: 10, Status: ""},
			{Filename: "", Patch: "orphan"},
		},
	}

	changes := FileChanges(pullRequest)

	require.Len(t, changes, 2)
	assert.Equal(t, 5, changes["main.go"].Additions)
	assert.Equal(t, "modified", changes["main.go"].Status)

	// Missing status defaults to modified
	assert.Equal(t, "modified", changes["new.go"].Status)
}

func TestMapsAreIndependentProjections(t *testing.T) {
	pullRequest := &pr.PullRequest{}

	assert.Empty(t, HumanFileMap(pullRequest))
	assert.Empty(t, AIFileMap(pullRequest))
	assert.Empty(t, FileChanges(pullRequest))
}
