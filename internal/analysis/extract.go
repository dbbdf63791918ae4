package analysis

import (
	"strings"

	"github.com/tildaslashalef/revjudge/internal/pr"
)

// AIAuthor is the author recorded for every comment of the AI side
const AIAuthor = "AI_reviewer"

// HumanFileMap builds the file-to-comments index for the human side.
// Inline comments are keyed by their file path; comments with a missing or
// all-whitespace path are skipped. Formal review bodies have no file
// association and land in the general bucket.
func HumanFileMap(pullRequest *pr.PullRequest) FileCommentIndex {
	index := FileCommentIndex{}

	for _, comment := range pullRequest.Comments {
		if comment.Path == "" || strings.TrimSpace(comment.Path) == "" {
			continue
		}

		line := 0
		if comment.Position != nil {
			line = *comment.Position
		}

		index[comment.Path] = append(index[comment.Path], ReviewComment{
			Author: comment.UserLogin,
			Body:   comment.Body,
			Line:   line,
			Origin: OriginHuman,
		})
	}

	for _, review := range pullRequest.GithubReviews {
		if review.Body == "" || strings.TrimSpace(review.Body) == "" {
			continue
		}

		index[GeneralKey] = append(index[GeneralKey], ReviewComment{
			Author: review.UserLogin,
			Body:   review.Body,
			Line:   0,
			Origin: OriginHuman,
		})
	}

	return index
}

// AIFileMap builds the file-to-comments index for the AI side. Every AI
// review contributes a general entry holding its summary, even when the
// summary is empty, plus one entry per per-file sub-review.
func AIFileMap(pullRequest *pr.PullRequest) FileCommentIndex {
	index := FileCommentIndex{}

	for _, aiReview := range pullRequest.AIReviews {
		index[GeneralKey] = append(index[GeneralKey], ReviewComment{
			Author: AIAuthor,
			Body:   aiReview.Summary,
			Line:   0,
			Origin: OriginAI,
			Kind:   "summary",
		})

		for _, fileReview := range aiReview.FileReviews {
			if fileReview.Filename == "" {
				continue
			}

			index[fileReview.Filename] = append(index[fileReview.Filename], ReviewComment{
				Author: AIAuthor,
				Body:   fileReview.Content,
				Line:   0,
				Origin: OriginAI,
				Kind:   "file_review",
			})
		}
	}

	return index
}

// FileChanges builds the path-keyed map of changed files
func FileChanges(pullRequest *pr.PullRequest) map[string]FileChange {
	changes := make(map[string]FileChange, len(pullRequest.Patches))

	for _, patch := range pullRequest.Patches {
		if patch.Filename == "" {
			continue
		}

		status := patch.Status
		if status == "" {
			status = "modified"
		}

		changes[patch.Filename] = FileChange{
			Patch:     patch.Patch,
			Additions: patch.Additions,
			Deletions: patch.Deletions,
			Status:    status,
		}
	}

	return changes
}
