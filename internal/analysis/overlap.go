package analysis

import (
	"github.com/tildaslashalef/revjudge/internal/sentiment"
)

// FileOverlap computes the Jaccard index of the two file-key sets.
// Both sets empty counts as perfect agreement; exactly one empty counts
// as total disagreement.
func FileOverlap(humanFiles, aiFiles []string) float64 {
	humanSet := toSet(humanFiles)
	aiSet := toSet(aiFiles)

	if len(humanSet) == 0 && len(aiSet) == 0 {
		return 1.0
	}

	if len(humanSet) == 0 || len(aiSet) == 0 {
		return 0.0
	}

	intersection := 0
	for file := range humanSet {
		if _, ok := aiSet[file]; ok {
			intersection++
		}
	}

	union := len(humanSet) + len(aiSet) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

func toSet(files []string) map[string]struct{} {
	set := make(map[string]struct{}, len(files))
	for _, f := range files {
		set[f] = struct{}{}
	}
	return set
}

// sentimentOrder fixes the tie-break for the predominant label: the first
// label with a maximal count wins, so ties resolve deterministically.
var sentimentOrder = []sentiment.Label{sentiment.Positive, sentiment.Neutral, sentiment.Negative}

// SentimentAgreement scores how well the predominant sentiments of the two
// comment lists agree. Returns 0.5 when either side has no comments, 1.0
// when the predominant labels match, 0.5 when either predominant label is
// neutral, and 0.0 for a positive-versus-negative clash.
func SentimentAgreement(humanComments, aiComments []ReviewComment, classifier sentiment.Classifier) float64 {
	if len(humanComments) == 0 || len(aiComments) == 0 {
		return 0.5
	}

	humanPredominant := predominantSentiment(humanComments, classifier)
	aiPredominant := predominantSentiment(aiComments, classifier)

	switch {
	case humanPredominant == aiPredominant:
		return 1.0
	case humanPredominant == sentiment.Neutral || aiPredominant == sentiment.Neutral:
		return 0.5
	default:
		return 0.0
	}
}

func predominantSentiment(comments []ReviewComment, classifier sentiment.Classifier) sentiment.Label {
	counts := map[sentiment.Label]int{}
	for _, comment := range comments {
		counts[classifier.Classify(comment.Body)]++
	}

	predominant := sentimentOrder[0]
	best := -1
	for _, label := range sentimentOrder {
		if counts[label] > best {
			best = counts[label]
			predominant = label
		}
	}

	return predominant
}
