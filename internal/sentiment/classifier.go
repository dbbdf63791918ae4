// Package sentiment classifies review comment text as positive, neutral,
// or negative using keyword pattern matching
package sentiment

import (
	"regexp"
	"strings"
)

// Label is a sentiment classification result
type Label string

const (
	// Positive indicates approving or complimentary language
	Positive Label = "positive"

	// Neutral indicates neither approving nor critical language
	Neutral Label = "neutral"

	// Negative indicates critical or problem-reporting language
	Negative Label = "negative"
)

// Patterns were chosen to match the vocabulary reviewers actually use on
// pull requests. Positive patterns take precedence when both match, so
// "looks good, one issue though" classifies as positive.
var (
	positivePatterns = compileAll([]string{
		`lgtm`,
		`looks good`,
		`great`,
		`nice`,
		`good job`,
		`well done`,
		`approve`,
		`make\s+sense`,
		`\+1`,
		`👍`,
		`approved`,
		`excellent`,
	})

	negativePatterns = compileAll([]string{
		`issue`,
		`bug`,
		`error`,
		`problem`,
		`fix`,
		`incorrect`,
		`wrong`,
		`concern`,
		`bad`,
		`fail`,
		`needs\s+work`,
		`not\s+work`,
		`doesn't\s+work`,
		`broken`,
		`reject`,
		`rejected`,
		`-1`,
		`👎`,
		`nit:`,
		`suggestion`,
	})
)

func compileAll(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// Classifier classifies comment text. The interface exists so that analysis
// code can substitute a fake in tests.
type Classifier interface {
	Classify(text string) Label
}

// KeywordClassifier classifies text by matching keyword patterns
type KeywordClassifier struct{}

// NewKeywordClassifier returns the default pattern-based classifier
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify returns the sentiment label for the given text
func (c *KeywordClassifier) Classify(text string) Label {
	lowered := strings.ToLower(text)

	for _, p := range positivePatterns {
		if p.MatchString(lowered) {
			return Positive
		}
	}

	for _, p := range negativePatterns {
		if p.MatchString(lowered) {
			return Negative
		}
	}

	return Neutral
}

var defaultClassifier = NewKeywordClassifier()

// Classify classifies text with the default keyword classifier
func Classify(text string) Label {
	return defaultClassifier.Classify(text)
}
