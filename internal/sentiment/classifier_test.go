package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		expected Label
	}{
		{name: "lgtm", text: "LGTM!", expected: Positive},
		{name: "looks good", text: "Looks good to me", expected: Positive},
		{name: "plus one", text: "+1 from me", expected: Positive},
		{name: "thumbs up emoji", text: "👍", expected: Positive},
		{name: "makes sense", text: "this change makes sense", expected: Positive},
		{name: "approval", text: "Approved, merging now", expected: Positive},

		{name: "bug report", text: "There is a bug in the loop condition", expected: Negative},
		{name: "needs work", text: "This still needs work", expected: Negative},
		{name: "nit prefix", text: "nit: rename this variable", expected: Negative},
		{name: "suggestion", text: "suggestion: extract a helper", expected: Negative},
		{name: "minus one", text: "-1, this breaks the API", expected: Negative},
		{name: "doesnt work", text: "this doesn't work on Windows", expected: Negative},

		{name: "neutral question", text: "What does this method return?", expected: Neutral},
		{name: "empty text", text: "", expected: Neutral},
		{name: "plain statement", text: "Updated the docs in a follow-up", expected: Neutral},

		// Positive patterns win when both sides match
		{name: "mixed leans positive", text: "Looks good, but there's one issue left", expected: Positive},
		{name: "approve with concern", text: "I approve despite the concern about naming", expected: Positive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.text))
		})
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	classifier := NewKeywordClassifier()

	assert.Equal(t, Positive, classifier.Classify("lgtm"))
	assert.Equal(t, Positive, classifier.Classify("LGTM"))
	assert.Equal(t, Negative, classifier.Classify("BROKEN build"))
	assert.Equal(t, Negative, classifier.Classify("Broken build"))
}
