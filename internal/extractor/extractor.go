// Package extractor parses labeled fields out of free-form LLM responses.
// Prompts ask the model to answer with lines like "Score: 0.7" or
// "Could Substitute: Yes", and these helpers pull the values back out
// without assuming the model followed the format exactly.
package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// Float extracts a numeric value following "<label>:" from content.
// Returns false when the label is absent or the value does not parse.
func Float(content, label string) (float64, bool) {
	re := regexp.MustCompile(regexp.QuoteMeta(label) + `:\s*(-?[0-9]*\.?[0-9]+)`)
	match := re.FindStringSubmatch(content)
	if match == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// Int extracts an integer value following "<label>:" from content
func Int(content, label string) (int, bool) {
	re := regexp.MustCompile(regexp.QuoteMeta(label) + `:\s*(-?[0-9]+)`)
	match := re.FindStringSubmatch(content)
	if match == nil {
		return 0, false
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	return value, true
}

// YesNo extracts a yes/no answer following "<label>:" from content.
// Returns false in the second value when the label is absent.
func YesNo(content, label string) (bool, bool) {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label) + `:\s*(yes|no)`)
	match := re.FindStringSubmatch(content)
	if match == nil {
		return false, false
	}

	return strings.EqualFold(match[1], "yes"), true
}

// Section extracts the text following "<label>:" up to the first of the
// given terminator labels, or to the end of content when none appear.
// The result is whitespace-trimmed. Returns false when the label is absent.
func Section(content, label string, terminators ...string) (string, bool) {
	pattern := `(?s)` + regexp.QuoteMeta(label) + `:\s*(.*?)\s*(?:$`
	for _, term := range terminators {
		pattern += `|` + regexp.QuoteMeta(term) + `:`
	}
	pattern += `)`

	re := regexp.MustCompile(pattern)
	match := re.FindStringSubmatch(content)
	if match == nil {
		return "", false
	}

	return strings.TrimSpace(match[1]), true
}
