package analysis

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"
)

// System instructions for the two LLM calls
const (
	overlapSystemInstruction = "You are an expert code reviewer analyzing the similarity between human and AI code reviews."

	assessmentSystemInstruction = "You are an expert in code review, evaluating the quality of code reviews."
)

// Response labels the prompts ask for and the parsers look up
const (
	labelOverlapScore    = "Content Overlap Score"
	labelHumanOnlyPoints = "Human-only points"
	labelAIOnlyPoints    = "AI-only points"
	labelQualityScore    = "Quality Score"
	labelCouldSubstitute = "Could Substitute"
)

const overlapPromptTemplate = `I want to compare how similar the content is between human reviewer comments and AI reviewer comments on the same code.

{{if .Context}}{{.Context}}
{{end}}Human reviewer comments:
-------------------------
{{.HumanText}}

AI reviewer comments:
---------------------
{{.AIText}}

Please analyze the similarity between these comments on a scale of 0 to 1, where:
- 0 means completely different topics/issues addressed
- 0.5 means some overlap in topics but significant differences
- 1 means very similar topics/issues addressed

Also note if the AI identifies issues that humans missed or vice versa.

Return your response in this format:
Content Overlap Score: [0-1 value]
Reasoning: [brief explanation]
Human-only points: [issues only humans raised]
AI-only points: [issues only AI raised]`

const assessmentPromptTemplate = `I want to compare the overall quality and completeness of human reviewer comments versus AI reviewer comments on PR #{{.Number}}: "{{.Title}}".

Human reviewer comments (sample):
--------------------------------
{{.HumanText}}

AI reviewer comments (sample):
----------------------------
{{.AIText}}

Please provide:
1. A subjective score from 0-10 for the AI review quality compared to human reviews
2. A binary assessment (Yes/No) of whether the AI review could substitute for human review
3. A brief explanation of your assessment
4. What the AI review missed that humans caught (if applicable)
5. What the AI review caught that humans missed (if applicable)

Return your response in this format:
Quality Score: [0-10]
Could Substitute: [Yes/No]
Explanation: [explanation]
Humans caught but AI missed: [issues]
AI caught but humans missed: [issues]`

var (
	overlapPrompt    = template.Must(template.New("overlap").Parse(overlapPromptTemplate))
	assessmentPrompt = template.Must(template.New("assessment").Parse(assessmentPromptTemplate))
)

// buildOverlapPrompt renders the content-overlap prompt. Comment texts are
// capped to bound prompt size; the diff context is optional.
func buildOverlapPrompt(humanText, aiText string, change *FileChange, commentCap, diffCap int) (string, error) {
	context := ""
	if change != nil {
		context = fmt.Sprintf("File changes summary:\n%s...\n", truncate(change.Patch, diffCap))
	}

	var buf bytes.Buffer
	err := overlapPrompt.Execute(&buf, map[string]string{
		"Context":   context,
		"HumanText": truncate(humanText, commentCap),
		"AIText":    truncate(aiText, commentCap),
	})
	if err != nil {
		return "", fmt.Errorf("rendering overlap prompt: %w", err)
	}

	return buf.String(), nil
}

// buildAssessmentPrompt renders the whole-PR assessment prompt
func buildAssessmentPrompt(number int, title, humanText, aiText string, sideCap int) (string, error) {
	var buf bytes.Buffer
	err := assessmentPrompt.Execute(&buf, map[string]interface{}{
		"Number":    number,
		"Title":     title,
		"HumanText": truncate(humanText, sideCap),
		"AIText":    truncate(aiText, sideCap),
	})
	if err != nil {
		return "", fmt.Errorf("rendering assessment prompt: %w", err)
	}

	return buf.String(), nil
}

// truncate keeps the first n bytes of s
// truncate caps s at n bytes, backing up so the cut never splits a
// multi-byte rune
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// joinBodies concatenates comment bodies with newlines
func joinBodies(comments []ReviewComment) string {
	bodies := make([]string, len(comments))
	for i, comment := range comments {
		bodies[i] = comment.Body
	}
	return strings.Join(bodies, "\n")
}

// joinAttributed concatenates comment bodies with author labels
func joinAttributed(comments []ReviewComment) string {
	lines := make([]string, len(comments))
	for i, comment := range comments {
		lines[i] = fmt.Sprintf("[%s]: %s", comment.Author, comment.Body)
	}
	return strings.Join(lines, "\n")
}
