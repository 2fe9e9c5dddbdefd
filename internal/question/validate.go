package question

import (
	"fmt"
	"regexp"
	"strings"
)

// Issue is a problem found in one extracted record. Issues never stop a
// conversion; they are reported alongside the output.
type Issue struct {
	Seq     int    `json:"seq"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MinOptions is the smallest option count a well-formed question has.
const MinOptions = 2

var answerLabelPattern = regexp.MustCompile(`^\(([A-Za-z])\)\s*(.*)$`)

// Validate checks a record for gaps the extractor tolerates silently.
func Validate(r Record) []Issue {
	var issues []Issue
	add := func(field, format string, args ...any) {
		issues = append(issues, Issue{Seq: r.Seq, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(r.Question) == "" {
		add(ColQuestion, "question text is empty")
	}
	if len(r.Options) < MinOptions {
		add(OptionColumn(0), "expected at least %d options, found %d", MinOptions, len(r.Options))
	}
	if r.Solution == nil {
		add(ColSolution, "solution is missing")
	}

	if r.CorrectAnswer == nil {
		add(ColCorrectAnswer, "correct answer is missing or malformed")
		return issues
	}
	m := answerLabelPattern.FindStringSubmatch(*r.CorrectAnswer)
	if m == nil {
		add(ColCorrectAnswer, "answer %q has no single-letter label", *r.CorrectAnswer)
		return issues
	}
	idx := int(strings.ToUpper(m[1])[0] - 'A')
	if idx >= len(r.Options) {
		add(ColCorrectAnswer, "answer label (%s) has no matching option", m[1])
		return issues
	}
	if m[2] != r.Options[idx] {
		add(ColCorrectAnswer, "answer %q differs from %s %q", m[2], OptionColumn(idx), r.Options[idx])
	}
	return issues
}

// ValidateAll validates every record, in order.
func ValidateAll(records []Record) []Issue {
	var issues []Issue
	for _, r := range records {
		issues = append(issues, Validate(r)...)
	}
	return issues
}
