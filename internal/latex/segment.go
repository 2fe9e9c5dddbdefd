package latex

import "regexp"

// Marker comments that delimit the fields of a question block.
const (
	MarkerQuestion      = "% Question text"
	MarkerOption        = "% Option"
	MarkerCorrectAnswer = "% Correct Answer"
	MarkerSolution      = "% Solution"
	MarkerQuickTip      = "% Quick Tip"
)

// Go's RE2 has no lookahead, so patterns that stop "before" a marker
// consume it instead. No field marker can occur inside another, so the
// set of matches is the same.
var (
	questionBlockRe = regexp.MustCompile(`(?s)% Question text(.*?)% Option`)
	optionsBlockRe  = regexp.MustCompile(`(?s)(% Option.*?)% Correct Answer`)
	answerBlockRe   = regexp.MustCompile(`(?s)% Correct Answer(.*?)% Solution`)
	solutionBlockRe = regexp.MustCompile(`(?s)(% Solution.*?)% Quick Tip`)
	quickTipBlockRe = regexp.MustCompile(`(?s)(% Quick Tip.*?)\\end\{quicktipbox\}`)
)

// Segments holds the raw per-question substrings of each field category.
// The slices are parallel by question index but may differ in length.
type Segments struct {
	Questions []string
	Options   []string
	Answers   []string
	Solutions []string
	QuickTips []string
}

// Segment scans text once per category and returns every marker-delimited
// span found. A category with no markers yields an empty slice.
func Segment(text string) Segments {
	return Segments{
		Questions: findAll(questionBlockRe, text),
		Options:   findAll(optionsBlockRe, text),
		Answers:   findAll(answerBlockRe, text),
		Solutions: findAll(solutionBlockRe, text),
		QuickTips: findAll(quickTipBlockRe, text),
	}
}

func findAll(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// at returns s[i], or "" when the category ran out of blocks.
func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
