package latex

import (
	"regexp"
	"strings"
)

// LineBreak is the display marker that replaces the LaTeX `\\` escape.
const LineBreak = "<br>"

var (
	boldRe    = regexp.MustCompile(`\\textbf\{(.+?)\}`)
	commandRe = regexp.MustCompile(`\\[a-zA-Z]+\{.*?\}`)
	enumRe    = regexp.MustCompile(`^\d+\.\s*`)

	inlineMathRe   = regexp.MustCompile(`\\\(.*?\\\)`)
	labelledMathRe = regexp.MustCompile(`\((.*?)\)\s*\\\(.*?\\\)`)
	labelRe        = regexp.MustCompile(`\((.*?)\)`)

	answerRe = regexp.MustCompile(`\\textbf\{Correct Answer:\} (.*?\\\(.*?\\\))`)

	solutionHeadRe = regexp.MustCompile(`.*?% Solution\s*(?:\\noindent\s*)?(?:\\textbf\{Solution:\})?`)

	quickTipHeadRe  = regexp.MustCompile(`^% Quick Tip\s*`)
	quickTipOpenRe  = regexp.MustCompile(`.*?\{quicktipbox\}\s*`)
	quickTipCloseRe = regexp.MustCompile(`\\end\{quicktipbox\}.*`)
)

// CleanQuestion turns a raw question block into display text. The first
// \textbf{...} span is kept as a <strong> lead-in; every other brace
// command is removed together with its argument.
func CleanQuestion(raw string) string {
	raw = strings.TrimSpace(raw)

	var lead string
	if m := boldRe.FindStringSubmatch(raw); m != nil {
		lead = "<strong>" + lineBreaks(m[1]) + "</strong>"
	}

	// Blunt strip: nested bold or math inside a command is lost.
	text := commandRe.ReplaceAllString(raw, "")
	text = dropStrayBackslashes(text)
	text = dropUnopenedBraces(text)
	text = collapseSpace(text)
	text = enumRe.ReplaceAllString(text, "")

	if lead != "" {
		text = lead + " " + text
	}
	return text
}

// CleanOptions extracts the inline math of every `(label) \(...\)` option
// in the block. Pieces without that shape are skipped.
func CleanOptions(raw string) []string {
	if raw == "" {
		return nil
	}
	var opts []string
	for _, piece := range strings.Split(raw, MarkerOption) {
		if !labelledMathRe.MatchString(piece) {
			continue
		}
		opts = append(opts, lineBreaks(inlineMathRe.FindString(piece)))
	}
	return opts
}

// CleanCorrectAnswer returns "(label) \(math\)" from a
// `\textbf{Correct Answer:} (B) \(...\)` line, or nil.
func CleanCorrectAnswer(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	m := answerRe.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	label := labelRe.FindString(m[1])
	math := inlineMathRe.FindString(m[1])
	if label == "" || math == "" {
		return nil
	}
	ans := strings.TrimSpace(label + " " + lineBreaks(math))
	return &ans
}

// CleanSolution drops the marker and "Solution:" label and flattens the
// remaining text onto one line.
func CleanSolution(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	text := solutionHeadRe.ReplaceAllString(raw, "")
	text = strings.ReplaceAll(text, "\n", "")
	text = lineBreaks(collapseSpace(text))
	return &text
}

// CleanQuickTip returns the body of the quicktipbox environment.
func CleanQuickTip(raw string) *string {
	if raw == "" {
		return nil
	}
	text := quickTipHeadRe.ReplaceAllString(raw, "")
	text = quickTipOpenRe.ReplaceAllString(text, "")
	text = quickTipCloseRe.ReplaceAllString(text, "")
	text = lineBreaks(collapseSpace(text))
	return &text
}

func lineBreaks(s string) string {
	return strings.ReplaceAll(s, `\\`, LineBreak)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// dropStrayBackslashes removes every backslash not directly followed by
// a line-break marker.
func dropStrayBackslashes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && !strings.HasPrefix(s[i+1:], LineBreak) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// dropUnopenedBraces removes '}' unless the preceding byte is '{'.
func dropUnopenedBraces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '}' && (i == 0 || s[i-1] != '{') {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
