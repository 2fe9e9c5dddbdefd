package question

import "fmt"

// Column names shared by every export format.
const (
	ColSeq           = "S.no"
	ColQuestion      = "Question text"
	ColCorrectAnswer = "Correct Answer"
	ColSolution      = "Solution"
	ColQuickTip      = "Quick Tip"
)

// Record is one extracted question, ready for tabular output.
type Record struct {
	Seq           int      // 1-based position in the source document
	Question      string   // Cleaned question text (may contain <strong>/<br>)
	Options       []string // Cleaned options, in source order
	CorrectAnswer *string  // nil when the answer block is missing or malformed
	Solution      *string
	QuickTip      *string
}

// OptionColumn returns the column name for the option at 0-based position i.
func OptionColumn(i int) string {
	return fmt.Sprintf("Option_%d", i+1)
}

// Values returns the record as a sparse column -> value mapping. Absent
// fields map to nil; option columns exist only for options present.
func (r Record) Values() map[string]*string {
	seq := fmt.Sprintf("%d", r.Seq)
	q := r.Question
	m := map[string]*string{
		ColSeq:           &seq,
		ColQuestion:      &q,
		ColCorrectAnswer: r.CorrectAnswer,
		ColSolution:      r.Solution,
		ColQuickTip:      r.QuickTip,
	}
	for i := range r.Options {
		m[OptionColumn(i)] = &r.Options[i]
	}
	return m
}

// Columns computes the output schema: the union of columns across all
// records. Option columns sit between the question and the answer.
func Columns(records []Record) []string {
	maxOpts := 0
	for _, r := range records {
		if len(r.Options) > maxOpts {
			maxOpts = len(r.Options)
		}
	}
	cols := make([]string, 0, 5+maxOpts)
	cols = append(cols, ColSeq, ColQuestion)
	for i := range maxOpts {
		cols = append(cols, OptionColumn(i))
	}
	return append(cols, ColCorrectAnswer, ColSolution, ColQuickTip)
}

// Rows renders records as string rows following cols. Absent values are "".
func Rows(records []Record, cols []string) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		vals := r.Values()
		row := make([]string, len(cols))
		for j, c := range cols {
			if v := vals[c]; v != nil {
				row[j] = *v
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}
