package latex

import (
	"fmt"
	"log/slog"

	"github.com/dgallion1/qbexport/internal/question"
)

// Assemble cleans each segment and zips the results by question index.
// Records are produced only for detected question-text blocks.
func Assemble(seg Segments) []question.Record {
	if len(seg.Questions) == 0 {
		return nil
	}
	records := make([]question.Record, 0, len(seg.Questions))
	for i, raw := range seg.Questions {
		records = append(records, question.Record{
			Seq:           i + 1,
			Question:      CleanQuestion(raw),
			Options:       CleanOptions(at(seg.Options, i)),
			CorrectAnswer: CleanCorrectAnswer(at(seg.Answers, i)),
			Solution:      CleanSolution(at(seg.Solutions, i)),
			QuickTip:      CleanQuickTip(at(seg.QuickTips, i)),
		})
	}
	return records
}

// assemble is swapped out in tests to force a fault inside Process.
var assemble = Assemble

// Extractor converts LaTeX question banks into records.
type Extractor struct {
	log *slog.Logger
}

func NewExtractor(log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{log: log}
}

// Process segments and cleans text. It never fails: any internal fault
// is logged and reported as an empty result.
func (e *Extractor) Process(text string) (records []question.Record) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("error processing latex input", "error", fmt.Sprint(r), "input_bytes", len(text))
			records = nil
		}
	}()

	seg := Segment(text)
	records = assemble(seg)
	e.log.Debug("processed latex input",
		"questions", len(seg.Questions),
		"options_blocks", len(seg.Options),
		"answers", len(seg.Answers),
		"solutions", len(seg.Solutions),
		"quick_tips", len(seg.QuickTips),
	)
	return records
}

// Process runs the default extractor, logging through slog.Default().
func Process(text string) []question.Record {
	return NewExtractor(nil).Process(text)
}
