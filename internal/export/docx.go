package export

import (
	"fmt"
	"io"

	"github.com/dgallion1/qbexport/internal/question"
	"github.com/fumiama/go-docx"
)

// DOCXWriter writes a review document with one section per question.
type DOCXWriter struct{}

func (d *DOCXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

func (d *DOCXWriter) Extension() string { return "docx" }

func (d *DOCXWriter) Write(w io.Writer, records []question.Record) error {
	doc := docx.New().WithDefaultTheme()

	for _, r := range records {
		doc.AddParagraph().AddText(fmt.Sprintf("Question %d", r.Seq)).Bold().Size("28")
		addField(doc, "", r.Question)
		for i, opt := range r.Options {
			addField(doc, question.OptionColumn(i)+": ", opt)
		}
		for _, f := range []struct {
			label string
			value *string
		}{
			{question.ColCorrectAnswer, r.CorrectAnswer},
			{question.ColSolution, r.Solution},
			{question.ColQuickTip, r.QuickTip},
		} {
			if f.value != nil {
				addField(doc, f.label+": ", *f.value)
			}
		}
		doc.AddParagraph()
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

// addField writes one field, starting a new paragraph at each line break.
func addField(doc *docx.Docx, label, value string) {
	para := doc.AddParagraph()
	if label != "" {
		para.AddText(label).Bold()
	}
	for _, run := range Runs(value) {
		if run.Break {
			para = doc.AddParagraph()
			continue
		}
		r := para.AddText(run.Text)
		if run.Bold {
			r.Bold()
		}
	}
}
