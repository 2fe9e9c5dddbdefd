package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/qbexport/internal/question"
	"github.com/fumiama/go-docx"
	"github.com/xuri/excelize/v2"
)

func sampleRecords() []question.Record {
	return []question.Record{
		{
			Seq:           1,
			Question:      "<strong>Foo<br>Bar</strong> Find (x).",
			Options:       []string{`\(x=1\)`, `\(x=2\)`},
			CorrectAnswer: question.Ptr(`(B) \(x=2\)`),
			Solution:      question.Ptr("Subtract 1.<br>Done."),
			QuickTip:      question.Ptr("Isolate x."),
		},
		{
			Seq:      2,
			Question: "Pick one | or the other.",
			Options:  []string{`\(a_1\)`, `\(b\)`, `\(c\)`},
		},
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		name string
		ext  string
	}{
		{"", "xlsx"},
		{"xlsx", "xlsx"},
		{" CSV ", "csv"},
		{"docx", "docx"},
		{"html", "html"},
		{"json", "json"},
	}
	for _, tc := range tests {
		w, err := ForFormat(tc.name)
		if err != nil {
			t.Fatalf("ForFormat(%q): unexpected error: %v", tc.name, err)
		}
		if w.Extension() != tc.ext {
			t.Errorf("ForFormat(%q): expected extension %q, got %q", tc.name, tc.ext, w.Extension())
		}
	}

	if _, err := ForFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestForFilename(t *testing.T) {
	w, err := ForFilename("bank.csv")
	if err != nil || w.Extension() != "csv" {
		t.Errorf("expected csv writer, got %v, %v", w, err)
	}
	w, err = ForFilename("noext")
	if err != nil || w.Extension() != "xlsx" {
		t.Errorf("expected default xlsx writer, got %v, %v", w, err)
	}
}

func TestXLSXWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := (&XLSXWriter{}).Write(&buf, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	wantHeader := []string{"S.no", "Question text", "Option_1", "Option_2", "Option_3", "Correct Answer", "Solution", "Quick Tip"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("expected header %v, got %v", wantHeader, rows[0])
	}

	cells := map[string]string{
		"A2": "1",
		"B2": "<strong>Foo<br>Bar</strong> Find (x).",
		"D2": `\(x=2\)`,
		"E2": "",
		"F2": `(B) \(x=2\)`,
		"E3": `\(c\)`,
		"F3": "",
		"H3": "",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue(SheetName, cell)
		if err != nil {
			t.Fatalf("get %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s: expected %q, got %q", cell, want, got)
		}
	}

	// Absent values are unset cells, not empty strings.
	for _, cell := range []string{"E2", "F3", "G3", "H3"} {
		typ, err := f.GetCellType(SheetName, cell)
		if err != nil {
			t.Fatalf("type %s: %v", cell, err)
		}
		if typ != excelize.CellTypeUnset {
			t.Errorf("cell %s: expected unset, got type %v", cell, typ)
		}
	}
	for _, cell := range []string{"B2", "E3"} {
		if typ, _ := f.GetCellType(SheetName, cell); typ == excelize.CellTypeUnset {
			t.Errorf("cell %s: expected a value", cell)
		}
	}
}

func TestCSVWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVWriter{}).Write(&buf, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	want := []string{"2", "Pick one | or the other.", `\(a_1\)`, `\(b\)`, `\(c\)`, "", "", ""}
	if !reflect.DeepEqual(rows[2], want) {
		t.Errorf("expected %q, got %q", want, rows[2])
	}
}

func TestJSONWriter_NullsForAbsentFields(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(&buf, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got []map[string]*string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(got))
	}
	if v, ok := got[1]["Correct Answer"]; !ok || v != nil {
		t.Errorf("expected explicit null correct answer, got %v (present=%v)", v, ok)
	}
	if _, ok := got[0]["Option_3"]; ok {
		t.Error("expected no Option_3 key for a two-option record")
	}
	if !strings.Contains(buf.String(), "<strong>Foo<br>Bar</strong>") {
		t.Error("expected HTML markup to be written unescaped")
	}
}

func TestHTMLWriter_KeepsMarkupAndLatex(t *testing.T) {
	var buf bytes.Buffer
	if err := (&HTMLWriter{}).Write(&buf, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<table>",
		"<th>Option_1</th>",
		"<strong>Foo<br>Bar</strong>",
		`(B) \(x=2\)`,
		`\(a_1\)`,
		"Pick one | or the other.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestMarkdownTable_Escaping(t *testing.T) {
	md := MarkdownTable([]question.Record{{Seq: 1, Question: `a|b *c* \(d\)`}})
	if !strings.Contains(md, `a\|b \*c\* \\(d\\)`) {
		t.Errorf("expected escaped cell, got:\n%s", md)
	}
	lines := strings.Split(strings.TrimSpace(md), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, delimiter and one row, got %d lines", len(lines))
	}
}

func TestDOCXWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := (&DOCXWriter{}).Write(&buf, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}

	text := docxText(t, buf.Bytes())
	for _, want := range []string{
		"Question 1",
		"Foo",
		"Bar Find (x).",
		`Option_2: \(x=2\)`,
		`Correct Answer: (B) \(x=2\)`,
		"Quick Tip: Isolate x.",
		"Question 2",
		`Option_3: \(c\)`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected document to contain %q, got:\n%s", want, text)
		}
	}
	if strings.Contains(text, "<strong>") || strings.Contains(text, "<br>") {
		t.Error("expected markup to be converted to runs, not written as text")
	}
}

func TestRuns(t *testing.T) {
	got := Runs("<strong>Foo<br>Bar</strong> rest")
	want := []Run{
		{Text: "Foo", Bold: true},
		{Break: true},
		{Text: "Bar", Bold: true},
		{Text: " rest"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestRuns_LiteralComparisons(t *testing.T) {
	tests := []struct {
		field string
		want  []Run
	}{
		{`\(a<b\)`, []Run{{Text: `\(a<b\)`}}},
		{`\(x<y\) and \(y>z\)`, []Run{{Text: `\(x<y\) and \(y>z\)`}}},
		{`\(0<x<1\)`, []Run{{Text: `\(0<x<1\)`}}},
		{`a &lt; b & c`, []Run{{Text: `a &lt; b & c`}}},
		{`<strong>If \(a<b\)</strong><br>then`, []Run{
			{Text: `If \(a<b\)`, Bold: true},
			{Break: true},
			{Text: "then"},
		}},
	}
	for _, tc := range tests {
		if got := Runs(tc.field); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Runs(%q): expected %+v, got %+v", tc.field, tc.want, got)
		}
	}
}

func TestDOCXWriter_KeepsComparisons(t *testing.T) {
	records := []question.Record{{
		Seq:      1,
		Question: `Is \(x<y\) and \(y>z\)?`,
		Options:  []string{`\(a<b\)`},
	}}
	var buf bytes.Buffer
	if err := (&DOCXWriter{}).Write(&buf, records); err != nil {
		t.Fatalf("write: %v", err)
	}
	text := docxText(t, buf.Bytes())
	for _, want := range []string{`Is \(x<y\) and \(y>z\)?`, `Option_1: \(a<b\)`} {
		if !strings.Contains(text, want) {
			t.Errorf("expected document to contain %q, got:\n%s", want, text)
		}
	}
}

// docxText returns the non-empty paragraphs of a document, one per line.
func docxText(t *testing.T, data []byte) string {
	t.Helper()
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("parse docx: %v", err)
	}

	var paras []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		var sb strings.Builder
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				if t, ok := rc.(*docx.Text); ok {
					sb.WriteString(t.Text)
				}
			}
		}
		if s := strings.TrimSpace(sb.String()); s != "" {
			paras = append(paras, s)
		}
	}

	return strings.Join(paras, "\n")
}
