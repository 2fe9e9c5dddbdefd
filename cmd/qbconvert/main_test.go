package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const bank = `% Question text
1. \textbf{Evaluate} \(2+2\).
% Option
(A) \(3\)
% Option
(B) \(4\)
% Correct Answer
\textbf{Correct Answer:} (B) \(4\)
% Solution
\noindent\textbf{Solution:} Add.
% Quick Tip
\begin{quicktipbox}
Count.
\end{quicktipbox}
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvertFileToXLSX(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bank.tex")
	if err := os.WriteFile(in, []byte(bank), 0o644); err != nil {
		t.Fatal(err)
	}
	outPath := filepath.Join(dir, "bank.xlsx")

	msg, err := execute(t, "", in, "-o", outPath)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(msg, "1 questions written") {
		t.Errorf("unexpected output %q", msg)
	}

	f, err := excelize.OpenFile(outPath)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	got, err := f.GetCellValue("Questions", "D2")
	if err != nil {
		t.Fatal(err)
	}
	if got != `\(4\)` {
		t.Errorf("expected Option_2 %q, got %q", `\(4\)`, got)
	}
}

func TestConvertStdinToJSONStdout(t *testing.T) {
	out, err := execute(t, bank, "-o", "-", "-f", "json")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var rows []map[string]*string
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(rows) != 1 || rows[0]["Correct Answer"] == nil || *rows[0]["Correct Answer"] != `(B) \(4\)` {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestNoQuestionsIsAnError(t *testing.T) {
	if _, err := execute(t, "plain text", "-o", "-", "-f", "csv"); err == nil {
		t.Error("expected error for input without questions")
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := execute(t, bank, "-o", "-", "-f", "pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}
