package question

import "testing"

func validRecord() Record {
	return Record{
		Seq:           3,
		Question:      "Find x.",
		Options:       []string{`\(1\)`, `\(2\)`},
		CorrectAnswer: Ptr(`(B) \(2\)`),
		Solution:      Ptr("Because."),
	}
}

func TestValidate_Clean(t *testing.T) {
	if issues := Validate(validRecord()); len(issues) != 0 {
		t.Errorf("expected no issues, got %+v", issues)
	}
}

func TestValidate_QuickTipOptional(t *testing.T) {
	r := validRecord()
	r.QuickTip = nil
	if issues := Validate(r); len(issues) != 0 {
		t.Errorf("expected no issues, got %+v", issues)
	}
}

func TestValidate_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
		field  string
	}{
		{"empty question", func(r *Record) { r.Question = "  " }, ColQuestion},
		{"one option", func(r *Record) { r.Options = r.Options[:1]; r.CorrectAnswer = Ptr(`(A) \(1\)`) }, "Option_1"},
		{"no solution", func(r *Record) { r.Solution = nil }, ColSolution},
		{"no answer", func(r *Record) { r.CorrectAnswer = nil }, ColCorrectAnswer},
		{"label out of range", func(r *Record) { r.CorrectAnswer = Ptr(`(D) \(2\)`) }, ColCorrectAnswer},
		{"answer differs", func(r *Record) { r.CorrectAnswer = Ptr(`(A) \(2\)`) }, ColCorrectAnswer},
		{"multi-letter label", func(r *Record) { r.CorrectAnswer = Ptr(`(AB) \(2\)`) }, ColCorrectAnswer},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := validRecord()
			tc.mutate(&r)
			issues := Validate(r)
			if len(issues) != 1 {
				t.Fatalf("expected 1 issue, got %+v", issues)
			}
			if issues[0].Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, issues[0].Field)
			}
			if issues[0].Seq != 3 {
				t.Errorf("expected seq 3, got %d", issues[0].Seq)
			}
		})
	}
}

func TestValidateAll_KeepsOrder(t *testing.T) {
	a := validRecord()
	a.Seq = 1
	a.Solution = nil
	b := validRecord()
	b.Seq = 2
	b.Question = ""

	issues := ValidateAll([]Record{a, validRecord(), b})
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", issues)
	}
	if issues[0].Seq != 1 || issues[1].Seq != 2 {
		t.Errorf("unexpected order %+v", issues)
	}
}
