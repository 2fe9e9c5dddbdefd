package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/qbexport/internal/question"
)

// JSONWriter writes records as an array of column -> value objects.
type JSONWriter struct{}

func (j *JSONWriter) ContentType() string { return "application/json" }

func (j *JSONWriter) Extension() string { return "json" }

func (j *JSONWriter) Write(w io.Writer, records []question.Record) error {
	rows := make([]map[string]*string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Values())
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
