package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dgallion1/qbexport/internal/question"
)

// CSVWriter writes the question table as CSV.
type CSVWriter struct{}

func (c *CSVWriter) ContentType() string { return "text/csv; charset=utf-8" }

func (c *CSVWriter) Extension() string { return "csv" }

func (c *CSVWriter) Write(w io.Writer, records []question.Record) error {
	cw := csv.NewWriter(w)
	cols := question.Columns(records)
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(question.Rows(records, cols)); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}
