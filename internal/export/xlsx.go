package export

import (
	"fmt"
	"io"

	"github.com/dgallion1/qbexport/internal/question"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds the question table.
const SheetName = "Questions"

// XLSXWriter writes an Excel workbook: header row, then one row per record.
type XLSXWriter struct{}

func (x *XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (x *XLSXWriter) Extension() string { return "xlsx" }

func (x *XLSXWriter) Write(w io.Writer, records []question.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	cols := question.Columns(records)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	// Absent fields leave the cell unset rather than holding "".
	for i, r := range records {
		vals := r.Values()
		for j, c := range cols {
			v := vals[c]
			if v == nil {
				continue
			}
			var value any = *v
			if c == question.ColSeq {
				// S.no stays numeric so the sheet sorts naturally.
				value = r.Seq
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+2, err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
