package batch

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadAnswersXLSX reads the first sheet of an XLSX workbook and returns the
// values of the "Answers" column, one per data row. Cell values come back as
// their displayed strings, so numeric answers are coerced the same way a
// spreadsheet shows them.
func ReadAnswersXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingAnswersColumn
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read XLSX rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingAnswersColumn
	}

	idx, err := answersIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var answers []string
	for _, row := range rows[1:] {
		if idx < len(row) {
			answers = append(answers, row[idx])
		} else {
			answers = append(answers, "")
		}
	}
	return answers, nil
}

// WriteResultsXLSX writes the generated prompts as a single-column worksheet
// with a "generated_prompt" header.
func WriteResultsXLSX(w io.Writer, prompts []string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", OutputColumn); err != nil {
		return fmt.Errorf("write XLSX header: %w", err)
	}
	for i, p := range prompts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, p); err != nil {
			return fmt.Errorf("write XLSX row: %w", err)
		}
	}
	return f.Write(w)
}
