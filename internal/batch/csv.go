package batch

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadAnswersCSV reads a CSV file and returns the values of the "Answers"
// column, one per data row, in file order. Rows too short to contain the
// column yield an empty answer. A missing column fails the whole load.
func ReadAnswersCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are tolerated

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingAnswersColumn
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	idx, err := answersIndex(header)
	if err != nil {
		return nil, err
	}

	var answers []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		if idx < len(row) {
			answers = append(answers, row[idx])
		} else {
			answers = append(answers, "")
		}
	}
	return answers, nil
}

// WriteResultsCSV writes the generated prompts as a single-column CSV with a
// "generated_prompt" header, one row per prompt, preserving order.
func WriteResultsCSV(w io.Writer, prompts []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{OutputColumn}); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, p := range prompts {
		if err := cw.Write([]string{p}); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
