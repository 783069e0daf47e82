// Package batch reads answer sets from tabular files and writes generated
// prompts back out. Inputs require a column literally named "Answers"; a file
// without it is rejected whole, never partially loaded.
package batch

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// AnswersColumn is the required input header. The match is exact and
// case-sensitive, with no whitespace trimming.
const AnswersColumn = "Answers"

// OutputColumn is the header of the generated output.
const OutputColumn = "generated_prompt"

// ErrMissingAnswersColumn is returned when an input file has no "Answers"
// column in its header row.
var ErrMissingAnswersColumn = errors.New(`input is missing the required "Answers" column`)

// answersIndex locates the AnswersColumn in a header row.
func answersIndex(header []string) (int, error) {
	for i, name := range header {
		if name == AnswersColumn {
			return i, nil
		}
	}
	return 0, ErrMissingAnswersColumn
}

// FormatFor maps a filename to a reader format based on its extension.
// Supported: .csv and .xlsx.
func FormatFor(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return "csv", nil
	case ".xlsx":
		return "xlsx", nil
	default:
		return "", fmt.Errorf("unsupported answers file %q: expected .csv or .xlsx", filename)
	}
}
