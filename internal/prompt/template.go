// Package prompt implements placeholder substitution for prompt templates.
// Templates are flat text containing {{name}} tokens from a fixed allowed set;
// substitution is a single pass of literal replacements with no escaping and
// no recursive expansion.
package prompt

import (
	_ "embed"
	"regexp"
	"sort"
)

//go:embed default_template.txt
var DefaultTemplate string

// ExtractedVariables are the placeholder names that can be populated from
// fetched activity content.
var ExtractedVariables = []string{
	"task_instruction",
	"vocabulary_list",
	"grammar_reference",
	"communication_reference",
	"guiding_questions",
	"can_do_statements",
}

// AnswerVariable is the reserved placeholder filled from a student answer.
// It is never populated by extraction.
const AnswerVariable = "student_answer"

// Variables maps placeholder names to their string values. Missing keys are
// treated as empty strings during substitution.
type Variables map[string]string

// NewVariables returns a mapping with every extractable name set to "".
func NewVariables() Variables {
	vars := make(Variables, len(ExtractedVariables))
	for _, name := range ExtractedVariables {
		vars[name] = ""
	}
	return vars
}

// tokenRE matches {{...}} non-greedily; the inner text is captured verbatim,
// with no whitespace trimming.
var tokenRE = regexp.MustCompile(`\{\{(.*?)\}\}`)

var allowed = func() map[string]bool {
	m := make(map[string]bool, len(ExtractedVariables)+1)
	for _, name := range ExtractedVariables {
		m[name] = true
	}
	m[AnswerVariable] = true
	return m
}()

// Allowed reports whether name is in the fixed placeholder set.
func Allowed(name string) bool {
	return allowed[name]
}

// AllVariables returns the extractable names plus the answer variable.
func AllVariables() []string {
	return append(append([]string{}, ExtractedVariables...), AnswerVariable)
}

// TokensInUse returns the distinct placeholder names present in template,
// sorted for stable output.
func TokensInUse(template string) []string {
	seen := map[string]bool{}
	for _, m := range tokenRE.FindAllStringSubmatch(template, -1) {
		seen[m[1]] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownTokens returns the distinct tokens present in template that are not
// in the allowed set. Unknown tokens are a warning, not an error: they are
// left verbatim in the output and generation proceeds.
func UnknownTokens(template string) []string {
	var unknown []string
	for _, name := range TokensInUse(template) {
		if !allowed[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// Fill substitutes every allowed placeholder in template with its value from
// vars, with the answer variable set to answer. Replacement is literal and
// case-sensitive, and operates on the original template text only: a
// substituted value containing {{...}} text is never expanded further.
// Unknown tokens are left verbatim.
func Fill(template string, vars Variables, answer string) string {
	merged := make(Variables, len(ExtractedVariables)+1)
	for _, name := range ExtractedVariables {
		merged[name] = vars[name]
	}
	merged[AnswerVariable] = answer

	return tokenRE.ReplaceAllStringFunc(template, func(tok string) string {
		name := tok[2 : len(tok)-2]
		if !allowed[name] {
			return tok
		}
		return merged[name]
	})
}

// FillBatch runs Fill once per answer, preserving input order. The variable
// mapping is identical across the batch; only the answer token varies.
func FillBatch(template string, vars Variables, answers []string) []string {
	prompts := make([]string, 0, len(answers))
	for _, answer := range answers {
		prompts = append(prompts, Fill(template, vars, answer))
	}
	return prompts
}
