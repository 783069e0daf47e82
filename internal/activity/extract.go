// Package activity fetches activity content documents and extracts the
// template variable values from them.
package activity

import (
	"fmt"
	"strings"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/prompt"
)

// Extract pulls the six extractable variable values out of a decoded JSON
// document. Every traversal step is type-checked independently: a missing or
// misshapen branch yields an empty string for that variable only, and the
// remaining branches are still extracted. No keys outside the fixed set are
// ever produced.
func Extract(doc any) prompt.Variables {
	vars := prompt.NewVariables()

	root, ok := doc.(map[string]any)
	if !ok {
		return vars
	}

	extractInteractions(root, vars)
	extractReferenceScreens(root, vars)
	extractSecondaryScreens(root, vars)
	return vars
}

// extractInteractions fills task_instruction and can_do_statements from the
// first element of the interactions list.
func extractInteractions(root map[string]any, vars prompt.Variables) {
	interactions, ok := root["interactions"].([]any)
	if !ok || len(interactions) == 0 {
		return
	}
	interaction, ok := interactions[0].(map[string]any)
	if !ok {
		return
	}

	if instruction, ok := interaction["instruction"].(string); ok {
		vars["task_instruction"] = instruction
	}

	statements, ok := interaction["canDoStatement"].([]any)
	if !ok {
		return
	}
	var lines []string
	for _, raw := range statements {
		stmt, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if text, ok := stmt["statement"].(string); ok && text != "" {
			lines = append(lines, "- "+text)
		}
	}
	vars["can_do_statements"] = strings.Join(lines, "\n")
}

// extractReferenceScreens fills vocabulary_list, grammar_reference, and
// communication_reference. When the grammar or communication category appears
// more than once the last entry wins, matching the original behavior.
func extractReferenceScreens(root map[string]any, vars prompt.Variables) {
	screens, ok := root["referenceScreens"].([]any)
	if !ok {
		return
	}
	var vocabulary []string
	for _, raw := range screens {
		screen, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		category, _ := screen["category"].(string)
		contents, ok := screen["contents"].(map[string]any)
		if !ok {
			continue
		}
		switch category {
		case "vocabulary":
			items, ok := contents["vocabularyList"].([]any)
			if !ok {
				continue
			}
			for _, item := range items {
				if truthy(item) {
					vocabulary = append(vocabulary, stringify(item))
				}
			}
		case "grammar":
			if ref, ok := contents["reference"].(string); ok {
				vars["grammar_reference"] = ref
			}
		case "communication":
			if ref, ok := contents["reference"].(string); ok {
				vars["communication_reference"] = ref
			}
		}
	}
	vars["vocabulary_list"] = strings.Join(vocabulary, ", ")
}

// extractSecondaryScreens fills guiding_questions from the secondaryContent
// fields across all secondary screens.
func extractSecondaryScreens(root map[string]any, vars prompt.Variables) {
	screens, ok := root["secondaryScreens"].([]any)
	if !ok {
		return
	}
	var lines []string
	for _, raw := range screens {
		screen, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		items, ok := screen["contents"].([]any)
		if !ok {
			continue
		}
		for _, rawItem := range items {
			item, ok := rawItem.(map[string]any)
			if !ok {
				continue
			}
			if content := item["secondaryContent"]; truthy(content) {
				lines = append(lines, "- "+stringify(content))
			}
		}
	}
	vars["guiding_questions"] = strings.Join(lines, "\n")
}

// truthy reports whether a JSON-decoded value counts as present: nil, empty
// strings, false, zero numbers, and empty collections are skipped.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

// stringify renders a JSON-decoded scalar as a string. Whole-number floats
// print without a fractional part.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprint(val)
	}
}
