package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/activity"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/batch"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/config"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/prompt"
)

func newGenerateCmd() *cobra.Command {
	var (
		templateFile string
		contentURL   string
		varFlags     []string
		answer       string
		answersFile  string
		outFile      string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fill a template with variables and one or more answers",
		Long: `Fill a prompt template. Variables come from --url (fetched activity
content) and/or repeated --var name=value flags; --var wins on conflict.
Use --answer for a single answer, or --answers with a CSV/XLSX file that has
an "Answers" column. Batch output is written to --out (format by extension);
single output goes to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(templateFile)
			if err != nil {
				return fmt.Errorf("read template: %w", err)
			}
			template := string(raw)

			vars := prompt.NewVariables()
			if contentURL != "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				client := activity.NewClient(cfg.Fetch.Timeout)
				fetched, err := client.FetchVariables(cmd.Context(), contentURL)
				if err != nil {
					return err
				}
				vars = fetched
			}
			for _, kv := range varFlags {
				name, value, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("invalid --var %q: expected name=value", kv)
				}
				if !prompt.Allowed(name) || name == prompt.AnswerVariable {
					return fmt.Errorf("unknown variable %q: allowed names are %s",
						name, strings.Join(prompt.ExtractedVariables, ", "))
				}
				vars[name] = value
			}

			if unknown := prompt.UnknownTokens(template); unknown != nil {
				log.Printf("warning: template uses variables not in the predefined list: %s",
					strings.Join(unknown, ", "))
			}

			if answersFile == "" {
				fmt.Println(prompt.Fill(template, vars, answer))
				return nil
			}

			answers, err := readAnswersFile(answersFile)
			if err != nil {
				return err
			}
			prompts := prompt.FillBatch(template, vars, answers)

			if outFile == "" {
				return batch.WriteResultsCSV(os.Stdout, prompts)
			}
			return writeResultsFile(outFile, prompts)
		},
	}

	cmd.Flags().StringVarP(&templateFile, "template", "t", "", "template file (required)")
	cmd.Flags().StringVar(&contentURL, "url", "", "content URL to fetch variables from")
	cmd.Flags().StringArrayVar(&varFlags, "var", nil, "variable override, name=value (repeatable)")
	cmd.Flags().StringVar(&answer, "answer", "", "single student answer")
	cmd.Flags().StringVar(&answersFile, "answers", "", `CSV/XLSX answers file with an "Answers" column`)
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file for batch results (.csv or .xlsx)")
	_ = cmd.MarkFlagRequired("template")
	cmd.MarkFlagsMutuallyExclusive("answer", "answers")

	return cmd
}

func readAnswersFile(path string) ([]string, error) {
	format, err := batch.FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open answers file: %w", err)
	}
	defer f.Close()

	if format == "xlsx" {
		return batch.ReadAnswersXLSX(f)
	}
	return batch.ReadAnswersCSV(f)
}

func writeResultsFile(path string, prompts []string) error {
	format, err := batch.FormatFor(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if format == "xlsx" {
		return batch.WriteResultsXLSX(f, prompts)
	}
	return batch.WriteResultsCSV(f, prompts)
}
