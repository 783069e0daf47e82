package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/activity"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/config"
	"github.com/gautamsabaresh/prompt-generator-activity/internal/prompt"
)

func newFetchCmd() *cobra.Command {
	var (
		url    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch activity content and print the extracted variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			client := activity.NewClient(cfg.Fetch.Timeout)
			vars, err := client.FetchVariables(cmd.Context(), url)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(vars)
			}

			for _, name := range prompt.ExtractedVariables {
				fmt.Printf("%s:\n%s\n\n", name, vars[name])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "content URL returning activity JSON (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the variables as JSON")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}
