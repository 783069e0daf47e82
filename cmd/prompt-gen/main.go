package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gautamsabaresh/prompt-generator-activity/internal/build"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "prompt-gen",
		Short:   "A prompt template-filling tool for language activities",
		Long:    "prompt-gen — define prompt templates with placeholders, fetch activity content to fill them, and generate prompts for one or many student answers.",
		Version: build.String(),
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
