package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "satbank",
	Short: "SAT practice question bank",
	Long: `satbank serves the SAT practice question bank over HTTP and provides
maintenance commands for converting, loading and inspecting question data.

Usage:
  satbank serve
  satbank convert --in cb-digital-questions.json --out cleaned_questions_full.json
  satbank seed --file cleaned_questions_full.json
  satbank check`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
