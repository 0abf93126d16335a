package main

import (
	"fmt"

	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Print the question count and a sample of stored questions",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	questions := a.repo.Question()
	count, err := questions.Count(ctx)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Total questions in database: %d\n", count)

	sample, _, err := questions.List(ctx, repositories.QuestionFilters{Limit: 5})
	if err != nil {
		return err
	}
	for _, q := range sample {
		fmt.Fprintf(w, "- %s | %s | %s | %s\n", q.QuestionID, q.Section, q.Skill, q.Difficulty.Label())
	}
	return nil
}
