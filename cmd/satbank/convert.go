package main

import (
	"fmt"
	"os"

	"github.com/SAP-F-2025/sat-practice-service/internal/convert"
	"github.com/spf13/cobra"
)

var (
	flagConvertIn  string
	flagConvertOut string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a raw question dump into the cleaned bulk-load format",
	Args:  cobra.NoArgs,
	RunE:  runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&flagConvertIn, "in", "cb-digital-questions.json", "Raw question dump")
	convertCmd.Flags().StringVar(&flagConvertOut, "out", "cleaned_questions_full.json", "Cleaned output file")
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, err := os.Open(flagConvertIn)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	questions, err := convert.Transform(in)
	if err != nil {
		return err
	}

	out, err := os.Create(flagConvertOut)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := convert.Write(out, questions); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Transformed %d questions saved to %s\n", len(questions), flagConvertOut)
	return nil
}
