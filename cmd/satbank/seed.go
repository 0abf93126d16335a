package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagSeedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Bulk load a cleaned question file into the database",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&flagSeedFile, "file", "", "Question file (.json or .xlsx); defaults to DATA_FILE")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	path := flagSeedFile
	if path == "" {
		path = a.cfg.DataFile
	}

	summary, err := a.services.Import.BulkLoadFile(ctx, path)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s in %s\n", summary.Message, summary.ProcessingTime)
	fmt.Fprintf(w, "  processed: %d\n  skipped:   %d\n  errors:    %d\n", summary.Processed, summary.Skipped, summary.Errors)
	for _, f := range summary.Failures {
		fmt.Fprintf(w, "  row %d %s: %s\n", f.Row, f.Column, f.Message)
	}
	return nil
}
