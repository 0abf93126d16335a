package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/SAP-F-2025/sat-practice-service/internal/config"
	"github.com/SAP-F-2025/sat-practice-service/internal/events"
	"github.com/SAP-F-2025/sat-practice-service/internal/utils"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow question bank events on the Kafka topic",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := utils.NewLogger(cfg.Environment)

	consumer, err := cfg.Events.CreateConsumer(logger.Slog())
	if err != nil {
		return err
	}
	defer consumer.Close()

	w := cmd.OutOrStdout()
	logger.Info("Following question events", "topic", cfg.Events.Topic, "group", cfg.Events.ConsumerGroup)
	return consumer.Run(ctx, func(_ context.Context, e *events.QuestionEvent) error {
		if loaded, ok := e.Data.(events.BulkLoadedEvent); ok {
			fmt.Fprintf(w, "%s %s origin=%s processed=%d skipped=%d errors=%d\n",
				e.Timestamp.Format("2006-01-02 15:04:05"), e.Type,
				loaded.Origin, loaded.Processed, loaded.Skipped, loaded.Errors)
			return nil
		}
		fmt.Fprintf(w, "%s %s %v\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Type, e.Data)
		return nil
	})
}
