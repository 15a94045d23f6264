package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	natsadapter "github.com/samirrijal/touristapi/internal/adapters/nats"
	"github.com/samirrijal/touristapi/internal/core/domain"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow completed lookups published to NATS",
	Long: `Subscribe to the lookup event stream and print one line per
completed lookup until interrupted.

Examples:
  lookup events
  lookup events --durable dashboards`,
	RunE: runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.Flags().String("durable", "lookup-cli", "durable consumer name")
}

func runEvents(cmd *cobra.Command, args []string) error {
	durable, _ := cmd.Flags().GetString("durable")
	if !cfg.NATS.Enabled {
		return fmt.Errorf("nats is disabled; set TOURIST_NATS_ENABLED=true")
	}

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	err = sub.SubscribeLookupCompleted(ctx, durable, func(_ context.Context, e *domain.LookupCompleted) error {
		_, err := fmt.Fprintln(out, formatEvent(e))
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("following lookup events", "subject", natsadapter.SubjectLookupCompleted, "durable", durable)
	<-ctx.Done()
	return nil
}

func formatEvent(e *domain.LookupCompleted) string {
	best := "-"
	if e.BestPageID != nil {
		best = fmt.Sprintf("%d", *e.BestPageID)
	}
	return fmt.Sprintf("%s  %.5f,%.5f  lang=%s  candidates=%d  best=%s  %dms",
		e.ID, e.Location.Lat, e.Location.Lng, e.Lang, e.Candidates, best, e.DurationMs)
}
