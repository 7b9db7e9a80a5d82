package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/kiranshivaraju/latencybench/internal/aggregate"
	"github.com/kiranshivaraju/latencybench/internal/store"
	"github.com/kiranshivaraju/latencybench/pkg/models"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type HistoryCmd struct {
	open StoreOpener
	now  func() time.Time
}

func NewHistoryCmd(open StoreOpener) *HistoryCmd {
	return &HistoryCmd{open: open, now: time.Now}
}

func (c *HistoryCmd) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "history <database-id>",
		Short: "Print the daily cold and hot latency of one database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, days, err := commonFlags(cmd)
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid database id: %q", args[0])
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			s, release, err := c.open(ctx, log)
			if err != nil {
				return err
			}
			defer release()

			db, err := s.GetDatabase(ctx, id)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("database %d not found", id)
			}
			if err != nil {
				return fmt.Errorf("failed to get database: %w", err)
			}

			now := c.now().UTC()
			observations, err := s.ListObservationsForDatabase(ctx, id, aggregate.WindowStart(now, days))
			if err != nil {
				return fmt.Errorf("failed to list observations: %w", err)
			}
			log.Debug("observations loaded", "database_id", id, "count", len(observations))

			printHistory(cmd.OutOrStdout(), db, aggregate.DailySeries(observations, id, days, now))
			return nil
		},
	}
}

func printHistory(w io.Writer, db *models.DatabaseTarget, points []aggregate.DailyPoint) {
	fmt.Fprintf(w, "Database: %s (%s, %s, %s)\n", db.Name, db.Provider, db.RegionCode, db.ConnectionMethod)

	if len(points) == 0 {
		fmt.Fprintln(w, "No data in window.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Date", "Cold (ms)", "Cold (#)", "Hot (ms)", "Hot (#)"})

	for _, p := range points {
		table.Append([]string{p.Date, formatMean(p.Cold), strconv.Itoa(p.Cold.Count), formatMean(p.Hot), strconv.Itoa(p.Hot.Count)})
	}
	table.Render()
}

func formatMean(m aggregate.Mean) string {
	if !m.Valid() {
		return "-"
	}
	return strconv.FormatFloat(m.Rounded(), 'f', 2, 64)
}
