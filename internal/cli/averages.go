package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/kiranshivaraju/latencybench/internal/aggregate"
	"github.com/kiranshivaraju/latencybench/pkg/models"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type AveragesCmd struct {
	open StoreOpener
	now  func() time.Time
}

func NewAveragesCmd(open StoreOpener) *AveragesCmd {
	return &AveragesCmd{open: open, now: time.Now}
}

func (c *AveragesCmd) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "averages",
		Short: "Print average latency per function, database and query type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, days, err := commonFlags(cmd)
			if err != nil {
				return err
			}
			queryType, err := cmd.Flags().GetString("query-type")
			if err != nil {
				return fmt.Errorf("failed to get query-type flag: %w", err)
			}
			if queryType != "" && !models.QueryType(queryType).Valid() {
				return fmt.Errorf("invalid query type: %s", queryType)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			s, release, err := c.open(ctx, log)
			if err != nil {
				return err
			}
			defer release()

			functions, err := s.ListFunctions(ctx)
			if err != nil {
				return fmt.Errorf("failed to list functions: %w", err)
			}
			databases, err := s.ListDatabases(ctx)
			if err != nil {
				return fmt.Errorf("failed to list databases: %w", err)
			}
			stats, err := s.AverageLatencySince(ctx, aggregate.WindowStart(c.now().UTC(), days))
			if err != nil {
				return fmt.Errorf("failed to get averages: %w", err)
			}
			log.Debug("averages loaded", "rows", len(stats), "days", days)

			printAverages(cmd.OutOrStdout(), stats, functions, databases, models.QueryType(queryType), days)
			return nil
		},
	}

	cmd.Flags().String("query-type", "", "Only show one query type (cold, hot)")

	return cmd
}

func printAverages(w io.Writer, stats []models.AvgStat, functions []models.FunctionRegion, databases []models.DatabaseTarget, only models.QueryType, days int) {
	fnNames := make(map[int]string, len(functions))
	for _, f := range functions {
		fnNames[f.ID] = f.Name
	}
	dbs := make(map[int]models.DatabaseTarget, len(databases))
	for _, d := range databases {
		dbs[d.ID] = d
	}

	rows := make([]models.AvgStat, 0, len(stats))
	for _, s := range stats {
		if only != "" && s.QueryType != only {
			continue
		}
		rows = append(rows, s)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.FunctionID != b.FunctionID {
			return a.FunctionID < b.FunctionID
		}
		if a.DatabaseID != b.DatabaseID {
			return a.DatabaseID < b.DatabaseID
		}
		return a.QueryType < b.QueryType
	})

	fmt.Fprintf(w, "Window: last %d days\n", days)

	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Function", "Database", "Region", "Conn", "Query", "Avg (ms)", "Samples"})

	for _, s := range rows {
		db, ok := dbs[s.DatabaseID]
		dbName, region, conn := fmt.Sprintf("#%d", s.DatabaseID), "", ""
		if ok {
			dbName, region, conn = db.Name, db.RegionCode, string(db.ConnectionMethod)
		}
		fnName, ok := fnNames[s.FunctionID]
		if !ok {
			fnName = fmt.Sprintf("#%d", s.FunctionID)
		}
		avg := "-"
		if s.AvgLatencyMs != nil {
			avg = s.AvgLatencyMs.StringFixed(2)
		}
		table.Append([]string{fnName, dbName, region, conn, string(s.QueryType), avg, fmt.Sprintf("%d", s.Samples)})
	}
	table.Render()
}
