// Package cli implements benchctl, a terminal view of the benchmark tables.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kiranshivaraju/latencybench/internal/config"
	"github.com/kiranshivaraju/latencybench/internal/store"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

// Run executes the root command against os.Args.
func Run() ExitCode {
	_ = godotenv.Load()

	if err := NewRootCmd(openStore).Execute(); err != nil {
		return exitCodeError
	}
	return exitCodeSuccess
}

// StoreOpener returns a store and a function releasing it.
type StoreOpener func(ctx context.Context, log *slog.Logger) (store.Store, func(), error)

// NewRootCmd builds the command tree. open is called lazily by subcommands
// that need the database.
func NewRootCmd(open StoreOpener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "benchctl",
		Short:        "Inspect serverless database latency benchmarks.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Help(); err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "set debug logging level")
	rootCmd.PersistentFlags().Int("days", 30, "trailing window in days")

	rootCmd.AddCommand(
		NewAveragesCmd(open).Command(),
		NewHistoryCmd(open).Command(),
	)

	return rootCmd
}

func openStore(ctx context.Context, log *slog.Logger) (store.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Debug("database connected")
	return store.NewPostgresStore(pool), pool.Close, nil
}

// commonFlags reads the persistent flags shared by every subcommand.
func commonFlags(cmd *cobra.Command) (*slog.Logger, int, error) {
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	days, err := cmd.Root().PersistentFlags().GetInt("days")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get days flag: %w", err)
	}
	if days < 1 || days > 365 {
		return nil, 0, fmt.Errorf("days must be between 1 and 365, got %d", days)
	}
	return newLogger(verbose), days, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}
