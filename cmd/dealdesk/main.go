package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dealdesk/internal/app"
	"dealdesk/internal/config"
	"dealdesk/internal/logger"
)

type rootOptions struct {
	ConfigPath string
}

// @title                       Deal Desk API
// @version                     1.0
// @description                 Deal lifecycle and milestone tracking.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "dealdesk",
		Short: "Deal lifecycle and milestone tracking",
	}
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "config/config.yaml", "path to the yaml config")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newSweepCommand(opts))
	return cmd
}

// withApp loads config, builds the logger and the app, and runs fn until
// SIGINT or SIGTERM.
func withApp(opts *rootOptions, fn func(ctx context.Context, a *app.App, log *zap.Logger) error) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a, log)
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app.App, _ *zap.Logger) error {
				return a.Serve(ctx)
			})
		},
	}
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "migrate",
		Short:        "Apply the database schema",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app.App, log *zap.Logger) error {
				if err := a.Migrate(ctx); err != nil {
					return err
				}
				log.Info("schema applied")
				return nil
			})
		},
	}
}

func newSweepCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep-escalations",
		Short: "Mail overdue critical milestones to the escalation mailbox",
		Long: `Scan active deals for critical milestones past their due date and
send one escalation per deal. A milestone is mailed at most once per day.

Run it from cron, e.g. hourly.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, a *app.App, log *zap.Logger) error {
				res, err := a.SweepEscalations(ctx)
				if err != nil {
					return err
				}
				log.Info("escalation sweep finished",
					zap.Int("deals", res.Deals),
					zap.Int("sent", res.Sent),
					zap.Int("duplicates", res.Duplicates),
					zap.Int("failed", res.Failed))
				return nil
			})
		},
	}
}
