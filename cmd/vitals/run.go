package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmcorreia/vitals/internal/liveness"
	"github.com/jmcorreia/vitals/internal/notify"
	"github.com/jmcorreia/vitals/internal/report"
	"github.com/jmcorreia/vitals/internal/scheduler"
	"github.com/jmcorreia/vitals/internal/syncer"
)

var runNoBackfill bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sync daemon",
	Long: `Run the scheduler loop in the foreground: wake detection or fixed-time
sync, daily/weekly/monthly reports, the health endpoint, and a startup
backfill of the trailing week. Stops cleanly on SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDaemon(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func runDaemon() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := newProviderClient()
	if err != nil {
		return err
	}

	sync := syncer.New(store, client)
	notifier := notify.LogNotifier{}
	reporter := notify.NewReporter(report.NewEngine(store), notifier)

	wake := scheduler.NewWakeController(store, client, sync, reporter)
	retry := scheduler.NewRetryController(store, sync)
	sched := scheduler.New(&cfg.Schedule, store, sync, wake, retry, reporter)
	sched.SetFailureAlerter(notify.NewFailureAlerter(notifier))
	sched.SetBackupDir(cfg.BackupDir)

	if !runNoBackfill {
		b := syncer.NewBackfiller(store, sync)
		filled, err := b.ReconcileWindow(ctx, syncer.StartupLookbackDays)
		if err != nil {
			log.Printf("startup backfill incomplete: %v", err)
		}
		if filled > 0 {
			log.Printf("startup backfill filled %d days", filled)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.HealthPort > 0 {
		health := liveness.NewServer(store)
		g.Go(func() error {
			if err := health.Start(cfg.HealthPort); err != nil {
				return fmt.Errorf("health endpoint: %w", err)
			}
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return health.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		if err := sched.Start(gctx); err != nil {
			return fmt.Errorf("scheduler: %w", err)
		}
		<-gctx.Done()
		sched.Stop()
		return nil
	})

	log.Printf("vitals daemon running (mode=%s, db=%s, health=:%d)",
		cfg.Schedule.Mode, cfg.DatabasePath, cfg.HealthPort)
	return g.Wait()
}

func init() {
	runCmd.Flags().BoolVar(&runNoBackfill, "no-backfill", false,
		"skip the startup gap reconciliation")
	rootCmd.AddCommand(runCmd)
}
