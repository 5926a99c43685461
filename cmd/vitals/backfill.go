package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmcorreia/vitals/internal/syncer"
	"github.com/jmcorreia/vitals/internal/types"
)

var backfillDays int

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Fill gaps in the stored history",
	Long: `Find dates with no stored record in the trailing window and re-sync
each one, oldest first, spacing requests to respect the gateway's rate
limit. The window is capped at 30 days.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if backfillDays < 1 || backfillDays > syncer.MaxBackfillDays {
			fmt.Fprintf(os.Stderr, "Error: --days must be 1-%d\n", syncer.MaxBackfillDays)
			os.Exit(1)
		}

		client, err := newProviderClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		b := syncer.NewBackfiller(store, syncer.New(store, client))

		end := types.TodayUTC().AddDays(-1)
		start := end.AddDays(-(backfillDays - 1))
		missing, err := b.MissingDates(ctx, start, end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		if len(missing) == 0 {
			fmt.Printf("%s no gaps in the last %d days\n", green("OK:"), backfillDays)
			return
		}

		fmt.Printf("Backfilling %d missing dates (%s to %s)...\n",
			len(missing), missing[0], missing[len(missing)-1])
		filled, err := b.Reconcile(ctx, missing)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: some dates failed: %v\n", err)
		}
		fmt.Printf("%s filled %d of %d dates\n", green("Done:"), filled, len(missing))
	},
}

func init() {
	backfillCmd.Flags().IntVar(&backfillDays, "days", syncer.StartupLookbackDays,
		"trailing window to check, in days")
	rootCmd.AddCommand(backfillCmd)
}
