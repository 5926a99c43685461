package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmcorreia/vitals/internal/notify"
	"github.com/jmcorreia/vitals/internal/report"
	"github.com/jmcorreia/vitals/internal/types"
)

const (
	historyMaxDays     = 14
	historyMaxLookback = 90
)

var historyCmd = &cobra.Command{
	Use:   "history [days|date]",
	Short: "Show stored metrics for past days",
	Long: `Show a table of the last N days (1-14, default 7), or the full summary
for one date given as YYYY-MM-DD. Single-date lookups reach at most 90
days back.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}

		if n, err := strconv.Atoi(arg); arg == "" || err == nil {
			if arg == "" {
				n = 7
			}
			if n < 1 || n > historyMaxDays {
				fmt.Fprintf(os.Stderr, "Error: days must be 1-%d\n", historyMaxDays)
				os.Exit(1)
			}
			end := types.TodayUTC().AddDays(-1)
			records, err := store.GetRange(ctx, end.AddDays(-(n - 1)), end)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if len(records) == 0 {
				fmt.Printf("No data in the last %d days\n", n)
				return
			}
			fmt.Print(historyTable(records))
			return
		}

		date, err := types.ParseDate(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: pass a day count or a YYYY-MM-DD date\n")
			os.Exit(1)
		}
		today := types.TodayUTC()
		if date.After(today) {
			fmt.Fprintf(os.Stderr, "Error: %s is in the future\n", date)
			os.Exit(1)
		}
		if today.DaysSince(date) > historyMaxLookback {
			fmt.Fprintf(os.Stderr, "Error: lookups reach at most %d days back\n", historyMaxLookback)
			os.Exit(1)
		}

		rep, err := report.NewEngine(store).Daily(ctx, date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if rep.Record == nil {
			fmt.Printf("No data for %s. Try \"vitals backfill\".\n", date)
			return
		}
		fmt.Println(notify.FormatDaily(rep))
	},
}

// historyTable renders records as a fixed-width table, one row per
// stored day. Absent metrics render as "-".
func historyTable(records []*types.DailyRecord) string {
	var b strings.Builder
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(&b, "%s\n", bold("Date        Sleep  Score  Steps   Active  Resting"))
	for _, r := range records {
		fmt.Fprintf(&b, "%s  %5s  %5s  %6s  %6s  %7s\n",
			r.Date,
			cellF(r.SleepHours, "%.1fh"),
			cellI(r.SleepScore),
			cellI(r.Steps),
			cellI(r.ActiveCalories),
			cellI(r.RestingCalories),
		)
	}
	return b.String()
}

func cellF(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func cellI(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
