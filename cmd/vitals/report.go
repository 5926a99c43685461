package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmcorreia/vitals/internal/notify"
	"github.com/jmcorreia/vitals/internal/report"
	"github.com/jmcorreia/vitals/internal/types"
)

var reportDate string

var reportCmd = &cobra.Command{
	Use:   "report [daily|weekly|monthly]",
	Short: "Print a health report",
	Long: `Build a report from stored metrics and print it. Daily reports cover a
single date, weekly reports the trailing 7 days, monthly the trailing
30. Without --date the report ends at yesterday.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		end := types.TodayUTC().AddDays(-1)
		if reportDate != "" {
			var err error
			end, err = types.ParseDate(reportDate)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid --date: %v\n", err)
				os.Exit(1)
			}
		}

		engine := report.NewEngine(store)
		var body string
		var err error
		switch args[0] {
		case "daily":
			var rep *report.DailyReport
			if rep, err = engine.Daily(ctx, end); err == nil {
				body = notify.FormatDaily(rep)
			}
		case "weekly":
			var rep *report.WeeklyReport
			if rep, err = engine.Weekly(ctx, end); err == nil {
				body = notify.FormatWeekly(rep)
			}
		case "monthly":
			var rep *report.MonthlyReport
			if rep, err = engine.Monthly(ctx, end); err == nil {
				body = notify.FormatMonthly(rep)
			}
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown report type %q (daily, weekly, monthly)\n", args[0])
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(body)
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "report end date (YYYY-MM-DD)")
	rootCmd.AddCommand(reportCmd)
}
