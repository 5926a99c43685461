package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmcorreia/vitals/internal/types"
)

var weightDate string

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Record body weight",
}

var weightAddCmd = &cobra.Command{
	Use:   "add <kg>",
	Short: "Record a weight measurement",
	Long: `Record a weight in kilograms. Defaults to today; pass --date to
record a past measurement. Only the weight field of the day's record
is touched.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kg, err := strconv.ParseFloat(args[0], 64)
		if err != nil || kg <= 0 || kg > 500 {
			fmt.Fprintf(os.Stderr, "Error: weight must be a number between 0 and 500 kg\n")
			os.Exit(1)
		}

		date := types.TodayUTC()
		if weightDate != "" {
			date, err = types.ParseDate(weightDate)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid --date: %v\n", err)
				os.Exit(1)
			}
		}

		patch := &types.DailyPatch{WeightKg: types.Ptr(kg)}
		if err := store.UpsertDaily(context.Background(), date, patch); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %.1f kg on %s\n", green("Recorded:"), kg, date)
	},
}

func init() {
	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "measurement date (YYYY-MM-DD)")
	weightCmd.AddCommand(weightAddCmd)
	rootCmd.AddCommand(weightCmd)
}
