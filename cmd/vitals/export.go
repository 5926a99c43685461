package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmcorreia/vitals/internal/types"
)

const exportNutritionDays = 90

var (
	exportNutrition bool
	exportLimit     int
	exportOut       string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored data as CSV",
	Long: `Export the full metrics history as CSV, oldest first. With --nutrition
the food ledger of the last 90 days is exported instead. Output goes
to stdout unless --out names a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		var data string
		var count int
		var err error
		if exportNutrition {
			today := types.TodayUTC()
			entries, ferr := store.FoodEntriesRange(ctx, today.AddDays(-exportNutritionDays), today)
			if ferr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", ferr)
				os.Exit(1)
			}
			if len(entries) == 0 {
				fmt.Println("No nutrition data to export")
				return
			}
			data, err = nutritionCSV(entries)
			count = len(entries)
		} else {
			records, rerr := store.AllRecords(ctx, exportLimit)
			if rerr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rerr)
				os.Exit(1)
			}
			if len(records) == 0 {
				fmt.Println("No data to export")
				return
			}
			data, err = metricsCSV(records)
			count = len(records)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if exportOut == "" {
			fmt.Print(data)
			return
		}
		if err := os.WriteFile(exportOut, []byte(data), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %d rows written to %s\n", green("Exported:"), count, exportOut)
	},
}

// metricsCSV renders daily records as CSV, one row per stored day.
// Absent metrics render as empty cells.
func metricsCSV(records []*types.DailyRecord) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{
		"date", "sleep_hours", "sleep_score", "sleep_quality", "steps",
		"active_calories", "resting_calories", "resting_heart_rate",
		"avg_stress", "body_battery_high", "body_battery_low",
	}); err != nil {
		return "", err
	}
	for _, r := range records {
		if err := w.Write([]string{
			r.Date.String(),
			csvF(r.SleepHours),
			csvI(r.SleepScore),
			r.SleepQuality,
			csvI(r.Steps),
			csvI(r.ActiveCalories),
			csvI(r.RestingCalories),
			csvI(r.RestingHeartRate),
			csvI(r.AvgStress),
			csvI(r.BodyBatteryHigh),
			csvI(r.BodyBatteryLow),
		}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

// nutritionCSV renders food entries as CSV, one row per entry.
func nutritionCSV(entries []*types.FoodEntry) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write([]string{
		"date", "name", "quantity", "unit", "calories", "protein_g",
		"fat_g", "carbs_g", "fiber_g", "source", "barcode",
	}); err != nil {
		return "", err
	}
	for _, e := range entries {
		if err := w.Write([]string{
			e.Date.String(),
			e.Name,
			strconv.FormatFloat(e.Quantity, 'f', -1, 64),
			e.Unit,
			csvF(e.Calories),
			csvF(e.ProteinG),
			csvF(e.FatG),
			csvF(e.CarbsG),
			csvF(e.FiberG),
			e.Source,
			e.Barcode,
		}); err != nil {
			return "", err
		}
	}
	w.Flush()
	return b.String(), w.Error()
}

func csvF(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func csvI(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func init() {
	exportCmd.Flags().BoolVar(&exportNutrition, "nutrition", false,
		"export the food ledger instead of daily metrics")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0,
		"export only the most recent N days (0 = all)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
