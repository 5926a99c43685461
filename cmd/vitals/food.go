package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmcorreia/vitals/internal/types"
)

var (
	foodQuantity float64
	foodUnit     string
	foodCalories float64
	foodProtein  float64
	foodFat      float64
	foodCarbs    float64
	foodFiber    float64
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Log food and review nutrition",
}

var foodAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Log a food entry for today",
	Long: `Log one food item against today's nutrition ledger. Macros are
optional; pass what you know.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		for _, a := range args[1:] {
			name += " " + a
		}

		entry := &types.FoodEntry{
			Name:     name,
			Quantity: foodQuantity,
			Unit:     foodUnit,
			Source:   "manual",
		}
		if cmd.Flags().Changed("calories") {
			entry.Calories = types.Ptr(foodCalories)
		}
		if cmd.Flags().Changed("protein") {
			entry.ProteinG = types.Ptr(foodProtein)
		}
		if cmd.Flags().Changed("fat") {
			entry.FatG = types.Ptr(foodFat)
		}
		if cmd.Flags().Changed("carbs") {
			entry.CarbsG = types.Ptr(foodCarbs)
		}
		if cmd.Flags().Changed("fiber") {
			entry.FiberG = types.Ptr(foodFiber)
		}
		if err := entry.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		today := types.TodayUTC()
		ids, err := store.AddFoodEntries(context.Background(), today, []*types.FoodEntry{entry})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s #%d %s\n", green("Logged:"), ids[0], name)
	},
}

var foodTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's entries and totals",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		today := types.TodayUTC()

		entries, err := store.FoodEntries(ctx, today)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(entries) == 0 {
			fmt.Printf("No food logged for %s\n", today)
			return
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s %s\n", bold("Food log"), today)
		for _, e := range entries {
			line := fmt.Sprintf("  %s", e.Name)
			if e.Quantity > 0 {
				line += fmt.Sprintf(" (%g %s)", e.Quantity, e.Unit)
			}
			if e.Calories != nil {
				line += fmt.Sprintf("  %.0f kcal", *e.Calories)
			}
			fmt.Println(line)
		}

		totals, err := store.DailyNutrition(ctx, today)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\n%s %.0f kcal, %.0fg protein, %.0fg fat, %.0fg carbs\n",
			bold("Totals:"), totals.Calories, totals.ProteinG, totals.FatG, totals.CarbsG)
	},
}

var foodUndoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Delete today's most recent entry",
	Run: func(cmd *cobra.Command, args []string) {
		entry, err := store.DeleteLastFoodEntry(context.Background(), types.TodayUTC())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if entry == nil {
			fmt.Println("Nothing to undo")
			return
		}
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("%s %s\n", yellow("Removed:"), entry.Name)
	},
}

func init() {
	foodAddCmd.Flags().Float64Var(&foodQuantity, "qty", 1, "quantity")
	foodAddCmd.Flags().StringVar(&foodUnit, "unit", "serving", "unit for the quantity")
	foodAddCmd.Flags().Float64Var(&foodCalories, "calories", 0, "calories (kcal)")
	foodAddCmd.Flags().Float64Var(&foodProtein, "protein", 0, "protein (g)")
	foodAddCmd.Flags().Float64Var(&foodFat, "fat", 0, "fat (g)")
	foodAddCmd.Flags().Float64Var(&foodCarbs, "carbs", 0, "carbs (g)")
	foodAddCmd.Flags().Float64Var(&foodFiber, "fiber", 0, "fiber (g)")
	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodTodayCmd)
	foodCmd.AddCommand(foodUndoCmd)
	rootCmd.AddCommand(foodCmd)
}
