package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmcorreia/vitals/internal/types"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage metric targets",
}

var goalSetCmd = &cobra.Command{
	Use:   "set <metric> <target>",
	Short: "Set a numeric target for a metric",
	Long: `Set a target used by reports and alerts. Valid metrics: steps,
sleep_hours, weight_kg, calories, protein_g, fat_g, carbs_g.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		metric := args[0]
		if !types.ValidGoalMetric(metric) {
			fmt.Fprintf(os.Stderr, "Error: unknown metric %q\n", metric)
			os.Exit(1)
		}
		target, err := strconv.ParseFloat(args[1], 64)
		if err != nil || target <= 0 {
			fmt.Fprintf(os.Stderr, "Error: target must be a positive number\n")
			os.Exit(1)
		}
		if err := store.SetGoal(context.Background(), metric, target); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %s = %g\n", green("Goal set:"), metric, target)
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List current targets",
	Run: func(cmd *cobra.Command, args []string) {
		goals, err := store.Goals(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(goals) == 0 {
			fmt.Println("No goals set")
			return
		}
		names := make([]string, 0, len(goals))
		for name := range goals {
			names = append(names, name)
		}
		sort.Strings(names)

		bold := color.New(color.Bold).SprintFunc()
		fmt.Println(bold("Goals:"))
		for _, name := range names {
			fmt.Printf("  %-12s %g\n", name, goals[name])
		}
	},
}

func init() {
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalListCmd)
	rootCmd.AddCommand(goalCmd)
}
