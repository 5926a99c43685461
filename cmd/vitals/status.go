package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmcorreia/vitals/internal/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync health and stored history",
	Long: `Show the most recent sync attempts, when data last landed, how many
days of history are stored, and the configured goals.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		bold := color.New(color.Bold).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		fmt.Println(bold("=== Vitals Status ==="))
		fmt.Println()

		last, err := store.LastAttempt(ctx, types.AttemptSuccess)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if last == nil {
			fmt.Printf("Last successful sync: %s\n", red("never"))
		} else {
			age := time.Since(last.Timestamp).Round(time.Minute)
			mark := green
			if age > 48*time.Hour {
				mark = red
			} else if age > 24*time.Hour {
				mark = yellow
			}
			fmt.Printf("Last successful sync: %s (%s ago)\n",
				mark(last.Timestamp.UTC().Format("2006-01-02 15:04")), age)
		}

		days, err := store.CountDays(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Stored days: %d\n", days)
		fmt.Println()

		attempts, err := store.RecentAttempts(ctx, 10)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(bold("Recent attempts:"))
		if len(attempts) == 0 {
			fmt.Println("  none")
		}
		for _, a := range attempts {
			mark := green
			switch a.Status {
			case types.AttemptError:
				mark = red
			case types.AttemptPartial:
				mark = yellow
			}
			line := fmt.Sprintf("  %s  %s", a.Timestamp.UTC().Format("2006-01-02 15:04"), mark(string(a.Status)))
			if a.ErrorMessage != "" {
				line += "  " + a.ErrorMessage
			}
			fmt.Println(line)
		}
		fmt.Println()

		goals, err := store.Goals(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(bold("Goals:"))
		if len(goals) == 0 {
			fmt.Println("  none set")
			return
		}
		names := make([]string, 0, len(goals))
		for name := range goals {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-12s %g\n", name, goals[name])
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
