// Package cli implements the remedy command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/remedy/internal/stats"
)

// newStatsCmd creates the stats command
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate progress",
		Long: `Show the overall remediation progress and per-category task counts.

Overall progress is the rounded mean of every task's progress.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			tasks := a.registry.GetAll()
			ov, err := stats.ComputeOverview(tasks)
			if err != nil {
				return err
			}
			cats := stats.Categories(tasks)

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"overview":   ov,
					"categories": cats,
				})
			}

			fmt.Printf("Overall progress: %d%%\n", ov.OverallProgress)
			fmt.Printf("  Completed:    %d\n", ov.CompletedCount)
			fmt.Printf("  In progress:  %d\n", ov.InProgressCount)
			fmt.Printf("  Pending:      %d\n", ov.PendingCount)
			fmt.Printf("  Total:        %d\n", ov.Total)

			fmt.Println("\nCategories:")
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, c := range cats {
				fmt.Fprintf(w, "  %s\t%d\n", c.Label, c.Count)
			}
			w.Flush()

			return nil
		},
	}
}
