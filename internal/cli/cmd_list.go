// Package cli implements the remedy command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/remedy/internal/task"
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List remediation tasks",
		Long: `List remediation tasks in insertion order.

Example:
  remedy list
  remedy list --category phone
  remedy list --category all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}

			if category != task.CategoryAll && !task.IsValidCategory(task.Category(category)) {
				return fmt.Errorf("unknown category %q (valid: all, phone, address, contract, certificate, call)", category)
			}

			tasks := a.registry.FilterByCategory(category)

			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(tasks)
			}

			if len(tasks) == 0 {
				fmt.Printf("No tasks in category %q.\n", category)
				return nil
			}

			// Print tasks in table format
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tPRI\tCATEGORY\tPROGRESS\tASSIGNEE\tTITLE")
			fmt.Fprintln(w, "──\t──────\t───\t────────\t────────\t────────\t─────")

			for _, t := range tasks {
				fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%d%%\t%s\t%s\n",
					t.ID,
					statusIcon(t.Status), task.StatusLabel(t.Status),
					priorityIcon(t.Priority),
					task.CategoryLabel(string(t.Category)),
					t.Progress,
					t.Assignee,
					truncate(t.Title, 40),
				)
			}

			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", task.CategoryAll, "filter by category (all, phone, address, contract, certificate, call)")

	return cmd
}
