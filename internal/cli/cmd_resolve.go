// Package cli implements the remedy command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/remedy/internal/task"
)

// newResolveCmd creates the resolve command (manual workflow path)
func newResolveCmd() *cobra.Command {
	var status string
	var note string

	cmd := &cobra.Command{
		Use:   "resolve <task-id>",
		Short: "Resolve a task manually",
		Long: `Open a manual confirmation session for the task and merge the
confirmation result.

Only a "resolved" confirmation completes the task; any other status
(for example "escalated") records the confirmation without changing
the task's status or progress. Completed tasks may be re-confirmed.

Examples:
  remedy resolve 3
  remedy resolve 3 --status escalated --note "needs legal review"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("task id must be an integer: %s", args[0])
			}

			a, err := loadApp()
			if err != nil {
				return err
			}

			if _, err := a.controller.OpenManual(id); err != nil {
				return err
			}

			payload := map[string]any{"status": status}
			if note != "" {
				payload["note"] = note
			}
			result, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("encode confirmation: %w", err)
			}

			updated, err := a.controller.Confirm(result)
			if err != nil {
				return err
			}

			if updated.IsCompleted() {
				fmt.Printf("Task %d resolved: %s (100%%)\n", updated.ID, updated.Title)
			} else {
				fmt.Printf("Task %d confirmed as %q, status unchanged: %s %s (%d%%)\n",
					updated.ID, status, statusIcon(updated.Status), task.StatusLabel(updated.Status), updated.Progress)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "resolved", "confirmation status (resolved completes the task)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "optional confirmation note")

	return cmd
}
