// Package cli implements the remedy command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/remedy/internal/task"
)

// newShowCmd creates the show command
func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show task details",
		Long: `Show a task's full details, including any stored workflow results.

When the task carries an automated processing result, the extracted
summary (records resolved, accuracy, processing time) is shown too.

Examples:
  remedy show 1
  remedy show 1 --json`,
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

			t, err := a.registry.GetByID(id)
			if err != nil {
				return err
			}

			if jsonOut {
				result := map[string]any{"task": t}
				if len(t.AIResult) > 0 {
					result["summary"] = task.ExtractSummary(t.AIResult)
				}
				return json.NewEncoder(os.Stdout).Encode(result)
			}

			fmt.Printf("Task %d: %s\n", t.ID, t.Title)
			fmt.Printf("  Status:           %s %s (%d%%)\n", statusIcon(t.Status), task.StatusLabel(t.Status), t.Progress)
			fmt.Printf("  Category:         %s\n", task.CategoryLabel(string(t.Category)))
			fmt.Printf("  Priority:         %s %s\n", priorityIcon(t.Priority), task.PriorityLabel(t.Priority))
			fmt.Printf("  Assignee:         %s\n", t.Assignee)
			fmt.Printf("  Deadline:         %s\n", t.Deadline.Format(time.DateOnly))
			fmt.Printf("  Auto-processable: %s\n", yesNo(t.AutoProcessable))
			if t.Description != "" {
				fmt.Printf("  Description:      %s\n", t.Description)
			}

			if len(t.AIResult) > 0 {
				sum := task.ExtractSummary(t.AIResult)
				fmt.Println("\nAutomated result:")
				fmt.Printf("  Records resolved: %d\n", sum.ResolvedCount)
				fmt.Printf("  Accuracy:         %.1f%%\n", sum.AccuracyPct)
				fmt.Printf("  Processing time:  %s\n", sum.ProcessingTime)
			}
			if len(t.ConfirmationData) > 0 {
				fmt.Println("\nConfirmation data:")
				fmt.Printf("  %s\n", string(t.ConfirmationData))
			}

			return nil
		},
	}
}
