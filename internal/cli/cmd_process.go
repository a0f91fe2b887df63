// Package cli implements the remedy command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/remedy/internal/task"
)

// newProcessCmd creates the process command (automated workflow path)
func newProcessCmd() *cobra.Command {
	var resultJSON string
	var resultFile string

	cmd := &cobra.Command{
		Use:   "process <task-id>",
		Short: "Run the automated workflow for a task",
		Long: `Open an automated processing session for the task and merge the
agent's result. Fails for tasks that are not auto-processable.

Any automated completion is treated as full resolution: the task ends
completed at 100% and assigned to the processing agent.

The result payload is an open JSON record. Recognized summary fields:
  auto_resolved / auto_completed / auto_verified   records resolved
  accuracy / completion_rate                       accuracy percentage
  processing_time                                  elapsed time

Examples:
  remedy process 1 --result '{"auto_resolved":1200,"accuracy":97}'
  remedy process 4 --result-file result.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("task id must be an integer: %s", args[0])
			}

			result := []byte(resultJSON)
			if resultFile != "" {
				result, err = os.ReadFile(resultFile)
				if err != nil {
					return fmt.Errorf("read result file: %w", err)
				}
			}
			if !json.Valid(result) {
				return fmt.Errorf("result payload is not valid JSON")
			}

			a, err := loadApp()
			if err != nil {
				return err
			}

			if _, err := a.controller.OpenAutomated(id); err != nil {
				return err
			}

			updated, err := a.controller.Complete(result)
			if err != nil {
				return err
			}

			sum := task.ExtractSummary(updated.AIResult)
			fmt.Printf("Task %d completed by %s\n", updated.ID, updated.Assignee)
			fmt.Printf("  Records resolved: %d\n", sum.ResolvedCount)
			fmt.Printf("  Accuracy:         %.1f%%\n", sum.AccuracyPct)
			fmt.Printf("  Processing time:  %s\n", sum.ProcessingTime)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resultJSON, "result", "r", "{}", "result payload as inline JSON")
	cmd.Flags().StringVar(&resultFile, "result-file", "", "read the result payload from a file")

	return cmd
}
