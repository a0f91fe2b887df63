// Package cli implements the remedy command-line interface.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newReassignCmd creates the reassign command
func newReassignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reassign <task-id>",
		Short: "Request reassignment of a task",
		Long: `Request that a task be handed to a different assignee.

The task itself is not changed; the request is signaled for an
external scheduler to act on.`,
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

			if err := a.controller.RequestReassignment(id); err != nil {
				return err
			}

			t, err := a.registry.GetByID(id)
			if err != nil {
				return err
			}
			fmt.Printf("Reassignment requested for task %d (currently %s)\n", t.ID, t.Assignee)
			return nil
		},
	}
}
