package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/focus/pkg/task"
)

// TaskOptions
type TaskOptions struct {
	Priority string
	Category string
}

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Priority, "priority", "p", string(task.UrgentImportant),
		"Priority bucket: ui (urgent-important), uli (urgent-less-important) or mi (management-items).")
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		`Task category, defaults to "General".`)
}

// PriorityCompletions lists the priority names and aliases.
func PriorityCompletions() []string {
	out := []string{"ui", "uli", "mi"}
	for _, p := range task.Priorities() {
		out = append(out, string(p))
	}
	return out
}
