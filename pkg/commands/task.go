package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/focus/pkg/commands/options"
	"tableflip.dev/focus/pkg/runner/add"
	"tableflip.dev/focus/pkg/runner/complete"
	"tableflip.dev/focus/pkg/runner/edit"
	"tableflip.dev/focus/pkg/runner/get"
	"tableflip.dev/focus/pkg/runner/strike"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Work with today's board",
		Example: `
focus task add -p ui ship the release
focus task list
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTaskAdd(cmd)
	addTaskList(cmd)
	addTaskDone(cmd)
	addTaskEdit(cmd)
	addTaskComplete(cmd)
	addTaskUncomplete(cmd)
	addTaskDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addTaskAdd(parent *cobra.Command) {
	to := &options.TaskOptions{}
	text := ""

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to today's board",
		Example: `
focus task add do this task
focus task add -p mi -c Admin file the expense report
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task")
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withEnv(cmd.Context(), func(e *env) error {
				a := add.Add{
					Tasks:    e.tasks,
					Priority: to.Priority,
					Category: to.Category,
					Text:     text,
					Out:      cmd.OutOrStdout(),
				}
				return a.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddTaskArgs(cmd, to)
	_ = cmd.RegisterFlagCompletionFunc("priority", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return options.PriorityCompletions(), cobra.ShellCompDirectiveNoFileComp
	})
	parent.AddCommand(cmd)
}

func addTaskList(parent *cobra.Command) {
	showID := false
	lo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "today"},
		Short:   "Show today's board, carrying over unfinished tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withEnv(cmd.Context(), func(e *env) error {
				g := get.Get{Tasks: e.tasks, ShowID: showID, Format: lo.Format, Out: cmd.OutOrStdout()}
				return g.Do(cmd.Context())
			})
			return lo.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&showID, "id", false, "Show task ids.")
	options.AddOutputArg(cmd, lo)
	parent.AddCommand(cmd)
}

func addTaskDone(parent *cobra.Command) {
	lo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "done",
		Short: "Show the tasks completed today, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withEnv(cmd.Context(), func(e *env) error {
				g := get.Get{Tasks: e.tasks, Completed: true, Format: lo.Format, Out: cmd.OutOrStdout()}
				return g.Do(cmd.Context())
			})
			return lo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, lo)
	parent.AddCommand(cmd)
}

func addTaskEdit(parent *cobra.Command) {
	var text, category string

	cmd := &cobra.Command{
		Use:               "edit <task id>",
		Short:             "Change the text or category of a task",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: taskIDCompletions,
		Example: `
focus task edit <task id> --text "call the bank" --category Admin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ed := edit.Edit{ID: args[0], Out: cmd.OutOrStdout()}
			if cmd.Flags().Changed("text") {
				ed.Text = &text
			}
			if cmd.Flags().Changed("category") {
				ed.Category = &category
			}
			err := withEnv(cmd.Context(), func(e *env) error {
				ed.Tasks = e.tasks
				return ed.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "New task text.")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category.")
	parent.AddCommand(cmd)
}

func addTaskComplete(parent *cobra.Command) {
	parent.AddCommand(completeCommand("complete", []string{"completed", "check"}, "Mark a task completed", false))
}

func addTaskUncomplete(parent *cobra.Command) {
	parent.AddCommand(completeCommand("uncomplete", []string{"reopen"}, "Reopen a completed task", true))
}

func completeCommand(use string, aliases []string, short string, undo bool) *cobra.Command {
	return &cobra.Command{
		Use:               use + " <task id>",
		Aliases:           aliases,
		Short:             short,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withEnv(cmd.Context(), func(e *env) error {
				c := complete.Complete{ID: args[0], Undo: undo, Tasks: e.tasks, Out: cmd.OutOrStdout()}
				return c.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}
}

func addTaskDelete(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "delete <task id>",
		Aliases:           []string{"rm", "strike"},
		Short:             "Remove a task from today's board",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: taskIDCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			err := withEnv(cmd.Context(), func(e *env) error {
				s := strike.Strike{ID: args[0], Tasks: e.tasks, Out: cmd.OutOrStdout()}
				return s.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	parent.AddCommand(cmd)
}
