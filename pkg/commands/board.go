package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/focus/pkg/commands/options"
	"tableflip.dev/focus/pkg/runner/archive"
	"tableflip.dev/focus/pkg/runner/carryover"
	"tableflip.dev/focus/pkg/runner/clear"
	"tableflip.dev/focus/pkg/runner/history"
)

func addCarryOver(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "carryover",
		Short: "Copy unfinished tasks from earlier days to today",
		Long: `Runs at most once a day. Every unfinished task on an earlier day is copied
to today under a new id unless today already has a task with the same text in
the same priority.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withEnv(cmd.Context(), func(e *env) error {
				c := carryover.CarryOver{Tasks: e.tasks, Out: cmd.OutOrStdout()}
				return c.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addArchive(topLevel *cobra.Command) {
	a := archive.Archive{}

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Move completed tasks of a day into history",
		Example: `
focus archive
focus archive --date 2024-03-09
focus archive --check
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withEnv(cmd.Context(), func(e *env) error {
				a.Tasks = e.tasks
				a.Out = cmd.OutOrStdout()
				return a.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&a.Date, "date", "", "Day to archive, defaults to today.")
	cmd.Flags().BoolVar(&a.Check, "check", false, "Run the once-a-day archive of yesterday instead.")
	topLevel.AddCommand(cmd)
}

func addHistory(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	ho := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show archived tasks",
		Example: `
focus history --last 1w
focus history --since 2024-03-01 --until 2024-04-01 -o yaml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withEnv(cmd.Context(), func(e *env) error {
				h := history.History{
					Tasks:  e.tasks,
					Since:  wo.Since,
					Until:  wo.Until,
					Last:   wo.Last,
					Format: ho.Format,
					Out:    cmd.OutOrStdout(),
				}
				return h.Do(cmd.Context())
			})
			return ho.HandleError(err)
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddOutputArg(cmd, ho)
	topLevel.AddCommand(cmd)
}

func addClear(topLevel *cobra.Command) {
	yes := false

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task and the whole archive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withEnv(cmd.Context(), func(e *env) error {
				c := clear.Clear{Tasks: e.tasks, Yes: yes, Out: cmd.OutOrStdout()}
				return c.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt.")
	topLevel.AddCommand(cmd)
}
