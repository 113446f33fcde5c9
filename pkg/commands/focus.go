package commands

import (
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/focus/pkg/commands/options"
	"tableflip.dev/focus/pkg/printers"
	"tableflip.dev/focus/pkg/runner/scratch"
	"tableflip.dev/focus/pkg/runner/stats"
	"tableflip.dev/focus/pkg/runner/timer"
)

func addTimer(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run the focus countdown",
		Example: `
focus timer start -m 50 -c Research
focus timer status
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, action := range []struct {
		name, short string
		flags       bool
	}{
		{timer.ActionStart, "Start a countdown", true},
		{timer.ActionStop, "Stop the countdown without logging a session", false},
		{timer.ActionReset, "Stop and set the idle duration", true},
		{timer.ActionStatus, "Show the countdown", false},
		{timer.ActionTick, "Log the session if the countdown has ended", false},
	} {
		cmd.AddCommand(timerCommand(action.name, action.short, action.flags))
	}

	topLevel.AddCommand(cmd)
}

func timerCommand(action, short string, flags bool) *cobra.Command {
	to := &options.TimerOptions{}
	tout := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   action,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withEnv(cmd.Context(), func(e *env) error {
				t := timer.Timer{
					Timer:    e.timer,
					Action:   action,
					Duration: to.Duration(),
					Category: to.Category,
					Format:   tout.Format,
					Out:      cmd.OutOrStdout(),
				}
				return t.Do(cmd.Context())
			})
			return tout.HandleError(err)
		},
	}

	if flags {
		options.AddTimerArgs(cmd, to)
	}
	options.AddOutputArg(cmd, tout)
	return cmd
}

func addStats(topLevel *cobra.Command) {
	s := stats.Stats{}
	so := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize focus sessions",
		Example: `
focus stats --unit week --heatmap
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withEnv(cmd.Context(), func(e *env) error {
				s.Log = e.timer.Log
				s.Location = e.cfg.Location
				s.Format = so.Format
				s.Out = cmd.OutOrStdout()
				s.Plain = s.Plain || !printers.IsTerminal(os.Stdout)
				return s.Do(cmd.Context())
			})
			return so.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&s.Unit, "unit", "u", "day", "Category totals since the start of this day, week, month or year.")
	cmd.Flags().BoolVar(&s.Heatmap, "heatmap", false, "Show the year heatmap.")
	cmd.Flags().BoolVar(&s.Calendar, "calendar", false, "Show this month's calendar.")
	cmd.Flags().BoolVar(&s.Plain, "plain", false, "Render the heatmap without color.")
	options.AddOutputArg(cmd, so)
	topLevel.AddCommand(cmd)
}

func addScratch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "scratch [text]",
		Short: "Show or replace the scratchpad note",
		Example: `
focus scratch
focus scratch "call back re: invoice"
focus scratch ""
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s := scratch.Scratch{Out: cmd.OutOrStdout()}
			if len(args) == 1 {
				s.Text = &args[0]
			}
			err := withEnv(cmd.Context(), func(e *env) error {
				s.Pad = e.pad
				return s.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
