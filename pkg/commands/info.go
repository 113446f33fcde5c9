package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/focus/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the configuration and a count of stored tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withEnv(cmd.Context(), func(e *env) error {
				i := info.Info{Config: e.cfg, Tasks: e.tasks, Out: cmd.OutOrStdout()}
				return i.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
