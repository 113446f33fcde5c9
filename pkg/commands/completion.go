package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(focus completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(focus completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// taskIDCompletions offers the ids on today's board without running
// carry-over.
func taskIDCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	_ = withEnv(context.Background(), func(e *env) error {
		b, err := e.tasks.Tasks.Day(context.Background(), e.tasks.Today())
		if err != nil {
			return err
		}
		for _, p := range b.Keys() {
			for _, t := range b[p] {
				if strings.HasPrefix(t.ID, toComplete) {
					ids = append(ids, t.ID+"\t"+t.Text)
				}
			}
		}
		return nil
	})
	return ids, cobra.ShellCompDirectiveNoFileComp
}
