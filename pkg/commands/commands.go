package commands

import (
	"log/slog"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/focus/pkg/commands/options"
)

var (
	// oo handles errors for commands without an --output flag.
	oo       = &options.OutputOptions{}
	debug    bool
	logLevel = new(slog.LevelVar)
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "focus",
		Short: base.Wrap80("A daily priority board with carry-over, archive and a focus timer."),
		Long: base.Wrap80("Tasks live on today's board in three priority buckets. " +
			"Unfinished tasks from earlier days are carried to today, " +
			"finished tasks are archived by day."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				logLevel.Set(slog.LevelDebug)
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTask(topLevel)
	addCarryOver(topLevel)
	addArchive(topLevel)
	addHistory(topLevel)
	addClear(topLevel)
	addTimer(topLevel)
	addStats(topLevel)
	addScratch(topLevel)
	addInfo(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
