package options

import (
	"github.com/spf13/cobra"
)

// WindowOptions select a range of days.
type WindowOptions struct {
	Since string
	Until string
	Last  string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Since, "since", "",
		`First day to include, example: --since="2024-02-28".`)
	cmd.Flags().StringVar(&o.Until, "until", "",
		`Day after the last day to include, example: --until="2024-03-01".`)
	cmd.Flags().StringVar(&o.Last, "last", "",
		`Window ending today, example: --last=1w. Ignored with --since or --until.`)
}
