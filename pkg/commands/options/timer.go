package options

import (
	"time"

	"github.com/spf13/cobra"
)

// TimerOptions
type TimerOptions struct {
	Minutes  int
	Category string
}

func AddTimerArgs(cmd *cobra.Command, o *TimerOptions) {
	cmd.Flags().IntVarP(&o.Minutes, "minutes", "m", 0,
		"Countdown length in minutes, defaults to the configured timer.duration.")
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Category recorded with the session when the countdown ends.")
}

// Duration returns the requested countdown, zero for the default.
func (o *TimerOptions) Duration() time.Duration {
	if o.Minutes <= 0 {
		return 0
	}
	return time.Duration(o.Minutes) * time.Minute
}
