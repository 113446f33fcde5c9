package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/focus/pkg/api"
	"tableflip.dev/focus/pkg/runner/serve"
	"tableflip.dev/focus/pkg/store"
)

func addServe(topLevel *cobra.Command) {
	var (
		listen  string
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the daily sweep and timer",
		Long: `Serves the board, timer and scratchpad over HTTP with Prometheus metrics at
/metrics. Carry-over and the archive check run shortly after every midnight and
the focus timer is checked every second.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withEnv(cmd.Context(), func(e *env) error {
				if listen != "" {
					e.cfg.Listen = listen
				}
				s := serve.Serve{
					Config:  e.cfg,
					Store:   e.store,
					Tasks:   e.tasks,
					Timer:   e.timer,
					Pad:     e.pad,
					Publish: publish || e.cfg.Backend == store.BackendNATS,
					OnListening: func(srv *api.Server) {
						_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focus API listening on http://%s\n", srv.Addr)
					},
				}
				return s.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on, overrides the listen setting.")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish task events to nats.subject.")
	topLevel.AddCommand(cmd)
}
