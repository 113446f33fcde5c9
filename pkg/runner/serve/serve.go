// Package serve provides the runner for the long-lived focus server: the HTTP
// API, the background scheduler and event forwarding.
package serve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/focus/pkg/api"
	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/metrics"
	"tableflip.dev/focus/pkg/notify"
	"tableflip.dev/focus/pkg/scheduler"
	"tableflip.dev/focus/pkg/scratchpad"
	"tableflip.dev/focus/pkg/session"
	"tableflip.dev/focus/pkg/store"
)

// Serve runs until ctx is cancelled or the HTTP server fails.
type Serve struct {
	Config *store.Config
	Store  store.Store
	Tasks  *app.Service
	Timer  *session.Timer
	Pad    *scratchpad.Pad

	// Registry defaults to a fresh registry.
	Registry *prom.Registry
	// Publish forwards task events to Config.NATSSubject.
	Publish bool
	// Tick is the timer check interval. Zero means one second.
	Tick time.Duration
	// OnListening is called with the API server once routes are ready.
	OnListening func(*api.Server)
}

func (n *Serve) Do(ctx context.Context) error {
	if n.Config == nil || n.Tasks == nil || n.Timer == nil {
		return errors.New("serve requires config, tasks and timer")
	}

	reg := n.Registry
	if reg == nil {
		reg = prom.NewRegistry()
	}
	recorder := metrics.NewPrometheusRecorder(reg)
	n.Tasks.Metrics = recorder
	n.Timer.Metrics = recorder

	if n.Publish {
		pub, err := notify.Connect(n.Config.NATSURL, n.Config.NATSSubject)
		if err != nil {
			return err
		}
		defer pub.Close()
		id := pub.Attach(n.Tasks)
		defer n.Tasks.RemoveListener(id)
	}

	sched, err := scheduler.New(ctx, n.Config.Location, n.Tasks, n.Timer)
	if err != nil {
		return err
	}
	if _, err := sched.ScheduleDailySweep(); err != nil {
		return err
	}
	if _, err := sched.ScheduleTimerTick(n.Tick); err != nil {
		return err
	}
	// Catch up on any day boundary crossed while nothing was running.
	sched.Sweep()
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			slog.Warn("serve: scheduler stop", "error", err)
		}
	}()

	srv := api.NewServer(api.Options{
		Addr:     n.Config.Listen,
		Tasks:    n.Tasks,
		Timer:    n.Timer,
		Pad:      n.Pad,
		Metrics:  metrics.HTTPHandler(reg),
		Location: n.Config.Location,
	})
	if n.OnListening != nil {
		n.OnListening(srv)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if n.Store != nil {
		g.Go(func() error {
			return watch(gctx, n.Store)
		})
	}
	return g.Wait()
}

// watch logs writes made by other processes sharing the store.
func watch(ctx context.Context, s store.Store) error {
	changes, err := s.Watch(ctx)
	if err != nil {
		slog.Warn("serve: store watch unavailable", "error", err)
		return nil
	}
	for c := range changes {
		slog.Debug("serve: store changed", "key", c.Key, "removed", c.Removed())
	}
	return nil
}
