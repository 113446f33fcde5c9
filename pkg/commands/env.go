package commands

import (
	"context"
	"log/slog"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/repository"
	"tableflip.dev/focus/pkg/scratchpad"
	"tableflip.dev/focus/pkg/session"
	"tableflip.dev/focus/pkg/store"
)

// env is the set of services a command works with, all sharing one store and
// one set of key locks.
type env struct {
	cfg   *store.Config
	store store.Store
	tasks *app.Service
	timer *session.Timer
	pad   *scratchpad.Pad
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
	}
	s, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newEnv(cfg, s), nil
}

func newEnv(cfg *store.Config, s store.Store) *env {
	locks := &repository.KeyLocks{}
	tasks := &app.Service{
		Tasks:    repository.NewTaskRepository(s, locks),
		Location: cfg.Location,
	}
	timer := session.NewTimer(s, locks)
	timer.Default = cfg.TimerDuration
	return &env{
		cfg:   cfg,
		store: s,
		tasks: tasks,
		timer: timer,
		pad:   &scratchpad.Pad{Store: s},
	}
}

func (e *env) Close() error {
	return e.store.Close()
}

// withEnv opens the environment, runs fn and closes the store.
func withEnv(ctx context.Context, fn func(e *env) error) (err error) {
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(e)
}
