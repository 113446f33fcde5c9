package session

import (
	"context"
	"log/slog"
	"time"

	"tableflip.dev/focus/pkg/metrics"
	"tableflip.dev/focus/pkg/repository"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

// DefaultDuration is the focus period used when none is configured.
const DefaultDuration = 25 * time.Minute

// State is the persisted timer.
type State struct {
	IsRunning bool            `json:"isRunning"`
	EndTime   *task.Timestamp `json:"endTime"`
	// Duration is in seconds.
	Duration int `json:"duration"`
}

// Settings holds preferences shared with the timer.
type Settings struct {
	LastCategory string `json:"lastCategory,omitempty"`
}

// Status is a State together with the time left at the moment it was read.
type Status struct {
	State
	Remaining time.Duration `json:"-"`
	Category  string        `json:"category"`
}

// Timer runs the focus countdown. Finishing is detected by Tick, which the
// scheduler calls every second while a server is running.
type Timer struct {
	Store   store.Store
	Log     *Log
	Locks   *repository.KeyLocks
	Now     func() time.Time
	Metrics metrics.Recorder
	Logger  *slog.Logger
	// Default is the idle duration before anything was stored.
	Default time.Duration
}

// NewTimer returns a Timer over s that shares locks with its Log.
func NewTimer(s store.Store, locks *repository.KeyLocks) *Timer {
	if locks == nil {
		locks = &repository.KeyLocks{}
	}
	return &Timer{Store: s, Locks: locks, Log: NewLog(s, locks)}
}

func (t *Timer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Timer) defaultDuration() time.Duration {
	if t.Default > 0 {
		return t.Default
	}
	return DefaultDuration
}

func (t *Timer) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

func (t *Timer) load(ctx context.Context) (State, Settings, error) {
	st := State{Duration: int(t.defaultDuration() / time.Second)}
	if _, err := repository.GetJSON(ctx, t.Store, KeyTimer, &st); err != nil {
		return State{}, Settings{}, err
	}
	var settings Settings
	if _, err := repository.GetJSON(ctx, t.Store, KeySettings, &settings); err != nil {
		return State{}, Settings{}, err
	}
	return st, settings, nil
}

func (t *Timer) status(st State, settings Settings) Status {
	out := Status{State: st, Category: settings.LastCategory}
	switch {
	case st.IsRunning && st.EndTime != nil:
		if left := st.EndTime.Sub(t.now()); left > 0 {
			out.Remaining = left
		}
	default:
		out.Remaining = time.Duration(st.Duration) * time.Second
	}
	return out
}

// Status returns the stored timer and the time left.
func (t *Timer) Status(ctx context.Context) (Status, error) {
	st, settings, err := t.load(ctx)
	if err != nil {
		return Status{}, err
	}
	return t.status(st, settings), nil
}

// Start begins a countdown of d. A non-empty category becomes the category of
// the session logged when the countdown finishes.
func (t *Timer) Start(ctx context.Context, d time.Duration, category string) (Status, error) {
	if d <= 0 {
		d = t.defaultDuration()
	}
	unlock, err := t.Locks.Lock(ctx, KeyTimer, KeySettings)
	if err != nil {
		return Status{}, err
	}
	defer unlock()

	_, settings, err := t.load(ctx)
	if err != nil {
		return Status{}, err
	}
	if category != "" {
		settings.LastCategory = category
		if err := repository.PutJSON(ctx, t.Store, KeySettings, settings); err != nil {
			return Status{}, err
		}
	}
	end := task.NewTimestamp(t.now().Add(d))
	st := State{IsRunning: true, EndTime: &end, Duration: int(d / time.Second)}
	if err := repository.PutJSON(ctx, t.Store, KeyTimer, st); err != nil {
		return Status{}, err
	}
	t.logger().Debug("session: timer started", slog.Duration("duration", d), slog.String("category", settings.LastCategory))
	return t.status(st, settings), nil
}

// Stop halts a running countdown without logging a session.
func (t *Timer) Stop(ctx context.Context) (Status, error) {
	unlock, err := t.Locks.Lock(ctx, KeyTimer)
	if err != nil {
		return Status{}, err
	}
	defer unlock()

	st, settings, err := t.load(ctx)
	if err != nil {
		return Status{}, err
	}
	if !st.IsRunning {
		return t.status(st, settings), nil
	}
	st.IsRunning = false
	if err := repository.PutJSON(ctx, t.Store, KeyTimer, st); err != nil {
		return Status{}, err
	}
	return t.status(st, settings), nil
}

// Reset stops the countdown without logging and sets the idle duration.
func (t *Timer) Reset(ctx context.Context, d time.Duration) (Status, error) {
	if d <= 0 {
		d = t.defaultDuration()
	}
	unlock, err := t.Locks.Lock(ctx, KeyTimer)
	if err != nil {
		return Status{}, err
	}
	defer unlock()

	_, settings, err := t.load(ctx)
	if err != nil {
		return Status{}, err
	}
	st := State{Duration: int(d / time.Second)}
	if err := repository.PutJSON(ctx, t.Store, KeyTimer, st); err != nil {
		return Status{}, err
	}
	return t.status(st, settings), nil
}

// Tick finishes a countdown whose end time has passed: the timer stops and a
// session is appended to the log. It returns the logged session, or nil when
// nothing finished.
func (t *Timer) Tick(ctx context.Context) (*Session, error) {
	unlock, err := t.Locks.Lock(ctx, KeyTimer, KeySessions)
	if err != nil {
		return nil, err
	}
	defer unlock()

	st, settings, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	now := t.now()
	if !st.IsRunning || st.EndTime == nil || st.EndTime.After(now) {
		return nil, nil
	}

	category := settings.LastCategory
	if category == "" {
		category = Uncategorized
	}
	s := Session{Duration: st.Duration, Category: category, EndTime: task.NewTimestamp(now)}
	if err := t.Log.append(ctx, s); err != nil {
		return nil, err
	}
	st.IsRunning = false
	if err := repository.PutJSON(ctx, t.Store, KeyTimer, st); err != nil {
		return nil, err
	}
	if t.Metrics != nil {
		t.Metrics.IncSessionsCompleted()
	}
	t.logger().Info("session: focus session complete", slog.Int("minutes", st.Duration/60), slog.String("category", category))
	return &s, nil
}
