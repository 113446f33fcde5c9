// Package session tracks the focus timer and the log of finished focus
// sessions, and derives heatmap, streak and category statistics from it.
package session

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/focus/pkg/repository"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

// Store keys owned by this package.
const (
	KeyTimer    = "timer"
	KeySessions = "sessions"
	KeySettings = "settings"
)

// Uncategorized labels sessions started without a category.
const Uncategorized = "Uncategorized"

// Session is one completed focus period.
type Session struct {
	// Duration is the planned length in seconds.
	Duration int            `json:"duration"`
	Category string         `json:"category"`
	EndTime  task.Timestamp `json:"endTime"`
}

// Minutes returns the session length in minutes.
func (s Session) Minutes() float64 {
	return float64(s.Duration) / 60
}

// Log is the append-only list of finished sessions.
type Log struct {
	Store store.Store
	Locks *repository.KeyLocks
}

// NewLog returns a Log over s. A nil locks gets a private set.
func NewLog(s store.Store, locks *repository.KeyLocks) *Log {
	if locks == nil {
		locks = &repository.KeyLocks{}
	}
	return &Log{Store: s, Locks: locks}
}

// List returns every logged session in append order.
func (l *Log) List(ctx context.Context) ([]Session, error) {
	var sessions []Session
	if _, err := repository.GetJSON(ctx, l.Store, KeySessions, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []Session{}
	}
	return sessions, nil
}

// Append adds s to the log.
func (l *Log) Append(ctx context.Context, s Session) error {
	unlock, err := l.Locks.Lock(ctx, KeySessions)
	if err != nil {
		return err
	}
	defer unlock()
	return l.append(ctx, s)
}

// append requires the sessions lock to be held.
func (l *Log) append(ctx context.Context, s Session) error {
	sessions, err := l.List(ctx)
	if err != nil {
		return err
	}
	if s.Duration <= 0 {
		return fmt.Errorf("session: duration must be positive, got %d", s.Duration)
	}
	return repository.PutJSON(ctx, l.Store, KeySessions, append(sessions, s))
}

// Since returns the sessions that ended at or after t.
func Since(sessions []Session, t time.Time) []Session {
	var out []Session
	for _, s := range sessions {
		if !s.EndTime.Before(t) {
			out = append(out, s)
		}
	}
	return out
}
