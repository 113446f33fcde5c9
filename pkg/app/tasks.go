package app

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/focus/pkg/repository"
	"tableflip.dev/focus/pkg/task"
)

// todayKeys are written by every mutation of today's board, since each one
// runs carry-over first.
var todayKeys = []string{repository.KeyDailyTasks, repository.KeyLastCarryOverDate}

// AddTask creates an incomplete task on today's board under p. An empty
// category becomes task.DefaultCategory.
func (s *Service) AddTask(ctx context.Context, p task.Priority, text, category string) (t *task.Task, err error) {
	start := time.Now()
	defer func() { s.record("add", start, true, err) }()

	if !p.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, p)
	}

	var created task.Task
	_, err = s.mutateToday(ctx, func(b task.DayBucket, today string) bool {
		created = task.New(s.newID(), p, text, category, today, s.now())
		b[p] = append(b[p], created)
		return true
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask shallow-merges patch into the task with id on today's board.
// It reports false when today's board has no such task; other days are not
// searched.
func (s *Service) UpdateTask(ctx context.Context, id string, patch task.Patch) (found bool, err error) {
	start := time.Now()
	defer func() { s.record("update", start, found, err) }()
	return s.updateTask(ctx, id, patch)
}

func (s *Service) updateTask(ctx context.Context, id string, patch task.Patch) (bool, error) {
	return s.mutateToday(ctx, func(b task.DayBucket, _ string) bool {
		p, i, ok := b.Find(id)
		if !ok {
			return false
		}
		b[p][i] = patch.Apply(b[p][i])
		return true
	})
}

// DeleteTask removes the task with id from today's board. It reports false
// when no such task exists.
func (s *Service) DeleteTask(ctx context.Context, id string) (found bool, err error) {
	start := time.Now()
	defer func() { s.record("delete", start, found, err) }()

	return s.mutateToday(ctx, func(b task.DayBucket, _ string) bool {
		p, i, ok := b.Find(id)
		if !ok {
			return false
		}
		b[p] = append(b[p][:i:i], b[p][i+1:]...)
		return true
	})
}

// CompleteTask marks the task done and then sweeps yesterday's completed
// tasks into the archive if that has not happened yet. When the sweep fails
// the task stays completed and the error is returned with true.
func (s *Service) CompleteTask(ctx context.Context, id string) (found bool, err error) {
	start := time.Now()
	defer func() { s.record("complete", start, found, err) }()

	done := true
	now := s.now()
	found, err = s.updateTask(ctx, id, task.Patch{Completed: &done, CompletedAt: &now})
	if err != nil || !found {
		return found, err
	}
	if _, err := s.CheckAndArchiveCompletedTasks(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// UncompleteTask reopens the task and clears its completion time.
func (s *Service) UncompleteTask(ctx context.Context, id string) (found bool, err error) {
	start := time.Now()
	defer func() { s.record("uncomplete", start, found, err) }()

	done := false
	var cleared time.Time
	return s.updateTask(ctx, id, task.Patch{Completed: &done, CompletedAt: &cleared})
}

// mutateToday carries over, applies fn to today's board and persists. fn
// reports whether it changed anything; carry-over is persisted regardless.
func (s *Service) mutateToday(ctx context.Context, fn func(b task.DayBucket, today string) bool) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}

	var (
		changed bool
		carried int
		wrote   bool
		today   string
		bucket  task.DayBucket
	)
	err := s.Tasks.Update(ctx, todayKeys, func(snap *repository.Snapshot) error {
		today = s.Today()
		carried = s.carryOver(snap, today)
		b := snap.Day(today)
		if changed = fn(b, today); changed {
			snap.TouchDays()
		}
		wrote = snap.Dirty()
		bucket = b.Clone()
		return nil
	})
	if err != nil {
		return false, persistence(err)
	}
	s.reportCarried(carried, today)
	if wrote {
		s.emit(Event{Type: EventTasksUpdated, Date: today, Bucket: bucket})
	}
	return changed, nil
}
