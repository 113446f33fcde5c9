package app

import (
	"context"
	"time"

	"tableflip.dev/focus/pkg/task"
)

// AllTasks is today's board together with the full archive. The two halves
// are read separately and are not a consistent snapshot.
type AllTasks struct {
	Today   task.DayBucket      `json:"today"`
	History []task.ArchiveEntry `json:"history"`
}

// TodaysTasks runs carry-over and then returns today's board. A day with no
// record yields an empty board.
func (s *Service) TodaysTasks(ctx context.Context) (b task.DayBucket, err error) {
	start := time.Now()
	defer func() { s.record("today", start, true, err) }()

	_, b, err = s.carryOverToday(ctx)
	return b, err
}

// TodaysCompletedTasks returns today's completed tasks across every priority,
// most recently completed first.
func (s *Service) TodaysCompletedTasks(ctx context.Context) ([]task.Task, error) {
	b, err := s.TodaysTasks(ctx)
	if err != nil {
		return nil, err
	}
	completed := b.Completed()
	if completed == nil {
		completed = []task.Task{}
	}
	task.SortByCompletionDesc(completed)
	return completed, nil
}

// TaskHistory returns archive entries in append order whose date is on or
// after start and before end. Either bound may be empty to leave that side
// open.
func (s *Service) TaskHistory(ctx context.Context, start, end string) (entries []task.ArchiveEntry, err error) {
	began := time.Now()
	defer func() { s.record("history", began, true, err) }()

	if err := s.ready(); err != nil {
		return nil, err
	}
	for _, bound := range []string{start, end} {
		if bound == "" {
			continue
		}
		if err := validDate(bound); err != nil {
			return nil, err
		}
	}

	archive, err := s.Tasks.Archive(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	entries = make([]task.ArchiveEntry, 0, len(archive))
	for _, e := range archive {
		if start != "" && e.Date < start {
			continue
		}
		if end != "" && e.Date >= end {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AllTasks returns today's board (after carry-over) and the whole archive.
func (s *Service) AllTasks(ctx context.Context) (AllTasks, error) {
	today, err := s.TodaysTasks(ctx)
	if err != nil {
		return AllTasks{}, err
	}
	history, err := s.TaskHistory(ctx, "", "")
	if err != nil {
		return AllTasks{}, err
	}
	return AllTasks{Today: today, History: history}, nil
}

// ClearAllTasks removes the board, the archive and both markers.
func (s *Service) ClearAllTasks(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.record("clear", start, true, err) }()

	if err := s.ready(); err != nil {
		return err
	}
	if err := s.Tasks.Clear(ctx); err != nil {
		return persistence(err)
	}
	s.emit(Event{Type: EventTasksCleared})
	return nil
}
