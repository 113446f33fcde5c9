package app

import (
	"context"
	"log/slog"
	"time"

	"tableflip.dev/focus/pkg/repository"
	"tableflip.dev/focus/pkg/task"
)

var (
	archiveKeys      = []string{repository.KeyDailyTasks, repository.KeyTaskArchive}
	checkArchiveKeys = []string{repository.KeyDailyTasks, repository.KeyTaskArchive, repository.KeyLastArchiveDate}
)

// ArchiveCompletedTasks moves every completed task of date (today when empty)
// into one new archive entry and drops them from the live board. It returns
// nil when the day has nothing completed. Calls are not deduplicated: each
// call that finds completed tasks appends its own entry.
func (s *Service) ArchiveCompletedTasks(ctx context.Context, date string) (entry *task.ArchiveEntry, err error) {
	start := time.Now()
	defer func() { s.record("archive", start, true, err) }()

	if err := s.ready(); err != nil {
		return nil, err
	}
	if date != "" {
		if err := validDate(date); err != nil {
			return nil, err
		}
	}

	var bucket task.DayBucket
	err = s.Tasks.Update(ctx, archiveKeys, func(snap *repository.Snapshot) error {
		if date == "" {
			date = s.Today()
		}
		entry = s.archiveDay(snap, date)
		if entry != nil {
			bucket = snap.Days[date].Clone()
		}
		return nil
	})
	if err != nil {
		return nil, persistence(err)
	}
	s.reportArchived(entry, date, bucket)
	return entry, nil
}

// CheckAndArchiveCompletedTasks archives yesterday's completed tasks unless
// that already happened. The marker is recorded even when yesterday had
// nothing to archive.
func (s *Service) CheckAndArchiveCompletedTasks(ctx context.Context) (entry *task.ArchiveEntry, err error) {
	start := time.Now()
	defer func() { s.record("check_archive", start, true, err) }()

	if err := s.ready(); err != nil {
		return nil, err
	}

	var (
		yesterday string
		bucket    task.DayBucket
	)
	err = s.Tasks.Update(ctx, checkArchiveKeys, func(snap *repository.Snapshot) error {
		yesterday = task.DateOf(s.now().In(s.location()).AddDate(0, 0, -1), nil)
		if snap.LastArchive == yesterday {
			return nil
		}
		entry = s.archiveDay(snap, yesterday)
		if entry != nil {
			bucket = snap.Days[yesterday].Clone()
		}
		snap.SetLastArchive(yesterday)
		return nil
	})
	if err != nil {
		return nil, persistence(err)
	}
	s.reportArchived(entry, yesterday, bucket)
	return entry, nil
}

// archiveDay moves the completed tasks of date out of snap's live board and
// appends them to the archive log.
func (s *Service) archiveDay(snap *repository.Snapshot, date string) *task.ArchiveEntry {
	day, ok := snap.Days[date]
	if !ok {
		return nil
	}
	completed := day.Completed()
	if len(completed) == 0 {
		return nil
	}
	entry := task.ArchiveEntry{
		Date:       date,
		Tasks:      completed,
		ArchivedAt: task.NewTimestamp(s.now()),
	}
	snap.AppendArchive(entry)
	day.RemoveCompleted()
	snap.TouchDays()
	return &entry
}

func (s *Service) reportArchived(entry *task.ArchiveEntry, date string, bucket task.DayBucket) {
	if entry == nil {
		return
	}
	s.logger().Info("app: archived completed tasks", slog.Int("count", len(entry.Tasks)), slog.String("date", date))
	s.recorder().AddTasksArchived(len(entry.Tasks))
	s.emit(Event{Type: EventTasksUpdated, Date: date, Bucket: bucket})
}
