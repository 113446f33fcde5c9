package app

import (
	"context"
	"log/slog"
	"time"

	"tableflip.dev/focus/pkg/repository"
	"tableflip.dev/focus/pkg/task"
)

// CarryOverIncompleteTasks copies every incomplete task from earlier days
// onto today's board, at most once per day. A task is skipped when today's
// list for the same priority already holds one with identical text. The
// earlier records are left untouched. It returns how many tasks were copied.
func (s *Service) CarryOverIncompleteTasks(ctx context.Context) (carried int, err error) {
	start := time.Now()
	defer func() { s.record("carryover", start, true, err) }()

	carried, _, err = s.carryOverToday(ctx)
	return carried, err
}

// carryOverToday runs carry-over in its own unit of work and returns the
// resulting board for today.
func (s *Service) carryOverToday(ctx context.Context) (int, task.DayBucket, error) {
	if err := s.ready(); err != nil {
		return 0, nil, err
	}

	var (
		carried int
		wrote   bool
		today   string
		bucket  task.DayBucket
	)
	err := s.Tasks.Update(ctx, todayKeys, func(snap *repository.Snapshot) error {
		today = s.Today()
		carried = s.carryOver(snap, today)
		wrote = snap.Dirty()
		if b, ok := snap.Days[today]; ok {
			bucket = b.Clone()
		} else {
			bucket = task.NewDayBucket()
		}
		return nil
	})
	if err != nil {
		return 0, nil, persistence(err)
	}
	s.reportCarried(carried, today)
	if wrote {
		s.emit(Event{Type: EventTasksUpdated, Date: today, Bucket: bucket.Clone()})
	}
	return carried, bucket, nil
}

// carryOver applies the carry-over to snap. It is a no-op when the marker
// already says today.
func (s *Service) carryOver(snap *repository.Snapshot, today string) int {
	if snap.LastCarryOver == today {
		return 0
	}

	todays := snap.Day(today)
	carried := 0
	for _, date := range snap.Days.Dates() {
		if date >= today {
			break
		}
		day := snap.Days[date]
		for _, p := range day.Keys() {
			for _, t := range day[p] {
				if t.Completed || todays.HasText(p, t.Text) {
					continue
				}
				todays[p] = append(todays[p], t.CarryTo(s.newID(), today))
				carried++
			}
		}
	}

	snap.TouchDays()
	snap.SetLastCarryOver(today)
	return carried
}

// reportCarried logs and counts a persisted carry-over.
func (s *Service) reportCarried(carried int, today string) {
	if carried == 0 {
		return
	}
	s.logger().Info("app: carried over incomplete tasks", slog.Int("count", carried), slog.String("date", today))
	s.recorder().AddTasksCarried(carried)
}
