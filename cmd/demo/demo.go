// Command demo fills the configured store with a sample board, archive and
// session log.
package main

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/repository"
	"tableflip.dev/focus/pkg/session"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

func main() {
	ctx := context.Background()

	cfg, err := store.LoadConfig()
	if err != nil {
		panic(err)
	}
	s, err := store.Open(ctx, cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = s.Close() }()

	locks := &repository.KeyLocks{}
	now := time.Now().In(cfg.Location)
	yesterday := now.AddDate(0, 0, -1)

	// Build yesterday's board so today's first read carries work over.
	past := &app.Service{
		Tasks:    repository.NewTaskRepository(s, locks),
		Location: cfg.Location,
		Now:      func() time.Time { return yesterday },
	}
	for _, d := range []struct {
		p    task.Priority
		text string
		cat  string
		done bool
	}{
		{task.UrgentImportant, "Finish the quarterly report", "Work", true},
		{task.UrgentLessImportant, "Reply to the reviewers", "Research", false},
		{task.ManagementItems, "Book the venue", "Volunteering", false},
		{task.ManagementItems, "Read chapter 4", "Learning", true},
	} {
		t, err := past.AddTask(ctx, d.p, d.text, d.cat)
		if err != nil {
			panic(err)
		}
		if d.done {
			if _, err := past.CompleteTask(ctx, t.ID); err != nil {
				panic(err)
			}
		}
	}

	log := session.NewLog(s, locks)
	for i, cat := range []string{"Work", "Research", "Learning", "Work"} {
		end := now.AddDate(0, 0, -i).Add(-time.Hour)
		if err := log.Append(ctx, session.Session{Duration: 25 * 60, Category: cat, EndTime: task.NewTimestamp(end)}); err != nil {
			panic(err)
		}
	}

	svc := &app.Service{Tasks: repository.NewTaskRepository(s, locks), Location: cfg.Location}
	all, err := svc.AllTasks(ctx)
	if err != nil {
		panic(err)
	}
	if _, err := svc.CheckAndArchiveCompletedTasks(ctx); err != nil {
		panic(err)
	}
	fmt.Printf("seeded %s: %d tasks today\n", cfg.Path, all.Today.Len())
}
