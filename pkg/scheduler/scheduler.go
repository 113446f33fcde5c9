// Package scheduler runs the background jobs of a long-lived focus server:
// the midnight task sweep and the focus timer tick.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"tableflip.dev/focus/pkg/session"
	"tableflip.dev/focus/pkg/task"
)

// Sweeper is the part of app.Service run at the start of each day.
type Sweeper interface {
	CarryOverIncompleteTasks(ctx context.Context) (int, error)
	CheckAndArchiveCompletedTasks(ctx context.Context) (*task.ArchiveEntry, error)
}

// Ticker finishes focus sessions whose countdown has elapsed.
type Ticker interface {
	Tick(ctx context.Context) (*session.Session, error)
}

// Scheduler wraps a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	sweeper   Sweeper
	ticker    Ticker
}

// New creates a scheduler whose daily jobs fire in loc. Jobs run with ctx.
func New(ctx context.Context, loc *time.Location, sweeper Sweeper, ticker Ticker) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	s, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("scheduler: create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, ctx: ctx, sweeper: sweeper, ticker: ticker}, nil
}

// ScheduleDailySweep runs carry-over and the archive check shortly after
// every midnight. It returns the job id.
func (s *Scheduler) ScheduleDailySweep() (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 5))),
		gocron.NewTask(s.Sweep),
		gocron.WithName("daily-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("scheduler: create daily sweep job: %w", err)
	}
	return job.ID().String(), nil
}

// ScheduleTimerTick checks the focus timer every interval.
func (s *Scheduler) ScheduleTimerTick(interval time.Duration) (string, error) {
	if interval <= 0 {
		interval = time.Second
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.Tick),
		gocron.WithName("timer-tick"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("scheduler: create timer tick job: %w", err)
	}
	return job.ID().String(), nil
}

// Start begins running jobs.
func (s *Scheduler) Start() {
	slog.Info("scheduler: starting")
	s.scheduler.Start()
}

// Stop waits for running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	slog.Info("scheduler: stopping")
	return s.scheduler.Shutdown()
}

// Sweep carries over unfinished tasks and archives yesterday's finished ones.
func (s *Scheduler) Sweep() {
	if s.sweeper == nil {
		return
	}
	carried, err := s.sweeper.CarryOverIncompleteTasks(s.ctx)
	if err != nil {
		slog.Error("scheduler: carry-over failed", "error", err)
	}
	entry, err := s.sweeper.CheckAndArchiveCompletedTasks(s.ctx)
	if err != nil {
		slog.Error("scheduler: archive check failed", "error", err)
		return
	}
	archived := 0
	if entry != nil {
		archived = len(entry.Tasks)
	}
	slog.Info("scheduler: daily sweep", "carried", carried, "archived", archived)
}

// Tick finishes an elapsed focus session.
func (s *Scheduler) Tick() {
	if s.ticker == nil {
		return
	}
	if _, err := s.ticker.Tick(s.ctx); err != nil {
		slog.Error("scheduler: timer tick failed", "error", err)
	}
}
