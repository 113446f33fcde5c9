// Package app implements the task day-store: today's priority board with
// carry-over of unfinished work and archival of finished work.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/focus/pkg/metrics"
	"tableflip.dev/focus/pkg/repository"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

var (
	// ErrPersistence wraps every failure of the underlying store.
	ErrPersistence = errors.New("app: persistence failed")
	// ErrInvalidPriority is returned when a task names an unknown priority.
	ErrInvalidPriority = errors.New("app: invalid priority")
	// ErrInvalidDate is returned for day keys not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("app: invalid date")
	// ErrNoRepository is returned when the Service has no task repository.
	ErrNoRepository = errors.New("app: no repository configured")
)

// Service provides the task board operations shared by the CLI, the HTTP API
// and the MCP server. Every operation re-reads the store before mutating;
// nothing is cached between calls.
type Service struct {
	Tasks *repository.TaskRepository

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Location decides which calendar day is "today". Defaults to time.Local.
	Location *time.Location
	// NewID generates task ids. Defaults to random UUIDs.
	NewID func() string
	// Metrics receives operation counts and durations.
	Metrics metrics.Recorder
	// Logger defaults to slog.Default().
	Logger *slog.Logger

	listeners listeners
}

// New returns a Service over s with default clock, ids and metrics.
func New(s store.Store) *Service {
	return &Service{Tasks: repository.NewTaskRepository(s, nil)}
}

// Today returns the current day key.
func (s *Service) Today() string {
	return task.DateOf(s.now(), s.location())
}

// CurrentTime returns the service clock in the configured location.
func (s *Service) CurrentTime() time.Time {
	return s.now().In(s.location())
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

func (s *Service) recorder() metrics.Recorder {
	if s.Metrics != nil {
		return s.Metrics
	}
	return metrics.NoopRecorder{}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Service) ready() error {
	if s.Tasks == nil {
		return ErrNoRepository
	}
	return nil
}

// record reports an operation outcome. found is ignored when err is set.
func (s *Service) record(op string, start time.Time, found bool, err error) {
	result := metrics.ResultSuccess
	switch {
	case err != nil:
		result = metrics.ResultError
	case !found:
		result = metrics.ResultNotFound
	}
	r := s.recorder()
	r.IncTaskOperation(op, result)
	r.ObserveOperationDuration(op, time.Since(start))
}

// persistence marks store failures. Cancellation and service errors pass
// through unchanged.
func persistence(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, ErrNoRepository), errors.Is(err, ErrInvalidPriority), errors.Is(err, ErrInvalidDate):
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

func validDate(date string) error {
	if _, err := task.ParseDate(date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
