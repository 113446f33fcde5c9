// Package metrics defines observability hooks for task board and focus
// session operations.
package metrics

import "time"

// ResultLabel classifies the outcome of an operation.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultNotFound ResultLabel = "not_found"
	ResultError    ResultLabel = "error"
)

// Recorder receives operation measurements. Implementations may forward to
// Prometheus or drop everything.
type Recorder interface {
	IncTaskOperation(op string, result ResultLabel)
	ObserveOperationDuration(op string, d time.Duration)
	AddTasksCarried(n int)
	AddTasksArchived(n int)
	IncSessionsCompleted()
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) IncTaskOperation(string, ResultLabel)           {}
func (NoopRecorder) ObserveOperationDuration(string, time.Duration) {}
func (NoopRecorder) AddTasksCarried(int)                            {}
func (NoopRecorder) AddTasksArchived(int)                           {}
func (NoopRecorder) IncSessionsCompleted()                          {}
