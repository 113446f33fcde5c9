package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	operations        *prom.CounterVec
	durations         *prom.HistogramVec
	carried           prom.Counter
	archived          prom.Counter
	sessionsCompleted prom.Counter
}

// NewPrometheusRecorder constructs and registers the focus metrics on reg. A
// nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		operations: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "focus",
			Name:      "task_operations_total",
			Help:      "Task board operations by outcome",
		}, []string{"op", "result"}),
		durations: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "focus",
			Name:      "operation_duration_seconds",
			Help:      "Duration of task board operations including storage I/O",
			Buckets:   prom.DefBuckets,
		}, []string{"op"}),
		carried: prom.NewCounter(prom.CounterOpts{
			Namespace: "focus",
			Name:      "tasks_carried_total",
			Help:      "Incomplete tasks copied forward to today",
		}),
		archived: prom.NewCounter(prom.CounterOpts{
			Namespace: "focus",
			Name:      "tasks_archived_total",
			Help:      "Completed tasks moved into the archive",
		}),
		sessionsCompleted: prom.NewCounter(prom.CounterOpts{
			Namespace: "focus",
			Name:      "sessions_completed_total",
			Help:      "Focus sessions that ran to completion",
		}),
	}
	reg.MustRegister(pr.operations, pr.durations, pr.carried, pr.archived, pr.sessionsCompleted)
	return pr
}

func (p *PrometheusRecorder) IncTaskOperation(op string, result ResultLabel) {
	if p == nil {
		return
	}
	p.operations.WithLabelValues(op, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveOperationDuration(op string, d time.Duration) {
	if p == nil {
		return
	}
	p.durations.WithLabelValues(op).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddTasksCarried(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.carried.Add(float64(n))
}

func (p *PrometheusRecorder) AddTasksArchived(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.archived.Add(float64(n))
}

func (p *PrometheusRecorder) IncSessionsCompleted() {
	if p == nil {
		return
	}
	p.sessionsCompleted.Inc()
}

// HTTPHandler returns an http.Handler that serves metrics for reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
