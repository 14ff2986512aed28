package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CollaboratorMetrics records the two outbound network actions: persisting a
// record and requesting a rendered document.
type CollaboratorMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewCollaboratorMetrics registers the collaborator metrics on the provided registerer.
func NewCollaboratorMetrics(reg prometheus.Registerer) *CollaboratorMetrics {
	if reg == nil {
		return &CollaboratorMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "collaborator_call_duration_seconds",
		Help:    "Duration of collaborator calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collaborator_call_success",
		Help: "Successful collaborator calls.",
	}, []string{"action"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "collaborator_call_failure",
		Help: "Failed collaborator calls.",
	}, []string{"action"})
	reg.MustRegister(duration, success, failure)
	return &CollaboratorMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named action.
func (c *CollaboratorMetrics) ObserveDuration(action string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(action)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named action.
func (c *CollaboratorMetrics) IncSuccess(action string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncFailure increments the failure counter for the named action.
func (c *CollaboratorMetrics) IncFailure(action string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(action)).Inc()
}

func normalizeLabel(action string) string {
	if action == "" {
		return "unknown"
	}
	return action
}
