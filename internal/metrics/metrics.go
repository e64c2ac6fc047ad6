package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result labels for dispatched actions.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the collectors exported by cmdc on its own registry.
type Metrics struct {
	Registry          *prometheus.Registry
	ActionsDispatched *prometheus.CounterVec
	ActionDuration    *prometheus.HistogramVec
	CommandsQueued    prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ActionsDispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cmdc_actions_dispatched_total",
				Help: "Button actions executed, by action type and result.",
			},
			[]string{"action_type", "result"},
		),
		ActionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cmdc_action_duration_seconds",
				Help:    "Duration of button action execution.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action_type"},
		),
		CommandsQueued: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cmdc_commands_queued",
			Help: "Button commands waiting for the dispatcher.",
		}),
	}
	m.Registry.MustRegister(m.ActionsDispatched, m.ActionDuration, m.CommandsQueued)
	return m
}

// ObserveAction records one action outcome. Safe on a nil receiver.
func (m *Metrics) ObserveAction(actionType string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.ActionsDispatched.WithLabelValues(actionType, result).Inc()
	m.ActionDuration.WithLabelValues(actionType).Observe(time.Since(started).Seconds())
}

// SetQueued updates the queue depth gauge. Safe on a nil receiver.
func (m *Metrics) SetQueued(n int) {
	if m == nil {
		return
	}
	m.CommandsQueued.Set(float64(n))
}
