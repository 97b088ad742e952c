// Package prometheus provides the Prometheus implementation of the facade
// metrics interface.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/clstrkv-go/core/facade"
	"github.com/codewandler/clstrkv-go/core/metrics"
)

// timer wraps a Prometheus histogram to implement the Timer interface.
type timer struct {
	h     prometheus.Observer
	start time.Time
}

func newTimer(h prometheus.Observer) metrics.Timer {
	return &timer{h: h, start: time.Now()}
}

func (t *timer) ObserveDuration() {
	t.h.Observe(time.Since(t.start).Seconds())
}

// Default histogram buckets for latency metrics (in seconds).
var defaultBuckets = []float64{
	.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10,
}

type facadeMetrics struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
	collapseTotal   *prometheus.CounterVec
	decodeErrors    *prometheus.CounterVec
	scatterFanout   *prometheus.HistogramVec
	scatterFailures *prometheus.CounterVec
}

// NewFacadeMetrics creates a Prometheus implementation of facade.Metrics and
// registers its collectors.
func NewFacadeMetrics(reg prometheus.Registerer) facade.Metrics {
	m := &facadeMetrics{
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clstrkv_command_duration_seconds",
			Help:    "Command round-trip latency in seconds",
			Buckets: defaultBuckets,
		}, []string{"command"}),

		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clstrkv_commands_total",
			Help: "Total number of commands executed",
		}, []string{"command", "success"}),

		collapseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clstrkv_collapse_decisions_total",
			Help: "Reply shape decisions, collapsed-to-single vs kept per-node",
		}, []string{"command", "single"}),

		decodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clstrkv_decode_errors_total",
			Help: "Replies whose shape matched no expected pattern",
		}, []string{"command"}),

		scatterFanout: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clstrkv_scatter_fanout_nodes",
			Help:    "Number of nodes targeted per scatter-gather",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
		}, []string{"command"}),

		scatterFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clstrkv_scatter_node_failures_total",
			Help: "Per-node failures absorbed during scatter-gather",
		}, []string{"command"}),
	}

	reg.MustRegister(
		m.commandDuration,
		m.commandsTotal,
		m.collapseTotal,
		m.decodeErrors,
		m.scatterFanout,
		m.scatterFailures,
	)

	return m
}

func (m *facadeMetrics) CommandDuration(cmd string) metrics.Timer {
	return newTimer(m.commandDuration.WithLabelValues(cmd))
}

func (m *facadeMetrics) CommandCompleted(cmd string, success bool) {
	m.commandsTotal.WithLabelValues(cmd, boolToStr(success)).Inc()
}

func (m *facadeMetrics) CollapseDecided(cmd string, single bool) {
	m.collapseTotal.WithLabelValues(cmd, boolToStr(single)).Inc()
}

func (m *facadeMetrics) DecodeError(cmd string) {
	m.decodeErrors.WithLabelValues(cmd).Inc()
}

func (m *facadeMetrics) ScatterFanout(cmd string, nodes int) {
	m.scatterFanout.WithLabelValues(cmd).Observe(float64(nodes))
}

func (m *facadeMetrics) ScatterNodeFailure(cmd string) {
	m.scatterFailures.WithLabelValues(cmd).Inc()
}

func boolToStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

var _ facade.Metrics = (*facadeMetrics)(nil)
