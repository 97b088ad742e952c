package facade

import "github.com/codewandler/clstrkv-go/core/metrics"

// Metrics receives per-command observations from the client. All methods
// must be safe for concurrent use.
type Metrics interface {
	// CommandDuration starts a timer covering one command's full pipeline.
	CommandDuration(cmd string) metrics.Timer
	CommandCompleted(cmd string, success bool)
	// CollapseDecided records the shape decision for one reply: collapsed
	// to a single value or kept per-node.
	CollapseDecided(cmd string, single bool)
	DecodeError(cmd string)
	ScatterFanout(cmd string, nodes int)
	ScatterNodeFailure(cmd string)
}

type nopMetrics struct{}

func (nopMetrics) CommandDuration(string) metrics.Timer { return metrics.NopTimer() }
func (nopMetrics) CommandCompleted(string, bool)        {}
func (nopMetrics) CollapseDecided(string, bool)         {}
func (nopMetrics) DecodeError(string)                   {}
func (nopMetrics) ScatterFanout(string, int)            {}
func (nopMetrics) ScatterNodeFailure(string)            {}

// NopMetrics is the default no-op sink.
func NopMetrics() Metrics { return nopMetrics{} }

// scatterMetrics adapts the client metrics sink to the scatter component.
type scatterMetrics struct{ m Metrics }

func (s scatterMetrics) Fanout(cmd string, nodes int) { s.m.ScatterFanout(cmd, nodes) }
func (s scatterMetrics) NodeFailure(cmd string)       { s.m.ScatterNodeFailure(cmd) }
