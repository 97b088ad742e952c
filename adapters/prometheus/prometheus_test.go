package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestFacadeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFacadeMetrics(reg)

	m.CommandDuration("PING").ObserveDuration()
	m.CommandCompleted("PING", true)
	m.CommandCompleted("PING", false)
	m.CollapseDecided("INFO", false)
	m.DecodeError("CONFIG GET")
	m.ScatterFanout("SCRIPT EXISTS", 3)
	m.ScatterNodeFailure("SCRIPT EXISTS")

	fams, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, fams)

	impl := m.(*facadeMetrics)
	require.Equal(t, 1.0, testutil.ToFloat64(impl.commandsTotal.WithLabelValues("PING", "true")))
	require.Equal(t, 1.0, testutil.ToFloat64(impl.commandsTotal.WithLabelValues("PING", "false")))
	require.Equal(t, 1.0, testutil.ToFloat64(impl.collapseTotal.WithLabelValues("INFO", "false")))
	require.Equal(t, 1.0, testutil.ToFloat64(impl.decodeErrors.WithLabelValues("CONFIG GET")))
	require.Equal(t, 1.0, testutil.ToFloat64(impl.scatterFailures.WithLabelValues("SCRIPT EXISTS")))
}

func TestFacadeMetrics_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewFacadeMetrics(reg)
	require.Panics(t, func() { NewFacadeMetrics(reg) })
}
