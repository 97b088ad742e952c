package collapse

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/clstrkv-go/core/command"
	"github.com/codewandler/clstrkv-go/core/equiv"
	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
)

func nm(entries ...raw.NodeEntry) raw.Value { return raw.NodeMap(entries...) }

func TestCollapse_UniformCollapsesToReference(t *testing.T) {
	v := Collapse(nm(
		raw.NodeEntry{Addr: "127.0.0.1:7000", Value: raw.Text("PONG")},
		raw.NodeEntry{Addr: "127.0.0.1:7001", Value: raw.Text("PONG")},
	), command.Ping, route.AllNodes{}, equiv.Exact)

	require.True(t, v.IsSingle())
	sv, err := v.SingleValue()
	require.NoError(t, err)
	require.Equal(t, "PONG", sv.Text())
}

func TestCollapse_DivergentStaysMulti(t *testing.T) {
	v := Collapse(nm(
		raw.NodeEntry{Addr: "127.0.0.1:7000", Value: raw.Text("a")},
		raw.NodeEntry{Addr: "127.0.0.1:7001", Value: raw.Text("b")},
	), command.Ping, route.AllNodes{}, equiv.Exact)

	require.True(t, v.IsMulti())
	m, err := v.MultiValue()
	require.NoError(t, err)
	require.Equal(t, "a", m["127.0.0.1:7000"].Text())
	require.Equal(t, "b", m["127.0.0.1:7001"].Text())
}

func TestCollapse_ExemptNeverCollapses(t *testing.T) {
	v := Collapse(nm(
		raw.NodeEntry{Addr: "127.0.0.1:7000", Value: raw.Text("same")},
		raw.NodeEntry{Addr: "127.0.0.1:7001", Value: raw.Text("same")},
	), command.Echo, route.AllNodes{}, equiv.Exact)

	require.True(t, v.IsMulti())
}

func TestCollapse_ReportingStaysMultiUnderImplicit(t *testing.T) {
	mapping := nm(
		raw.NodeEntry{Addr: "127.0.0.1:7000", Value: raw.Text("same")},
		raw.NodeEntry{Addr: "127.0.0.1:7001", Value: raw.Text("same")},
	)

	v := Collapse(mapping, command.Info, nil, equiv.Exact)
	require.True(t, v.IsMulti())

	// Under an explicit route the generic rule applies again.
	v = Collapse(mapping, command.Info, route.AllNodes{}, equiv.Exact)
	require.True(t, v.IsSingle())
}

func TestCollapse_ReportingFabricatesPlaceholder(t *testing.T) {
	v := Collapse(raw.Text("# Server\n"), command.Info, nil, equiv.Exact)
	require.True(t, v.IsMulti())

	m, err := v.MultiValue()
	require.NoError(t, err)
	require.Len(t, m, 1)
	require.Contains(t, m, PlaceholderAddr)
}

func TestCollapse_NonMappingWrapsSingle(t *testing.T) {
	v := Collapse(raw.Text("PONG"), command.Ping, nil, equiv.Exact)
	require.True(t, v.IsSingle())
}

func TestCollapse_EmptyMappingIsSingleNil(t *testing.T) {
	v := Collapse(nm(), command.Ping, route.AllNodes{}, equiv.Exact)
	require.True(t, v.IsSingle())
	sv, err := v.SingleValue()
	require.NoError(t, err)
	require.True(t, sv.IsNil())
}

func TestCollapse_ClassGovernsDecision(t *testing.T) {
	mapping := nm(
		raw.NodeEntry{Addr: "127.0.0.1:7000", Value: raw.Int(5)},
		raw.NodeEntry{Addr: "127.0.0.1:7001", Value: raw.Text("5")},
	)

	// Structurally different, numerically the same.
	require.True(t, Collapse(mapping, command.Ping, route.AllNodes{}, equiv.Exact).IsMulti())
	require.True(t, Collapse(mapping, command.Ping, route.AllNodes{}, equiv.Numeric).IsSingle())
}

func TestExemptAndReporting(t *testing.T) {
	require.True(t, Exempt(command.Echo))
	require.True(t, Exempt(command.FCall))
	require.True(t, Exempt(command.FunctionStats))
	require.False(t, Exempt(command.Ping))

	require.True(t, Reporting(command.Info))
	require.False(t, Reporting(command.Ping))
}
