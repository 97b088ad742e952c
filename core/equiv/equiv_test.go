package equiv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/clstrkv-go/core/raw"
)

func TestEquivalent_Exact(t *testing.T) {
	require.True(t, Equivalent(raw.Text("a"), raw.Text("a"), Exact))
	require.False(t, Equivalent(raw.Text("a"), raw.Text("b"), Exact))
	// Exact does not normalize numeric text.
	require.False(t, Equivalent(raw.Int(1), raw.Text("1"), Exact))
}

func TestEquivalent_Numeric(t *testing.T) {
	require.True(t, Equivalent(raw.Int(5), raw.Text("5"), Numeric))
	require.True(t, Equivalent(raw.Float(2.5), raw.Text("2.5"), Numeric))
	require.False(t, Equivalent(raw.Int(5), raw.Int(6), Numeric))
	// Coercion failure never counts as equivalent.
	require.False(t, Equivalent(raw.Text("garbage"), raw.Text("garbage"), Numeric))
	require.False(t, Equivalent(raw.Int(1), raw.Bool(true), Numeric))
}

func TestStatusSets(t *testing.T) {
	require.True(t, IsStatusTrue(raw.Bool(true)))
	require.True(t, IsStatusTrue(raw.Text("OK")))
	require.True(t, IsStatusTrue(raw.Text("ok")))
	require.True(t, IsStatusTrue(raw.Text("1")))
	require.False(t, IsStatusTrue(raw.Text("0")))
	require.False(t, IsStatusTrue(raw.Int(1)))
	require.False(t, IsStatusTrue(raw.Nil()))

	require.True(t, IsStatusFalse(raw.Bool(false)))
	require.True(t, IsStatusFalse(raw.Text("0")))
	require.False(t, IsStatusFalse(raw.Text("OK")))
	require.False(t, IsStatusFalse(raw.Nil()))
}

func TestEquivalent_Status(t *testing.T) {
	require.True(t, Equivalent(raw.Text("OK"), raw.Bool(true), StatusTrue))
	require.False(t, Equivalent(raw.Text("OK"), raw.Text("ERR"), StatusTrue))
	require.True(t, Equivalent(raw.Text("0"), raw.Bool(false), StatusFalse))
}
