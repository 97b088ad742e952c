package route

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCardinality(t *testing.T) {
	require.True(t, IsMulti(AllNodes{}))
	require.True(t, IsMulti(AllPrimaries{}))
	require.False(t, IsMulti(Random{}))
	require.False(t, IsMulti(nil))

	require.True(t, IsSingle(Random{}))
	require.True(t, IsSingle(ByAddress{Host: "127.0.0.1", Port: 7000}))
	require.True(t, IsSingle(BySlotID{ID: 12}))
	require.True(t, IsSingle(BySlotKey{Key: "user:1", Replica: true}))
	require.False(t, IsSingle(AllNodes{}))

	// Implicit is neither: cardinality depends on the command.
	require.False(t, IsSingle(nil))
}

func TestByAddressString(t *testing.T) {
	require.Equal(t, "10.1.2.3:6379", ByAddress{Host: "10.1.2.3", Port: 6379}.String())
}
