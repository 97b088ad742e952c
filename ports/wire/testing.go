package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTestCluster spins up an in-memory cluster and tears it down with the
// test.
func CreateTestCluster(t *testing.T, opts ClusterOptions) *Cluster {
	t.Helper()

	c, err := NewCluster(opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, c.Close())
	})
	return c
}
