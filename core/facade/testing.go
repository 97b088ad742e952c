package facade

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/clstrkv-go/ports/wire"
)

// CreateTestClient builds a client over a fresh in-memory cluster and tears
// both down with the test.
func CreateTestClient(t *testing.T, clusterOpts wire.ClusterOptions) (*Client, *wire.Cluster) {
	t.Helper()

	cluster := wire.CreateTestCluster(t, clusterOpts)
	c, err := New(Options{Executor: cluster})
	require.NoError(t, err)
	return c, cluster
}
