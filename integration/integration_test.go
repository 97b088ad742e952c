package integration

import (
	"testing"

	"github.com/stretchr/testify/require"

	natsadapter "github.com/codewandler/clstrkv-go/adapters/nats"
	"github.com/codewandler/clstrkv-go/core/facade"
	"github.com/codewandler/clstrkv-go/core/route"
	"github.com/codewandler/clstrkv-go/ports/wire"
)

// TestIntegration runs the full stack: a facade client talking over NATS
// request/reply to a server fronting the in-memory cluster, with the NATS
// broker in a container.
func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed integration test")
	}

	connect := natsadapter.ReuseConnection(natsadapter.NewTestContainer(t))
	cluster := wire.CreateTestCluster(t, wire.ClusterOptions{Primaries: 3, ReplicasPerPrimary: 1})

	srv, err := natsadapter.NewServer(natsadapter.ServerConfig{
		Connect:  connect,
		Executor: cluster,
	})
	require.NoError(t, err)
	require.NoError(t, srv.Serve(t.Context()))
	t.Cleanup(func() { _ = srv.Close() })

	transport, err := natsadapter.NewTransport(natsadapter.TransportConfig{
		Connect: connect,
	})
	require.NoError(t, err)

	client, err := facade.New(facade.Options{Executor: transport})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	ctx := t.Context()

	pong, err := client.Ping(ctx)
	require.NoError(t, err)
	require.Equal(t, "PONG", pong)

	require.NoError(t, client.Set(ctx, "user:1", "alice"))
	got, ok, err := client.Get(ctx, "user:1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "alice", got)

	n, err := client.DBSize(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	// INFO crosses the wire as an address-keyed structure and must come
	// back per node.
	reports, err := client.Info(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 6)

	sha, err := client.ScriptLoad(ctx, "return 1")
	require.NoError(t, err)
	exists, err := client.ScriptExists(ctx, sha, "0000000000000000000000000000000000000000")
	require.NoError(t, err)
	require.Equal(t, []bool{true, false}, exists)

	// Explicit single-node route through the whole stack.
	v, err := client.EchoWithRoute(ctx, "hi", route.ByAddress{Host: "127.0.0.1", Port: 7000})
	require.NoError(t, err)
	single, err := v.SingleValue()
	require.NoError(t, err)
	require.Equal(t, "hi", single)

	_, err = client.CustomCommand(ctx, "NOSUCH")
	require.ErrorIs(t, err, wire.ErrUnknownCommand)
}
