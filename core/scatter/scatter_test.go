package scatter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/clstrkv-go/core/command"
	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
	"github.com/codewandler/clstrkv-go/ports/wire"
)

type fakeExec struct {
	nodes   []wire.NodeInfo
	replies map[string]raw.Value // addr -> reply
	fail    map[string]error     // addr -> error
}

func (f *fakeExec) Execute(_ context.Context, _ string, _ []string, r route.Route) (raw.Value, error) {
	addr := r.(route.ByAddress).String()
	if err, ok := f.fail[addr]; ok {
		return raw.Value{}, err
	}
	return f.replies[addr], nil
}

func (f *fakeExec) ListClusterNodes(context.Context) ([]wire.NodeInfo, error) {
	return f.nodes, nil
}

func (f *fakeExec) Close() error { return nil }

func bools(vals ...bool) raw.Value {
	items := make([]raw.Value, len(vals))
	for i, b := range vals {
		items[i] = raw.Bool(b)
	}
	return raw.Array(items...)
}

func TestTargets_FiltersByRole(t *testing.T) {
	exec := &fakeExec{nodes: []wire.NodeInfo{
		{Addr: "127.0.0.1:7000", Role: wire.RolePrimary},
		{Addr: "127.0.0.1:7001", Role: wire.RoleReplica},
		{Addr: "127.0.0.1:7002", Role: wire.RolePrimary},
	}}
	d, err := New(Options{Executor: exec})
	require.NoError(t, err)

	targets, err := d.Targets(t.Context(), route.AllPrimaries{})
	require.NoError(t, err)
	require.Equal(t, []string{"127.0.0.1:7000", "127.0.0.1:7002"}, targets)

	targets, err = d.Targets(t.Context(), route.AllNodes{})
	require.NoError(t, err)
	require.Len(t, targets, 3)
}

func TestOrGather_CombinesPositionally(t *testing.T) {
	// The second flag is known to exactly one node; it must still come
	// back true.
	exec := &fakeExec{
		replies: map[string]raw.Value{
			"127.0.0.1:7000": bools(true, false, false),
			"127.0.0.1:7001": bools(false, true, false),
			"127.0.0.1:7002": bools(true, false, false),
		},
	}
	d, err := New(Options{Executor: exec})
	require.NoError(t, err)

	out, err := d.OrGather(t.Context(), command.ScriptExists, []string{"a", "b", "c"},
		[]string{"127.0.0.1:7000", "127.0.0.1:7001", "127.0.0.1:7002"}, 3)
	require.NoError(t, err)
	require.Equal(t, []bool{true, true, false}, out)
}

func TestOrGather_NodeFailureIsNeutral(t *testing.T) {
	exec := &fakeExec{
		replies: map[string]raw.Value{
			"127.0.0.1:7000": bools(true, false),
		},
		fail: map[string]error{
			"127.0.0.1:7001": errors.New("connection refused"),
		},
	}
	d, err := New(Options{Executor: exec})
	require.NoError(t, err)

	out, err := d.OrGather(t.Context(), command.ScriptExists, []string{"a", "b"},
		[]string{"127.0.0.1:7000", "127.0.0.1:7001"}, 2)
	require.NoError(t, err)
	require.Equal(t, []bool{true, false}, out)
}

func TestOrGather_CancelledContextIsNotNeutral(t *testing.T) {
	// Every node dies with the context; the gather observed nothing and must
	// report the cancellation, not a confident all-false.
	exec := &fakeExec{
		fail: map[string]error{
			"127.0.0.1:7000": context.Canceled,
			"127.0.0.1:7001": context.Canceled,
		},
	}
	d, err := New(Options{Executor: exec})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err = d.OrGather(ctx, command.ScriptExists, []string{"a"},
		[]string{"127.0.0.1:7000", "127.0.0.1:7001"}, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOrGather_IntAndTextBooleans(t *testing.T) {
	exec := &fakeExec{
		replies: map[string]raw.Value{
			"127.0.0.1:7000": raw.Array(raw.Int(1), raw.Text("0")),
			"127.0.0.1:7001": raw.Array(raw.Int(0), raw.Text("1")),
		},
	}
	d, err := New(Options{Executor: exec})
	require.NoError(t, err)

	out, err := d.OrGather(t.Context(), command.ScriptExists, nil,
		[]string{"127.0.0.1:7000", "127.0.0.1:7001"}, 2)
	require.NoError(t, err)
	require.Equal(t, []bool{true, true}, out)
}

func TestOrGather_WrongShapeIsNeutral(t *testing.T) {
	exec := &fakeExec{
		replies: map[string]raw.Value{
			"127.0.0.1:7000": raw.Text("nope"),
			"127.0.0.1:7001": bools(false, true),
		},
	}
	d, err := New(Options{Executor: exec})
	require.NoError(t, err)

	out, err := d.OrGather(t.Context(), command.ScriptExists, nil,
		[]string{"127.0.0.1:7000", "127.0.0.1:7001"}, 2)
	require.NoError(t, err)
	require.Equal(t, []bool{false, true}, out)
}

func TestOrGather_NoTargets(t *testing.T) {
	d, err := New(Options{Executor: &fakeExec{}})
	require.NoError(t, err)

	_, err = d.OrGather(t.Context(), command.ScriptExists, nil, nil, 1)
	require.ErrorIs(t, err, ErrNoTargets)
}

func TestNew_RequiresExecutor(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}
