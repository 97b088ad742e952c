package facade

import (
	"context"
	"fmt"
	"strconv"

	"github.com/codewandler/clstrkv-go/core/clusterval"
	"github.com/codewandler/clstrkv-go/core/command"
	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
)

// Ping checks liveness of one arbitrary node.
func (c *Client) Ping(ctx context.Context) (string, error) {
	v, err := mustSingle(c.do(ctx, command.Ping, nil, nil))
	if err != nil {
		return "", err
	}
	return v.Text(), nil
}

// Echo returns msg from one arbitrary node.
func (c *Client) Echo(ctx context.Context, msg string) (string, error) {
	v, err := mustSingle(c.do(ctx, command.Echo, []string{msg}, nil))
	if err != nil {
		return "", err
	}
	return v.Text(), nil
}

// EchoWithRoute returns msg from the routed node or nodes. Echo never
// collapses, so a multi-node route always yields per-node values.
func (c *Client) EchoWithRoute(ctx context.Context, msg string, r route.Route) (clusterval.Value[string], error) {
	v, err := c.do(ctx, command.Echo, []string{msg}, r)
	if err != nil {
		return clusterval.Value[string]{}, err
	}
	return clusterval.Map(v, raw.Value.Text), nil
}

// Get reads a key. The second return reports whether the key exists.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := mustSingle(c.do(ctx, command.Get, []string{key}, nil))
	if err != nil {
		return "", false, err
	}
	if v.IsNil() {
		return "", false, nil
	}
	return v.Text(), true, nil
}

// Set writes a key on the primary owning its slot.
func (c *Client) Set(ctx context.Context, key, value string) error {
	_, err := c.do(ctx, command.Set, []string{key, value}, nil)
	return err
}

// Info returns the restructured server report per node, keyed by node
// address. The report is always node-attributed, even when the transport
// answered without attribution.
func (c *Client) Info(ctx context.Context) (map[string]string, error) {
	v, err := c.do(ctx, command.Info, nil, nil)
	if err != nil {
		return nil, err
	}
	m, err := v.MultiValue()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(m))
	for addr, rv := range m {
		out[addr] = rv.Text()
	}
	return out, nil
}

// InfoWithRoute returns the restructured server report under an explicit
// route. A single-node route yields a single report.
func (c *Client) InfoWithRoute(ctx context.Context, r route.Route) (clusterval.Value[string], error) {
	v, err := c.do(ctx, command.Info, nil, r)
	if err != nil {
		return clusterval.Value[string]{}, err
	}
	return clusterval.Map(v, raw.Value.Text), nil
}

// ClientInfo describes this client's connection. Under an implicit route the
// reply advertising the client library is preferred over replies that do not.
func (c *Client) ClientInfo(ctx context.Context) (string, error) {
	v, err := mustSingle(c.do(ctx, command.ClientInfo, nil, nil))
	if err != nil {
		return "", err
	}
	return v.Text(), nil
}

// ClusterNodes returns the merged topology text: per-node line sets deduped
// and filtered down to primary lines.
func (c *Client) ClusterNodes(ctx context.Context) (string, error) {
	v, err := mustSingle(c.do(ctx, command.ClusterNodes, nil, nil))
	if err != nil {
		return "", err
	}
	if v.IsNil() {
		return "", nil
	}
	return v.Text(), nil
}

// ConfigGet reads configuration parameters, flattened to a key/value map.
func (c *Client) ConfigGet(ctx context.Context, params ...string) (map[string]string, error) {
	v, err := mustSingle(c.do(ctx, command.ConfigGet, params, nil))
	if err != nil {
		return nil, err
	}
	return configMap(v), nil
}

// ConfigGetWithRoute reads configuration under an explicit route. A
// multi-node route with diverging values yields per-node maps.
func (c *Client) ConfigGetWithRoute(ctx context.Context, r route.Route, params ...string) (clusterval.Value[map[string]string], error) {
	v, err := c.do(ctx, command.ConfigGet, params, r)
	if err != nil {
		return clusterval.Value[map[string]string]{}, err
	}
	return clusterval.Map(v, configMap), nil
}

func configMap(v raw.Value) map[string]string {
	pairs := v.Pairs()
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		out[p.Key] = p.Value.Text()
	}
	return out
}

// ConfigSet writes configuration parameters on every primary.
func (c *Client) ConfigSet(ctx context.Context, params map[string]string) error {
	args := make([]string, 0, len(params)*2)
	for k, v := range params {
		args = append(args, k, v)
	}
	v, err := c.do(ctx, command.ConfigSet, args, nil)
	if err != nil {
		return err
	}
	return requireUniform(command.ConfigSet, v)
}

// DBSize sums the key counts of all primaries.
func (c *Client) DBSize(ctx context.Context) (int64, error) {
	v, err := mustSingle(c.do(ctx, command.DBSize, nil, nil))
	if err != nil {
		return 0, err
	}
	return v.Int(), nil
}

// FlushAll clears every primary.
func (c *Client) FlushAll(ctx context.Context) error {
	v, err := c.do(ctx, command.FlushAll, nil, nil)
	if err != nil {
		return err
	}
	return requireUniform(command.FlushAll, v)
}

// ScriptLoad loads a script on every primary and returns its digest.
func (c *Client) ScriptLoad(ctx context.Context, script string) (string, error) {
	v, err := c.do(ctx, command.ScriptLoad, []string{script}, nil)
	if err != nil {
		return "", err
	}
	// All nodes compute the same digest, so a uniform reply collapses. A
	// divergent reply means the cluster disagrees on the script content.
	sv, err := v.SingleValue()
	if err != nil {
		return "", fmt.Errorf("facade: %s: divergent digests across nodes", command.ScriptLoad)
	}
	return sv.Text(), nil
}

// ScriptExists reports, per digest, whether any primary knows the script.
// The command fans out per node and the positional answers combine with OR.
func (c *Client) ScriptExists(ctx context.Context, digests ...string) ([]bool, error) {
	if len(digests) == 0 {
		return nil, nil
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	targets, err := c.scatter.Targets(ctx, route.AllPrimaries{})
	if err != nil {
		return nil, wrapErr(command.ScriptExists, err)
	}
	flags, err := c.scatter.OrGather(ctx, command.ScriptExists, digests, targets, len(digests))
	if err != nil {
		return nil, wrapErr(command.ScriptExists, err)
	}
	return flags, nil
}

// FCall invokes a loaded function. The reply shape is function-defined and
// never collapses across nodes.
func (c *Client) FCall(ctx context.Context, fn string, keys, args []string) (clusterval.Value[raw.Value], error) {
	return c.do(ctx, command.FCall, fcallArgs(fn, keys, args), nil)
}

// FCallReadOnly is FCall against read paths, replicas included.
func (c *Client) FCallReadOnly(ctx context.Context, fn string, keys, args []string) (clusterval.Value[raw.Value], error) {
	return c.do(ctx, command.FCallReadOnly, fcallArgs(fn, keys, args), nil)
}

func fcallArgs(fn string, keys, args []string) []string {
	out := make([]string, 0, 2+len(keys)+len(args))
	out = append(out, fn, strconv.Itoa(len(keys)))
	out = append(out, keys...)
	out = append(out, args...)
	return out
}

// FunctionList describes loaded function libraries. Never collapses.
func (c *Client) FunctionList(ctx context.Context, r route.Route) (clusterval.Value[raw.Value], error) {
	return c.do(ctx, command.FunctionList, nil, r)
}

// FunctionStats reports function engine statistics. Never collapses.
func (c *Client) FunctionStats(ctx context.Context, r route.Route) (clusterval.Value[raw.Value], error) {
	return c.do(ctx, command.FunctionStats, nil, r)
}

// CustomCommand runs an arbitrary command under the implicit route with
// generic reconciliation.
func (c *Client) CustomCommand(ctx context.Context, cmd string, args ...string) (clusterval.Value[raw.Value], error) {
	return c.do(ctx, cmd, args, nil)
}

// CustomCommandWithRoute runs an arbitrary command under an explicit route.
func (c *Client) CustomCommandWithRoute(ctx context.Context, cmd string, r route.Route, args ...string) (clusterval.Value[raw.Value], error) {
	return c.do(ctx, cmd, args, r)
}

// requireUniform enforces that a status command collapsed: every node
// acknowledged. A multi-shaped result means at least one node answered
// differently.
func requireUniform(cmd string, v clusterval.Value[raw.Value]) error {
	if v.IsMulti() {
		return fmt.Errorf("facade: %s: nodes did not uniformly acknowledge", cmd)
	}
	return nil
}
