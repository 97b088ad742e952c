package wire

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/codewandler/clstrkv-go/core/command"
	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
	"github.com/codewandler/clstrkv-go/ports/kv"
)

const memBasePort = 7000

type ClusterOptions struct {
	Primaries          int    // number of primary nodes (default 3)
	ReplicasPerPrimary int    // replicas attached to each primary (default 0)
	Slots              uint32 // slot space size (default 16384)
	Seed               string // slot hash seed
	Log                *slog.Logger
}

// Cluster is an in-memory fake of a clustered key-value store behind the
// Executor contract. It resolves routes itself (as any real transport would),
// runs commands against per-node kv stores, and reports multi-node replies as
// a structured value keyed by node address, the same shape quirk the raw
// decoder has to normalize for real transports.
type Cluster struct {
	log       *slog.Logger
	slots     uint32
	seed      string
	nodes     []*memNode
	primaries []*memNode
	closed    atomic.Bool
}

type memNode struct {
	id      string
	addr    string
	port    int
	role    Role
	primary *memNode // set on replicas
	store   kv.Store

	mu      sync.RWMutex
	config  map[string]string
	scripts map[string]struct{}
	libs    map[string]int // library name -> function count

	// reportLibID controls whether CLIENT INFO advertises the client
	// library. Replicas leave it off so preference ordering has something
	// to prefer against.
	reportLibID bool
}

func NewCluster(opts ClusterOptions) (*Cluster, error) {
	if opts.Primaries <= 0 {
		opts.Primaries = 3
	}
	if opts.Slots == 0 {
		opts.Slots = 16384
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	c := &Cluster{
		log:   log.With(slog.String("executor", "mem")),
		slots: opts.Slots,
		seed:  opts.Seed,
	}

	port := memBasePort
	for i := 0; i < opts.Primaries; i++ {
		p := newMemNode(port, RolePrimary, nil)
		p.reportLibID = true
		port++
		c.nodes = append(c.nodes, p)
		c.primaries = append(c.primaries, p)

		for j := 0; j < opts.ReplicasPerPrimary; j++ {
			r := newMemNode(port, RoleReplica, p)
			port++
			c.nodes = append(c.nodes, r)
		}
	}

	c.log.Debug("cluster up",
		slog.Int("nodes", len(c.nodes)),
		slog.Int("primaries", len(c.primaries)),
	)

	return c, nil
}

func newMemNode(port int, role Role, primary *memNode) *memNode {
	return &memNode{
		id:      gonanoid.Must(12),
		addr:    "127.0.0.1:" + strconv.Itoa(port),
		port:    port,
		role:    role,
		primary: primary,
		store:   kv.NewMemStore(),
		config: map[string]string{
			"maxmemory":        "0",
			"maxmemory-policy": "noeviction",
			"appendonly":       "no",
		},
		scripts: make(map[string]struct{}),
		libs:    make(map[string]int),
	}
}

func (c *Cluster) Execute(ctx context.Context, cmd string, args []string, r route.Route) (raw.Value, error) {
	if c.closed.Load() {
		return raw.Value{}, ErrClosed
	}

	targets, err := c.resolve(cmd, args, r)
	if err != nil {
		return raw.Value{}, err
	}

	if len(targets) == 1 {
		return targets[0].run(ctx, c, cmd, args)
	}

	// Multi-node replies go out address-keyed but structurally flat, the
	// way transports tend to deliver them.
	pairs := make([]raw.Pair, 0, len(targets))
	for _, n := range targets {
		v, err := n.run(ctx, c, cmd, args)
		if err != nil {
			return raw.Value{}, fmt.Errorf("node %s: %w", n.addr, err)
		}
		pairs = append(pairs, raw.Pair{Key: n.addr, Value: v})
	}
	return raw.Structured(pairs...), nil
}

func (c *Cluster) ListClusterNodes(_ context.Context) ([]NodeInfo, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	out := make([]NodeInfo, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = NodeInfo{Addr: n.addr, Role: n.role}
	}
	return out, nil
}

func (c *Cluster) Close() error {
	c.closed.Store(true)
	return nil
}

// NodeAddrs lists all node addresses, primaries first. Test helper.
func (c *Cluster) NodeAddrs() []string {
	out := make([]string, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = n.addr
	}
	return out
}

/* ---------------------- routing ---------------------- */

func (c *Cluster) resolve(cmd string, args []string, r route.Route) ([]*memNode, error) {
	switch rt := r.(type) {
	case route.ByAddress:
		n := c.byAddr(rt.String())
		if n == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, rt.String())
		}
		return []*memNode{n}, nil
	case route.BySlotID:
		if rt.ID >= c.slots {
			return nil, fmt.Errorf("%w: %d", ErrSlotOutOfRange, rt.ID)
		}
		return []*memNode{c.nodeForSlot(rt.ID, rt.Replica)}, nil
	case route.BySlotKey:
		return []*memNode{c.nodeForSlot(SlotForKey(rt.Key, c.slots, c.seed), rt.Replica)}, nil
	case route.Random:
		return []*memNode{c.nodes[rand.IntN(len(c.nodes))]}, nil
	case route.AllNodes:
		return c.nodes, nil
	case route.AllPrimaries:
		return append([]*memNode(nil), c.primaries...), nil
	case nil:
		return c.defaultTargets(cmd, args), nil
	default:
		return nil, fmt.Errorf("wire: unsupported route %T", r)
	}
}

// defaultTargets implements per-command default cluster behavior for
// implicit routes.
func (c *Cluster) defaultTargets(cmd string, args []string) []*memNode {
	switch cmd {
	case command.Get, command.Set:
		if len(args) > 0 {
			return []*memNode{c.nodeForSlot(SlotForKey(args[0], c.slots, c.seed), false)}
		}
		return []*memNode{c.primaries[0]}
	case command.Info, command.ClientInfo:
		return c.nodes
	case command.DBSize, command.FlushAll, command.FlushDB,
		command.ConfigSet, command.ScriptLoad, command.ScriptFlush,
		command.FunctionFlush:
		return append([]*memNode(nil), c.primaries...)
	default:
		// ECHO, PING, CLUSTER NODES, CONFIG GET, SCRIPT EXISTS, FCALL,
		// FUNCTION LIST/STATS and anything else: one arbitrary node.
		return []*memNode{c.nodes[rand.IntN(len(c.nodes))]}
	}
}

func (c *Cluster) byAddr(addr string) *memNode {
	for _, n := range c.nodes {
		if n.addr == addr {
			return n
		}
	}
	return nil
}

func (c *Cluster) nodeForSlot(slot uint32, replica bool) *memNode {
	p := c.primaries[int(slot)%len(c.primaries)]
	if replica {
		for _, n := range c.nodes {
			if n.primary == p {
				return n
			}
		}
	}
	return p
}

func (c *Cluster) replicasOf(p *memNode) []*memNode {
	var out []*memNode
	for _, n := range c.nodes {
		if n.primary == p {
			out = append(out, n)
		}
	}
	return out
}

/* ---------------------- command handling ---------------------- */

func (n *memNode) run(ctx context.Context, c *Cluster, cmd string, args []string) (raw.Value, error) {
	switch cmd {
	case command.Ping:
		return raw.Text("PONG"), nil

	case command.Echo:
		if len(args) != 1 {
			return raw.Value{}, fmt.Errorf("wire: ECHO wants 1 argument, got %d", len(args))
		}
		return raw.Text(args[0]), nil

	case command.Get:
		if len(args) != 1 {
			return raw.Value{}, fmt.Errorf("wire: GET wants 1 argument, got %d", len(args))
		}
		// Replicas serve reads from their primary's store.
		store := n.dataStore()
		v, err := store.Get(ctx, args[0])
		if errors.Is(err, kv.ErrNotFound) {
			return raw.Nil(), nil
		}
		if err != nil {
			return raw.Value{}, err
		}
		return raw.Text(v), nil

	case command.Set:
		if len(args) != 2 {
			return raw.Value{}, fmt.Errorf("wire: SET wants 2 arguments, got %d", len(args))
		}
		if err := n.dataStore().Put(ctx, args[0], args[1]); err != nil {
			return raw.Value{}, err
		}
		return raw.Text("OK"), nil

	case command.DBSize:
		size, err := n.dataStore().Len(ctx)
		if err != nil {
			return raw.Value{}, err
		}
		return raw.Int(int64(size)), nil

	case command.FlushAll, command.FlushDB:
		if err := n.dataStore().Clear(ctx); err != nil {
			return raw.Value{}, err
		}
		return raw.Text("OK"), nil

	case command.ConfigGet:
		return n.configGet(args), nil

	case command.ConfigSet:
		if len(args)%2 != 0 {
			return raw.Value{}, fmt.Errorf("wire: CONFIG SET wants key/value pairs")
		}
		n.mu.Lock()
		for i := 0; i+1 < len(args); i += 2 {
			n.config[args[i]] = args[i+1]
		}
		n.mu.Unlock()
		return raw.Text("OK"), nil

	case command.Info:
		return n.info(c), nil

	case command.ClientInfo:
		return raw.Text(n.clientInfo()), nil

	case command.ClusterNodes:
		return raw.Text(c.topologyText()), nil

	case command.ScriptLoad:
		if len(args) != 1 {
			return raw.Value{}, fmt.Errorf("wire: SCRIPT LOAD wants 1 argument, got %d", len(args))
		}
		sum := sha1.Sum([]byte(args[0]))
		sha := hex.EncodeToString(sum[:])
		n.mu.Lock()
		n.scripts[sha] = struct{}{}
		n.mu.Unlock()
		return raw.Text(sha), nil

	case command.ScriptExists:
		n.mu.RLock()
		defer n.mu.RUnlock()
		items := make([]raw.Value, len(args))
		for i, sha := range args {
			_, ok := n.scripts[sha]
			items[i] = raw.Bool(ok)
		}
		return raw.Array(items...), nil

	case command.ScriptFlush:
		n.mu.Lock()
		n.scripts = make(map[string]struct{})
		n.mu.Unlock()
		return raw.Text("OK"), nil

	case command.FCall, command.FCallReadOnly:
		if len(args) < 1 {
			return raw.Value{}, fmt.Errorf("wire: FCALL wants a function name")
		}
		return raw.Text("fcall:" + args[0]), nil

	case command.FunctionList:
		n.mu.RLock()
		defer n.mu.RUnlock()
		items := make([]raw.Value, 0, len(n.libs))
		for name, fns := range n.libs {
			items = append(items, raw.Structured(
				raw.Pair{Key: "library_name", Value: raw.Text(name)},
				raw.Pair{Key: "engine", Value: raw.Text("LUA")},
				raw.Pair{Key: "functions_count", Value: raw.Int(int64(fns))},
			))
		}
		return raw.Array(items...), nil

	case command.FunctionStats:
		n.mu.RLock()
		libs := len(n.libs)
		fns := 0
		for _, cnt := range n.libs {
			fns += cnt
		}
		n.mu.RUnlock()
		return raw.Structured(
			raw.Pair{Key: "running_script", Value: raw.Nil()},
			raw.Pair{Key: "engines", Value: raw.Structured(
				raw.Pair{Key: "LUA", Value: raw.Structured(
					raw.Pair{Key: "libraries_count", Value: raw.Int(int64(libs))},
					raw.Pair{Key: "functions_count", Value: raw.Int(int64(fns))},
				)},
			)},
		), nil

	case command.FunctionFlush:
		n.mu.Lock()
		n.libs = make(map[string]int)
		n.mu.Unlock()
		return raw.Text("OK"), nil

	default:
		return raw.Value{}, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

// dataStore returns the store commands operate on; replicas share their
// primary's data.
func (n *memNode) dataStore() kv.Store {
	if n.primary != nil {
		return n.primary.store
	}
	return n.store
}

func (n *memNode) configGet(patterns []string) raw.Value {
	n.mu.RLock()
	defer n.mu.RUnlock()

	// Flat alternating key/value array, as the wire protocol delivers it.
	var items []raw.Value
	for _, p := range patterns {
		if v, ok := n.config[p]; ok {
			items = append(items, raw.Text(p), raw.Text(v))
		}
	}
	return raw.Array(items...)
}

func (n *memNode) info(c *Cluster) raw.Value {
	replication := []raw.Pair{
		{Key: "role", Value: raw.Text(n.role.String())},
	}
	if n.role == RolePrimary {
		replicas := c.replicasOf(n)
		replication = append(replication, raw.Pair{
			Key: "connected_replicas", Value: raw.Int(int64(len(replicas))),
		})
		for i, r := range replicas {
			replication = append(replication, raw.Pair{
				Key:   "replica" + strconv.Itoa(i),
				Value: raw.Text("ip=127.0.0.1,port=" + strconv.Itoa(r.port) + ",state=online"),
			})
		}
	}

	return raw.Structured(
		raw.Pair{Key: "server", Value: raw.Structured(
			raw.Pair{Key: "run_id", Value: raw.Text(n.id)},
			raw.Pair{Key: "tcp_port", Value: raw.Int(int64(n.port))},
		)},
		raw.Pair{Key: "clients", Value: raw.Structured(
			raw.Pair{Key: "connected_clients", Value: raw.Int(1)},
		)},
		raw.Pair{Key: "replication", Value: raw.Structured(replication...)},
	)
}

func (n *memNode) clientInfo() string {
	base := "id=1 addr=" + n.addr + " name= resp=3"
	if n.reportLibID {
		return base + " lib-name=clstrkv lib-ver=0.1.0"
	}
	return base
}

func (c *Cluster) topologyText() string {
	var sb strings.Builder
	for _, n := range c.nodes {
		flags := "master"
		primaryID := "-"
		if n.primary != nil {
			flags = "slave"
			primaryID = n.primary.id
		}
		sb.WriteString(n.id)
		sb.WriteByte(' ')
		sb.WriteString(n.addr)
		sb.WriteString("@1")
		sb.WriteString(strconv.Itoa(n.port))
		sb.WriteByte(' ')
		sb.WriteString(flags)
		sb.WriteByte(' ')
		sb.WriteString(primaryID)
		sb.WriteString(" 0 0 0 connected\n")
	}
	return sb.String()
}

var _ Executor = (*Cluster)(nil)
