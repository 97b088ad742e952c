package scatter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
	"github.com/codewandler/clstrkv-go/core/sf"
	"github.com/codewandler/clstrkv-go/ports/wire"
)

var ErrNoTargets = errors.New("scatter: no target nodes")

// Metrics receives fan-out observations. The zero-value-safe nop is the
// default.
type Metrics interface {
	Fanout(cmd string, nodes int)
	NodeFailure(cmd string)
}

type nopMetrics struct{}

func (nopMetrics) Fanout(string, int) {}
func (nopMetrics) NodeFailure(string) {}

type Options struct {
	Executor wire.Executor
	Log      *slog.Logger
	Metrics  Metrics
}

func (o *Options) validate() error {
	if o.Executor == nil {
		return errors.New("scatter: executor is required")
	}
	if o.Log == nil {
		o.Log = slog.New(slog.DiscardHandler)
	}
	if o.Metrics == nil {
		o.Metrics = nopMetrics{}
	}
	return nil
}

// Decomposer fans one multi-node command out as per-node single-address
// executions and folds the positional boolean replies back together with OR.
// Concurrent topology lookups are deduplicated.
type Decomposer struct {
	exec    wire.Executor
	log     *slog.Logger
	metrics Metrics
	nodes   *sf.Singleflight[[]wire.NodeInfo]
}

func New(opts Options) (*Decomposer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Decomposer{
		exec:    opts.Executor,
		log:     opts.Log.With(slog.String("component", "scatter")),
		metrics: opts.Metrics,
		nodes:   sf.New[[]wire.NodeInfo](),
	}, nil
}

// Targets resolves a multi-node route to concrete node addresses.
func (d *Decomposer) Targets(ctx context.Context, r route.Route) ([]string, error) {
	infos, err := d.nodes.Do("nodes", func() ([]wire.NodeInfo, error) {
		return d.exec.ListClusterNodes(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("scatter: list nodes: %w", err)
	}

	primariesOnly := true
	if _, ok := r.(route.AllNodes); ok {
		primariesOnly = false
	}

	var out []string
	for _, n := range infos {
		if primariesOnly && n.Role != wire.RolePrimary {
			continue
		}
		out = append(out, n.Addr)
	}
	if len(out) == 0 {
		return nil, ErrNoTargets
	}
	return out, nil
}

// OrGather runs cmd with args on every target and combines the positional
// boolean replies with OR. width is the expected reply length. A node that
// fails or replies with the wrong shape contributes the neutral element
// (all false) and is logged. Only a cancelled or expired context that left
// no node answered fails the whole gather.
func (d *Decomposer) OrGather(ctx context.Context, cmd string, args []string, targets []string, width int) ([]bool, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	d.metrics.Fanout(cmd, len(targets))

	results := make([][]bool, len(targets))
	var failed atomic.Int32
	var wg sync.WaitGroup
	for i, addr := range targets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := d.exec.Execute(ctx, cmd, args, byAddress(addr))
			if err != nil {
				failed.Add(1)
				d.metrics.NodeFailure(cmd)
				d.log.Warn("node failed during gather",
					slog.String("cmd", cmd),
					slog.String("addr", addr),
					slog.Any("error", err),
				)
				return
			}
			flags, ok := boolVector(v, width)
			if !ok {
				failed.Add(1)
				d.metrics.NodeFailure(cmd)
				d.log.Warn("unexpected gather reply shape",
					slog.String("cmd", cmd),
					slog.String("addr", addr),
					slog.String("kind", v.Kind().String()),
				)
				return
			}
			results[i] = flags
		}()
	}
	wg.Wait()

	// A dead context that took every node down yields no observation at all:
	// surface the cancellation rather than an all-false vector.
	if int(failed.Load()) == len(targets) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	combined := make([]bool, width)
	for _, flags := range results {
		for i, f := range flags {
			combined[i] = combined[i] || f
		}
	}
	return combined, nil
}

func byAddress(addr string) route.Route {
	i := strings.LastIndexByte(addr, ':')
	if i < 0 {
		return route.ByAddress{Host: addr}
	}
	port, err := strconv.Atoi(addr[i+1:])
	if err != nil {
		return route.ByAddress{Host: addr}
	}
	return route.ByAddress{Host: addr[:i], Port: port}
}

// boolVector reads a positional boolean reply. Ints and the textual "0"/"1"
// count as booleans, anything else disqualifies the vector.
func boolVector(v raw.Value, width int) ([]bool, bool) {
	if v.Kind() != raw.KindArray {
		return nil, false
	}
	items := v.Items()
	if len(items) != width {
		return nil, false
	}
	out := make([]bool, width)
	for i, it := range items {
		switch it.Kind() {
		case raw.KindBool:
			out[i] = it.Bool()
		case raw.KindInt:
			out[i] = it.Int() != 0
		case raw.KindText:
			switch it.Text() {
			case "1":
				out[i] = true
			case "0":
			default:
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return out, true
}
