package facade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codewandler/clstrkv-go/core/clusterval"
	"github.com/codewandler/clstrkv-go/core/collapse"
	"github.com/codewandler/clstrkv-go/core/normalize"
	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
	"github.com/codewandler/clstrkv-go/core/scatter"
	"github.com/codewandler/clstrkv-go/ports/wire"
)

type Options struct {
	Executor wire.Executor
	Log      *slog.Logger
	Metrics  Metrics
	// Timeout bounds every command round trip. Zero means the caller's
	// context is the only bound.
	Timeout time.Duration
}

func (o *Options) validate() error {
	if o.Executor == nil {
		return errors.New("facade: executor is required")
	}
	if o.Log == nil {
		o.Log = slog.New(slog.DiscardHandler)
	}
	if o.Metrics == nil {
		o.Metrics = nopMetrics{}
	}
	return nil
}

// Client reconciles clustered replies behind a flat command surface. Every
// command runs through the same pipeline: execute, decode the wire shape,
// reduce or collapse, wrap.
type Client struct {
	exec    wire.Executor
	log     *slog.Logger
	metrics Metrics
	timeout time.Duration
	scatter *scatter.Decomposer
}

func New(opts Options) (*Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	dec, err := scatter.New(scatter.Options{
		Executor: opts.Executor,
		Log:      opts.Log,
		Metrics:  scatterMetrics{m: opts.Metrics},
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		exec:    opts.Executor,
		log:     opts.Log.With(slog.String("component", "facade")),
		metrics: opts.Metrics,
		timeout: opts.Timeout,
		scatter: dec,
	}, nil
}

// Close releases the underlying executor.
func (c *Client) Close() error {
	return c.exec.Close()
}

// withTimeout layers the configured per-command bound on top of the caller's
// context. The caller always gets a cancel to release.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return ctx, func() {}
}

// wrapErr turns a deadline expiry into the distinct timeout error, anything
// else into a command-tagged failure.
func wrapErr(cmd string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, cmd)
	}
	return fmt.Errorf("facade: %s: %w", cmd, err)
}

// do runs one command through the full reconciliation pipeline.
func (c *Client) do(ctx context.Context, cmd string, args []string, r route.Route) (clusterval.Value[raw.Value], error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	defer c.metrics.CommandDuration(cmd).ObserveDuration()

	reply, err := c.exec.Execute(ctx, cmd, args, r)
	if err != nil {
		c.metrics.CommandCompleted(cmd, false)
		return clusterval.Value[raw.Value]{}, wrapErr(cmd, err)
	}

	decoded := raw.Decode(reply, r)

	var out clusterval.Value[raw.Value]
	if red, ok := normalize.Lookup(cmd); ok {
		out, err = red(decoded, r)
		if err != nil {
			c.metrics.DecodeError(cmd)
			c.metrics.CommandCompleted(cmd, false)
			return clusterval.Value[raw.Value]{}, fmt.Errorf("facade: %s: %w", cmd, err)
		}
	} else {
		out = collapse.Collapse(decoded, cmd, r, normalize.Class(cmd))
	}

	c.metrics.CollapseDecided(cmd, out.IsSingle())
	c.metrics.CommandCompleted(cmd, true)
	c.log.Debug("command done",
		slog.String("cmd", cmd),
		slog.Bool("single", out.IsSingle()),
		slog.Duration("took", time.Since(start)),
	)
	return out, nil
}

// mustSingle unwraps the collapsed value of a command whose reply is always
// single-shaped under the route it was issued with.
func mustSingle(v clusterval.Value[raw.Value], err error) (raw.Value, error) {
	if err != nil {
		return raw.Value{}, err
	}
	return v.SingleValue()
}
