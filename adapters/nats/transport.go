package nats

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	natsgo "github.com/nats-io/nats.go"

	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
	"github.com/codewandler/clstrkv-go/internal/codec"
	"github.com/codewandler/clstrkv-go/ports/wire"
)

const defaultSubjectPrefix = "clstrkv"

type TransportConfig struct {
	Connect       Connector    // Connect creates the underlying NATS connection. If nil, ConnectDefault() is used.
	Log           *slog.Logger // Log for diagnostics (optional)
	SubjectPrefix string       // SubjectPrefix for request subjects, e.g. "clstrkv" -> clstrkv.exec
}

// Transport executes commands against a remote cluster endpoint over NATS
// request/reply. It is the client half; the matching server half is [Server].
type Transport struct {
	nc      *natsgo.Conn
	closeNc closeFunc
	log     *slog.Logger
	prefix  string
	codec   codec.Codec

	closed atomic.Bool
}

func NewTransport(cfg TransportConfig) (*Transport, error) {
	connFn := cfg.Connect
	if connFn == nil {
		connFn = ConnectDefault()
	}

	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = defaultSubjectPrefix
	}

	nc, closeNc, err := connFn()
	if err != nil {
		return nil, err
	}

	return &Transport{
		nc:      nc,
		closeNc: closeNc,
		log:     log.With(slog.String("transport", "nats")),
		prefix:  prefix,
		codec:   codec.JSONCodec{},
	}, nil
}

func (t *Transport) subjectExec() string  { return t.prefix + ".exec" }
func (t *Transport) subjectNodes() string { return t.prefix + ".nodes" }

func (t *Transport) Execute(ctx context.Context, cmd string, args []string, r route.Route) (raw.Value, error) {
	if t.closed.Load() {
		return raw.Value{}, wire.ErrClosed
	}

	rf, err := encodeRoute(r)
	if err != nil {
		return raw.Value{}, err
	}
	payload, err := t.codec.Marshal(commandFrame{Command: cmd, Args: args, Route: rf})
	if err != nil {
		return raw.Value{}, fmt.Errorf("nats: encode command: %w", err)
	}

	msg, err := t.nc.RequestWithContext(ctx, t.subjectExec(), payload)
	if err != nil {
		return raw.Value{}, fmt.Errorf("nats: request: %w", err)
	}

	var resp responseFrame
	if err := t.codec.Unmarshal(msg.Data, &resp); err != nil {
		return raw.Value{}, fmt.Errorf("nats: decode response: %w", err)
	}
	if resp.Err != "" {
		return raw.Value{}, remoteError(resp.Err)
	}
	return resp.Value, nil
}

func (t *Transport) ListClusterNodes(ctx context.Context) ([]wire.NodeInfo, error) {
	if t.closed.Load() {
		return nil, wire.ErrClosed
	}

	msg, err := t.nc.RequestWithContext(ctx, t.subjectNodes(), nil)
	if err != nil {
		return nil, fmt.Errorf("nats: request nodes: %w", err)
	}

	var resp nodesFrame
	if err := t.codec.Unmarshal(msg.Data, &resp); err != nil {
		return nil, fmt.Errorf("nats: decode nodes: %w", err)
	}
	if resp.Err != "" {
		return nil, remoteError(resp.Err)
	}
	return resp.Nodes, nil
}

func (t *Transport) Close() error {
	if t.closed.Swap(true) {
		return wire.ErrClosed
	}
	if t.nc != nil {
		t.nc.Drain()
		t.closeNc()
	}
	return nil
}

// remoteError maps well-known error strings back to their sentinels so
// errors.Is keeps working across the wire.
func remoteError(s string) error {
	for _, sentinel := range []error{
		wire.ErrUnknownCommand,
		wire.ErrUnknownNode,
		wire.ErrSlotOutOfRange,
		wire.ErrClosed,
	} {
		if i := strings.Index(s, sentinel.Error()); i >= 0 {
			return fmt.Errorf("nats: remote: %w%s", sentinel, s[i+len(sentinel.Error()):])
		}
	}
	return fmt.Errorf("nats: remote: %s", s)
}

var _ wire.Executor = (*Transport)(nil)
