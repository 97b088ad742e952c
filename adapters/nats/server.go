package nats

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	natsgo "github.com/nats-io/nats.go"

	"github.com/codewandler/clstrkv-go/internal/codec"
	"github.com/codewandler/clstrkv-go/ports/wire"
)

type ServerConfig struct {
	Connect       Connector
	Log           *slog.Logger
	SubjectPrefix string
	// Executor answers the requests arriving on the subjects.
	Executor wire.Executor
}

// Server exposes a wire.Executor over NATS request/reply subjects. One
// subject carries command executions, one carries topology queries.
type Server struct {
	nc      *natsgo.Conn
	closeNc closeFunc
	log     *slog.Logger
	prefix  string
	exec    wire.Executor
	codec   codec.Codec

	mu   sync.Mutex
	subs []*natsgo.Subscription

	closed atomic.Bool
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Executor == nil {
		return nil, errNoExecutor
	}

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

	return &Server{
		nc:      nc,
		closeNc: closeNc,
		log:     log.With(slog.String("server", "nats")),
		prefix:  prefix,
		exec:    cfg.Executor,
		codec:   codec.JSONCodec{},
	}, nil
}

// Serve subscribes the request subjects and answers until ctx is cancelled
// or Close is called. It does not block.
func (s *Server) Serve(ctx context.Context) error {
	if s.closed.Load() {
		return wire.ErrClosed
	}

	execSub, err := s.nc.Subscribe(s.prefix+".exec", func(msg *natsgo.Msg) {
		s.handleExec(ctx, msg)
	})
	if err != nil {
		return err
	}
	nodesSub, err := s.nc.Subscribe(s.prefix+".nodes", func(msg *natsgo.Msg) {
		s.handleNodes(ctx, msg)
	})
	if err != nil {
		_ = execSub.Unsubscribe()
		return err
	}

	s.mu.Lock()
	s.subs = append(s.subs, execSub, nodesSub)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	s.log.Debug("serving", slog.String("prefix", s.prefix))
	return nil
}

func (s *Server) handleExec(ctx context.Context, msg *natsgo.Msg) {
	var frame commandFrame
	if err := s.codec.Unmarshal(msg.Data, &frame); err != nil {
		s.log.Error("bad command frame", slog.Any("error", err))
		s.reply(msg, responseFrame{Err: "bad command frame: " + err.Error()})
		return
	}

	r, err := decodeRoute(frame.Route)
	if err != nil {
		s.reply(msg, responseFrame{Err: err.Error()})
		return
	}

	v, err := s.exec.Execute(ctx, frame.Command, frame.Args, r)
	resp := responseFrame{Value: v}
	if err != nil {
		resp = responseFrame{Err: err.Error()}
	}
	s.reply(msg, resp)
}

func (s *Server) handleNodes(ctx context.Context, msg *natsgo.Msg) {
	nodes, err := s.exec.ListClusterNodes(ctx)
	resp := nodesFrame{Nodes: nodes}
	if err != nil {
		resp = nodesFrame{Err: err.Error()}
	}
	s.reply(msg, resp)
}

func (s *Server) reply(msg *natsgo.Msg, v any) {
	if msg.Reply == "" {
		return
	}
	b, err := s.codec.Marshal(v)
	if err != nil {
		s.log.Error("encode reply", slog.Any("error", err))
		return
	}
	if err := msg.Respond(b); err != nil {
		s.log.Error("publish reply", slog.Any("error", err))
	}
}

func (s *Server) Close() error {
	if s.closed.Swap(true) {
		return wire.ErrClosed
	}
	s.mu.Lock()
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	s.subs = nil
	s.mu.Unlock()
	if s.nc != nil {
		s.nc.Drain()
		s.closeNc()
	}
	return nil
}
