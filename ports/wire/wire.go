package wire

import (
	"context"
	"errors"

	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
)

var (
	ErrClosed         = errors.New("wire: executor closed")
	ErrUnknownCommand = errors.New("wire: unknown command")
	ErrUnknownNode    = errors.New("wire: unknown node address")
	ErrSlotOutOfRange = errors.New("wire: slot out of range")
)

// Role is a cluster node's role at topology query time.
type Role uint8

const (
	RolePrimary Role = iota
	RoleReplica
)

func (r Role) String() string {
	if r == RolePrimary {
		return "primary"
	}
	return "replica"
}

// NodeInfo describes one cluster node as reported by the topology query.
type NodeInfo struct {
	Addr string `json:"addr"`
	Role Role   `json:"role"`
}

// Executor is the narrow contract to the external transport and topology
// core: execute a command under a routing directive, list the cluster nodes,
// close. Routing resolution, request encoding, retries, and connection
// lifecycle all live behind it.
type Executor interface {
	// Execute runs a command and returns the decoded raw reply. Multi-node
	// routes may deliver an address-keyed reply; its exact shape is a
	// transport detail the raw decoder normalizes.
	Execute(ctx context.Context, cmd string, args []string, r route.Route) (raw.Value, error)

	// ListClusterNodes reports the cluster topology at call time.
	ListClusterNodes(ctx context.Context) ([]NodeInfo, error)

	Close() error
}
