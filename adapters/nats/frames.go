package nats

import (
	"fmt"

	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
	"github.com/codewandler/clstrkv-go/ports/wire"
)

// commandFrame carries one command execution request. Must match on both
// sides of the subject.
type commandFrame struct {
	Command string     `json:"cmd"`
	Args    []string   `json:"args,omitempty"`
	Route   routeFrame `json:"route"`
}

// routeFrame is the wire form of a routing directive. Kind "" is the
// implicit route.
type routeFrame struct {
	Kind    string `json:"kind,omitempty"`
	Host    string `json:"host,omitempty"`
	Port    int    `json:"port,omitempty"`
	Slot    uint32 `json:"slot,omitempty"`
	Key     string `json:"key,omitempty"`
	Replica bool   `json:"replica,omitempty"`
}

type responseFrame struct {
	Value raw.Value `json:"value"`
	Err   string    `json:"err,omitempty"`
}

type nodesFrame struct {
	Nodes []wire.NodeInfo `json:"nodes"`
	Err   string          `json:"err,omitempty"`
}

func encodeRoute(r route.Route) (routeFrame, error) {
	switch rt := r.(type) {
	case nil:
		return routeFrame{}, nil
	case route.ByAddress:
		return routeFrame{Kind: "addr", Host: rt.Host, Port: rt.Port}, nil
	case route.BySlotID:
		return routeFrame{Kind: "slot", Slot: rt.ID, Replica: rt.Replica}, nil
	case route.BySlotKey:
		return routeFrame{Kind: "key", Key: rt.Key, Replica: rt.Replica}, nil
	case route.Random:
		return routeFrame{Kind: "random"}, nil
	case route.AllNodes:
		return routeFrame{Kind: "all"}, nil
	case route.AllPrimaries:
		return routeFrame{Kind: "primaries"}, nil
	default:
		return routeFrame{}, fmt.Errorf("nats: unsupported route %T", r)
	}
}

func decodeRoute(f routeFrame) (route.Route, error) {
	switch f.Kind {
	case "":
		return nil, nil
	case "addr":
		return route.ByAddress{Host: f.Host, Port: f.Port}, nil
	case "slot":
		return route.BySlotID{ID: f.Slot, Replica: f.Replica}, nil
	case "key":
		return route.BySlotKey{Key: f.Key, Replica: f.Replica}, nil
	case "random":
		return route.Random{}, nil
	case "all":
		return route.AllNodes{}, nil
	case "primaries":
		return route.AllPrimaries{}, nil
	default:
		return nil, fmt.Errorf("nats: unknown route kind %q", f.Kind)
	}
}
