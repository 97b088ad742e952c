package collapse

import (
	"github.com/codewandler/clstrkv-go/core/clusterval"
	"github.com/codewandler/clstrkv-go/core/command"
	"github.com/codewandler/clstrkv-go/core/equiv"
	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
)

// PlaceholderAddr keys the fabricated single-entry mapping produced for
// reporting commands when the transport answered without node attribution.
// Never a real address by construction (no port).
const PlaceholderAddr = "node.unknown"

// neverCollapse lists commands whose multi-node shape is itself meaningful.
// Declared, not inferred, so no uniform reply silently loses its per-node
// attribution.
var neverCollapse = map[string]struct{}{
	command.Echo:          {},
	command.FCall:         {},
	command.FCallReadOnly: {},
	command.FunctionList:  {},
	command.FunctionStats: {},
}

// alwaysMulti lists reporting commands whose callers always expect node
// attribution, even when an implicit route produced a bare single reply.
var alwaysMulti = map[string]struct{}{
	command.Info: {},
}

// Exempt reports whether cmd may never collapse to a single value.
func Exempt(cmd string) bool {
	_, ok := neverCollapse[cmd]
	return ok
}

// Reporting reports whether cmd always keeps a multi-value shape under an
// implicit route.
func Reporting(cmd string) bool {
	_, ok := alwaysMulti[cmd]
	return ok
}

// Collapse decides whether a decoded reply degenerates to one representative
// value. Non-mapping replies wrap as Single, except that reporting commands
// under an implicit route are given a fabricated single-entry mapping. An
// empty mapping collapses to Single(nil) so callers never special-case
// emptiness. Otherwise the first entry is the reference: if every remaining
// entry is equivalent under class c the mapping collapses to it, unless the
// command is exempt.
func Collapse(v raw.Value, cmd string, r route.Route, c equiv.Class) clusterval.Value[raw.Value] {
	if v.Kind() != raw.KindNodeMap {
		if r == nil && Reporting(cmd) {
			return clusterval.Multi(map[string]raw.Value{PlaceholderAddr: v})
		}
		return clusterval.Single(v)
	}

	nodes := v.Nodes()
	if len(nodes) == 0 {
		return clusterval.Single(raw.Nil())
	}

	if !Exempt(cmd) && !(Reporting(cmd) && r == nil) {
		ref := nodes[0].Value
		uniform := true
		for _, e := range nodes[1:] {
			if !equiv.Equivalent(ref, e.Value, c) {
				uniform = false
				break
			}
		}
		if uniform {
			return clusterval.Single(ref)
		}
	}

	return clusterval.Multi(ToMap(v))
}

// ToMap converts a node-mapping value into the map handed to callers.
func ToMap(v raw.Value) map[string]raw.Value {
	nodes := v.Nodes()
	out := make(map[string]raw.Value, len(nodes))
	for _, e := range nodes {
		out[e.Addr] = e.Value
	}
	return out
}
