package normalize

import (
	"github.com/codewandler/clstrkv-go/core/clusterval"
	"github.com/codewandler/clstrkv-go/core/collapse"
	"github.com/codewandler/clstrkv-go/core/command"
	"github.com/codewandler/clstrkv-go/core/equiv"
	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
)

// Reducer turns a decoded reply into the caller-facing result for one
// command whose cluster semantics are not the generic uniform collapse.
type Reducer func(v raw.Value, r route.Route) (clusterval.Value[raw.Value], error)

// table maps command identifiers to their specialized reducer. Built once,
// never mutated at runtime.
var table = map[string]Reducer{
	command.Info:          reduceInfo,
	command.ClusterNodes:  reduceClusterNodes,
	command.ClientInfo:    reduceClientInfo,
	command.ConfigGet:     reduceConfigPairs,
	command.DBSize:        reduceSum(command.DBSize),
	command.ConfigSet:     reduceStatus(command.ConfigSet),
	command.FlushAll:      reduceStatus(command.FlushAll),
	command.FlushDB:       reduceStatus(command.FlushDB),
	command.ScriptFlush:   reduceStatus(command.ScriptFlush),
	command.FunctionFlush: reduceStatus(command.FunctionFlush),
}

// classes declares the equivalence class governing a command's collapse
// decision. Commands not listed use Exact.
var classes = map[string]equiv.Class{
	command.DBSize:        equiv.Numeric,
	command.ConfigSet:     equiv.StatusTrue,
	command.FlushAll:      equiv.StatusTrue,
	command.FlushDB:       equiv.StatusTrue,
	command.ScriptFlush:   equiv.StatusTrue,
	command.FunctionFlush: equiv.StatusTrue,
}

// Lookup returns the specialized reducer for cmd, if any.
func Lookup(cmd string) (Reducer, bool) {
	red, ok := table[cmd]
	return red, ok
}

// Class returns the equivalence class declared for cmd (default Exact).
func Class(cmd string) equiv.Class {
	return classes[cmd]
}

// reduceStatus collapses under the status-true relation: all nodes answered
// affirmatively and the reply degenerates to the reference status.
func reduceStatus(cmd string) Reducer {
	return func(v raw.Value, r route.Route) (clusterval.Value[raw.Value], error) {
		return collapse.Collapse(v, cmd, r, equiv.StatusTrue), nil
	}
}

// reduceSum adds up all per-node numeric values. A node whose value cannot be
// parsed as a number is skipped, not treated as a failure; the sum
// under-counts if a node returns garbage instead of failing outright.
func reduceSum(cmd string) Reducer {
	_ = cmd
	return func(v raw.Value, r route.Route) (clusterval.Value[raw.Value], error) {
		if v.Kind() != raw.KindNodeMap {
			if f, ok := v.Float64(); ok {
				return clusterval.Single(numeric(f)), nil
			}
			return clusterval.Single(v), nil
		}
		var sum float64
		for _, e := range v.Nodes() {
			f, ok := e.Value.Float64()
			if !ok {
				continue
			}
			sum += f
		}
		return clusterval.Single(numeric(sum)), nil
	}
}

func numeric(f float64) raw.Value {
	if f == float64(int64(f)) {
		return raw.Int(int64(f))
	}
	return raw.Float(f)
}
