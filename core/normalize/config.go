package normalize

import (
	"fmt"

	"github.com/codewandler/clstrkv-go/core/clusterval"
	"github.com/codewandler/clstrkv-go/core/collapse"
	"github.com/codewandler/clstrkv-go/core/command"
	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
)

// reduceConfigPairs folds the flat alternating key/value array (or
// already-structured reply) into a canonical key→value structure per node,
// then applies the generic collapse, or keeps the per-node mapping for
// explicit multi-node directives.
func reduceConfigPairs(v raw.Value, r route.Route) (clusterval.Value[raw.Value], error) {
	if v.Kind() != raw.KindNodeMap {
		folded, err := raw.FoldPairs(v)
		if err != nil {
			return clusterval.Value[raw.Value]{}, err
		}
		return clusterval.Single(folded), nil
	}

	entries := make([]raw.NodeEntry, len(v.Nodes()))
	for i, e := range v.Nodes() {
		folded, err := raw.FoldPairs(e.Value)
		if err != nil {
			return clusterval.Value[raw.Value]{}, fmt.Errorf("node %s: %w", e.Addr, err)
		}
		entries[i] = raw.NodeEntry{Addr: e.Addr, Value: folded}
	}
	foldedMap := raw.NodeMap(entries...)

	if route.IsMulti(r) {
		return clusterval.Multi(collapse.ToMap(foldedMap)), nil
	}
	return collapse.Collapse(foldedMap, command.ConfigGet, r, Class(command.ConfigGet)), nil
}
