package normalize

import (
	"strings"

	"github.com/codewandler/clstrkv-go/core/clusterval"
	"github.com/codewandler/clstrkv-go/core/collapse"
	"github.com/codewandler/clstrkv-go/core/command"
	"github.com/codewandler/clstrkv-go/core/equiv"
	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
)

// reduceClientInfo selects one representative identity line from an
// implicitly routed query, preferring nodes that report library
// identification over ones that do not. Explicit routes reconcile normally.
func reduceClientInfo(v raw.Value, r route.Route) (clusterval.Value[raw.Value], error) {
	if v.Kind() != raw.KindNodeMap {
		return clusterval.Single(v), nil
	}
	if r != nil {
		return collapse.Collapse(v, command.ClientInfo, r, equiv.Exact), nil
	}

	for _, e := range v.Nodes() {
		t := e.Value.String()
		if strings.Contains(t, "lib-name=") && strings.Contains(t, "lib-ver=") {
			return clusterval.Single(e.Value), nil
		}
	}
	for _, e := range v.Nodes() {
		if !e.Value.IsNil() {
			return clusterval.Single(e.Value), nil
		}
	}
	return clusterval.Single(raw.Nil()), nil
}
