package normalize

import (
	"strings"

	"github.com/codewandler/clstrkv-go/core/clusterval"
	"github.com/codewandler/clstrkv-go/core/collapse"
	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
)

// reduceClusterNodes flattens an address-keyed topology listing into one text
// block when the caller made an implicit request. Explicitly routed multi-node
// queries keep the per-node mapping as queried.
func reduceClusterNodes(v raw.Value, r route.Route) (clusterval.Value[raw.Value], error) {
	if v.Kind() == raw.KindNodeMap && route.IsMulti(r) {
		return clusterval.Multi(collapse.ToMap(v)), nil
	}

	var lines []string
	seen := make(map[string]struct{})
	add := func(text string) {
		for _, ln := range strings.Split(text, "\n") {
			ln = strings.TrimSpace(strings.TrimSuffix(ln, "\r"))
			if ln == "" {
				continue
			}
			if _, ok := seen[ln]; ok {
				continue
			}
			seen[ln] = struct{}{}
			lines = append(lines, ln)
		}
	}

	if v.Kind() == raw.KindNodeMap {
		for _, e := range v.Nodes() {
			add(e.Value.String())
		}
	} else {
		add(v.String())
	}

	if primaries := primaryLines(lines); len(primaries) > 0 {
		lines = primaries
	}
	if len(lines) == 0 {
		return clusterval.Single(raw.Nil()), nil
	}
	return clusterval.Single(raw.Text(strings.Join(lines, "\n"))), nil
}

// primaryLines keeps topology lines describing reachable primaries. The flags
// field is the third token of a CLUSTER NODES line.
func primaryLines(lines []string) []string {
	var out []string
	for _, ln := range lines {
		toks := strings.Split(ln, " ")
		if len(toks) < 3 {
			continue
		}
		flags := strings.ToLower(toks[2])
		if !strings.Contains(flags, "master") {
			continue
		}
		if strings.Contains(flags, "slave") || strings.Contains(flags, "replica") ||
			strings.Contains(flags, "noaddr") || strings.Contains(flags, "handshake") {
			continue
		}
		out = append(out, ln)
	}
	return out
}
