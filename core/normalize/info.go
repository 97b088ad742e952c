package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/codewandler/clstrkv-go/core/clusterval"
	"github.com/codewandler/clstrkv-go/core/collapse"
	"github.com/codewandler/clstrkv-go/core/raw"
	"github.com/codewandler/clstrkv-go/core/route"
)

// reduceInfo restructures diagnostic replies into the legacy newline-delimited
// text block, one per node. INFO is a reporting command: under an implicit
// route the result stays multi-shaped, with a placeholder key when the
// transport answered without node attribution.
func reduceInfo(v raw.Value, r route.Route) (clusterval.Value[raw.Value], error) {
	if v.Kind() == raw.KindNodeMap {
		out := make(map[string]raw.Value, len(v.Nodes()))
		for _, e := range v.Nodes() {
			out[e.Addr] = raw.Text(formatInfo(e.Value))
		}
		return clusterval.Multi(out), nil
	}

	text := raw.Text(formatInfo(v))
	if r == nil {
		return clusterval.Multi(map[string]raw.Value{collapse.PlaceholderAddr: text}), nil
	}
	return clusterval.Single(text), nil
}

// formatInfo renders a structured INFO reply as "key:value" lines, section
// headers included, and mirrors the modern replica-count field under its
// legacy name. Plain text replies get the mirror treatment only.
func formatInfo(v raw.Value) string {
	var text string
	switch v.Kind() {
	case raw.KindText:
		text = v.Text()
	case raw.KindStructured:
		var sb strings.Builder
		sectioned := false
		for _, p := range v.Pairs() {
			if p.Value.Kind() == raw.KindStructured {
				sectioned = true
				break
			}
		}
		if sectioned {
			for _, p := range v.Pairs() {
				if p.Value.Kind() != raw.KindStructured {
					continue
				}
				sb.WriteString("# ")
				sb.WriteString(titleCase(p.Key))
				sb.WriteByte('\n')
				for _, f := range p.Value.Pairs() {
					sb.WriteString(f.Key)
					sb.WriteByte(':')
					sb.WriteString(f.Value.String())
					sb.WriteByte('\n')
				}
				sb.WriteByte('\n')
			}
		} else {
			for _, p := range v.Pairs() {
				sb.WriteString(p.Key)
				sb.WriteByte(':')
				sb.WriteString(p.Value.String())
				sb.WriteByte('\n')
			}
		}
		text = sb.String()
	default:
		text = v.String()
	}
	return mirrorLegacyReplicaCount(text)
}

var replicaLineRe = regexp.MustCompile(`(?m)^(?:slave|replica)\d+:`)

// mirrorLegacyReplicaCount duplicates connected_replicas under the legacy
// connected_slaves name when the legacy line is absent. If the modern field
// is missing too, the count is derived from the per-replica lines.
func mirrorLegacyReplicaCount(text string) string {
	if strings.Contains(text, "connected_slaves:") {
		return text
	}

	if i := strings.Index(text, "connected_replicas:"); i >= 0 {
		rest := text[i:]
		line := rest
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			line = rest[:nl]
		}
		count := strings.TrimSpace(strings.TrimPrefix(line, "connected_replicas:"))
		insertAt := i + len(line)
		return text[:insertAt] + "\nconnected_slaves:" + count + text[insertAt:]
	}

	if n := len(replicaLineRe.FindAllStringIndex(text, -1)); n > 0 {
		if !strings.HasSuffix(text, "\n") && text != "" {
			text += "\n"
		}
		return text + "connected_slaves:" + strconv.Itoa(n) + "\n"
	}

	return text
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
