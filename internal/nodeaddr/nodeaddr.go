// Package nodeaddr holds the single predicate deciding whether a reply key
// looks like a cluster node address. The decoder uses it to tell a true
// per-node mapping apart from a structured payload whose keys merely resemble
// addresses.
//
// The check requires a host:port form with a numeric port. Node identifiers
// that are bare hostnames without a port separator do not match; replies keyed
// by such identifiers fall back to single-value handling. That fallback is
// deliberate and documented rather than guessed around.
package nodeaddr

import (
	"strconv"
	"strings"
)

// Valid reports whether s has the host:port shape of a node address.
func Valid(s string) bool {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 || i == len(s)-1 {
		return false
	}
	port, err := strconv.Atoi(s[i+1:])
	if err != nil {
		return false
	}
	return port > 0 && port <= 65535
}
