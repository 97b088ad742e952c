package raw

import (
	"errors"
	"fmt"

	"github.com/codewandler/clstrkv-go/core/route"
	"github.com/codewandler/clstrkv-go/internal/nodeaddr"
)

// ErrDecode marks a reply whose shape matches no expected pattern for the
// command. Callers get it wrapped with detail.
var ErrDecode = errors.New("raw: cannot decode reply")

// Decode normalizes a wire reply for the given routing directive.
//
// Single-node routes pass through unchanged; the reply already represents one
// node's answer. For multi-node and implicit routes the transport sometimes
// delivers a structured value whose keys are really node addresses; such
// values are promoted to a node mapping, but only when every key satisfies
// the address predicate. A structured value with even one non-address key is
// a legitimate single-node-shaped payload and stays as it is.
func Decode(v Value, r route.Route) Value {
	if route.IsSingle(r) {
		return v
	}
	if v.kind != KindStructured || len(v.pairs) == 0 {
		return v
	}
	for _, p := range v.pairs {
		if !nodeaddr.Valid(p.Key) {
			return v
		}
	}
	nodes := make([]NodeEntry, len(v.pairs))
	for i, p := range v.pairs {
		nodes[i] = NodeEntry{Addr: p.Key, Value: p.Value}
	}
	return NodeMap(nodes...)
}

// FoldPairs folds a flat alternating key/value array into a structured value.
// Already-structured values pass through. Anything else, or an odd-length
// array, is a decode error.
func FoldPairs(v Value) (Value, error) {
	switch v.kind {
	case KindStructured:
		return v, nil
	case KindNil:
		return Structured(), nil
	case KindArray:
		if len(v.items)%2 != 0 {
			return Value{}, fmt.Errorf("%w: odd-length pair array (%d items)", ErrDecode, len(v.items))
		}
		pairs := make([]Pair, 0, len(v.items)/2)
		for i := 0; i+1 < len(v.items); i += 2 {
			key := v.items[i]
			if key.kind != KindText {
				return Value{}, fmt.Errorf("%w: pair key at %d is %s, want text", ErrDecode, i, key.kind)
			}
			pairs = append(pairs, Pair{Key: key.text, Value: v.items[i+1]})
		}
		return Structured(pairs...), nil
	default:
		return Value{}, fmt.Errorf("%w: %s reply where pairs expected", ErrDecode, v.kind)
	}
}
