package raw

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindText
	KindInt
	KindFloat
	KindBool
	KindArray
	KindStructured
	KindNodeMap
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindStructured:
		return "structured"
	case KindNodeMap:
		return "nodemap"
	default:
		return "unknown"
	}
}

// Pair is one ordered key/value entry of a structured reply.
type Pair struct {
	Key   string
	Value Value
}

// NodeEntry is one per-node entry of a node mapping. Addr is the node address
// at response time; topology may have shifted since the request was routed.
type NodeEntry struct {
	Addr  string
	Value Value
}

// Value is the canonical decoded wire reply: a scalar (text, number, boolean),
// an ordered collection, an ordered key/value structure, or an address-keyed
// node mapping. The zero Value is the nil reply.
type Value struct {
	kind  Kind
	text  string
	i     int64
	f     float64
	b     bool
	items []Value
	pairs []Pair
	nodes []NodeEntry
}

func Nil() Value            { return Value{} }
func Text(s string) Value   { return Value{kind: KindText, text: s} }
func Int(i int64) Value     { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value     { return Value{kind: KindBool, b: b} }

func Array(items ...Value) Value { return Value{kind: KindArray, items: items} }

func Structured(pairs ...Pair) Value { return Value{kind: KindStructured, pairs: pairs} }

func NodeMap(entries ...NodeEntry) Value { return Value{kind: KindNodeMap, nodes: entries} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNil() bool  { return v.kind == KindNil }
func (v Value) Bool() bool   { return v.b }
func (v Value) Int() int64   { return v.i }
func (v Value) Float() float64 {
	return v.f
}

// Text returns the text payload. Zero for non-text values.
func (v Value) Text() string { return v.text }

func (v Value) Items() []Value     { return v.items }
func (v Value) Pairs() []Pair      { return v.pairs }
func (v Value) Nodes() []NodeEntry { return v.nodes }

// Lookup finds a key in a structured value.
func (v Value) Lookup(key string) (Value, bool) {
	for _, p := range v.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// NodeLookup finds a node address in a node mapping.
func (v Value) NodeLookup(addr string) (Value, bool) {
	for _, e := range v.nodes {
		if e.Addr == addr {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Float64 coerces the value to a float64: numbers directly, text via parsing.
// Booleans and everything else do not coerce.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal reports structural equality. Numeric-looking text is NOT normalized;
// Int(1) and Text("1") are not equal here.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindText:
		return a.text == b.text
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindBool:
		return a.b == b.b
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindStructured:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for i := range a.pairs {
			if a.pairs[i].Key != b.pairs[i].Key || !Equal(a.pairs[i].Value, b.pairs[i].Value) {
				return false
			}
		}
		return true
	case KindNodeMap:
		if len(a.nodes) != len(b.nodes) {
			return false
		}
		for i := range a.nodes {
			if a.nodes[i].Addr != b.nodes[i].Addr || !Equal(a.nodes[i].Value, b.nodes[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value for logs and text-shaped reducers.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return ""
	case KindText:
		return v.text
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindArray:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case KindStructured:
		parts := make([]string, len(v.pairs))
		for i, p := range v.pairs {
			parts[i] = p.Key + "=" + p.Value.String()
		}
		return "{" + strings.Join(parts, " ") + "}"
	case KindNodeMap:
		parts := make([]string, len(v.nodes))
		for i, e := range v.nodes {
			parts[i] = e.Addr + "=>" + e.Value.String()
		}
		return "{" + strings.Join(parts, " ") + "}"
	}
	return fmt.Sprintf("raw.Value(kind=%d)", v.kind)
}
