package raw

import (
	"encoding/json"
	"fmt"
)

// valueFrame is the wire form of a Value. Kind is the discriminator; exactly
// one payload field is set. Must stay in sync with the adapters that ship
// values between processes.
type valueFrame struct {
	Kind  string      `json:"kind"`
	Text  *string     `json:"text,omitempty"`
	Int   *int64      `json:"int,omitempty"`
	Float *float64    `json:"float,omitempty"`
	Bool  *bool       `json:"bool,omitempty"`
	Items []Value     `json:"items,omitempty"`
	Pairs []pairFrame `json:"pairs,omitempty"`
	Nodes []nodeFrame `json:"nodes,omitempty"`
}

type pairFrame struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

type nodeFrame struct {
	Addr  string `json:"addr"`
	Value Value  `json:"value"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	f := valueFrame{Kind: v.kind.String()}
	switch v.kind {
	case KindNil:
	case KindText:
		f.Text = &v.text
	case KindInt:
		f.Int = &v.i
	case KindFloat:
		f.Float = &v.f
	case KindBool:
		f.Bool = &v.b
	case KindArray:
		f.Items = v.items
		if f.Items == nil {
			f.Items = []Value{}
		}
	case KindStructured:
		f.Pairs = make([]pairFrame, len(v.pairs))
		for i, p := range v.pairs {
			f.Pairs[i] = pairFrame{Key: p.Key, Value: p.Value}
		}
	case KindNodeMap:
		f.Nodes = make([]nodeFrame, len(v.nodes))
		for i, e := range v.nodes {
			f.Nodes[i] = nodeFrame{Addr: e.Addr, Value: e.Value}
		}
	default:
		return nil, fmt.Errorf("raw: marshal: unknown kind %d", v.kind)
	}
	return json.Marshal(f)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var f valueFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	switch f.Kind {
	case "nil", "":
		*v = Nil()
	case "text":
		if f.Text == nil {
			return fmt.Errorf("raw: unmarshal: text frame without text")
		}
		*v = Text(*f.Text)
	case "int":
		if f.Int == nil {
			return fmt.Errorf("raw: unmarshal: int frame without int")
		}
		*v = Int(*f.Int)
	case "float":
		if f.Float == nil {
			return fmt.Errorf("raw: unmarshal: float frame without float")
		}
		*v = Float(*f.Float)
	case "bool":
		if f.Bool == nil {
			return fmt.Errorf("raw: unmarshal: bool frame without bool")
		}
		*v = Bool(*f.Bool)
	case "array":
		*v = Array(f.Items...)
	case "structured":
		pairs := make([]Pair, len(f.Pairs))
		for i, p := range f.Pairs {
			pairs[i] = Pair{Key: p.Key, Value: p.Value}
		}
		*v = Structured(pairs...)
	case "nodemap":
		nodes := make([]NodeEntry, len(f.Nodes))
		for i, n := range f.Nodes {
			nodes[i] = NodeEntry{Addr: n.Addr, Value: n.Value}
		}
		*v = NodeMap(nodes...)
	default:
		return fmt.Errorf("raw: unmarshal: unknown kind %q", f.Kind)
	}
	return nil
}
