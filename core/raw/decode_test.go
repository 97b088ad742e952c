package raw

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/clstrkv-go/core/route"
)

func addrKeyed() Value {
	return Structured(
		Pair{Key: "127.0.0.1:7000", Value: Text("PONG")},
		Pair{Key: "127.0.0.1:7001", Value: Text("PONG")},
	)
}

func TestDecode_PromotesAddressKeyedReplies(t *testing.T) {
	v := Decode(addrKeyed(), route.AllNodes{})
	require.Equal(t, KindNodeMap, v.Kind())
	require.Len(t, v.Nodes(), 2)
	got, ok := v.NodeLookup("127.0.0.1:7001")
	require.True(t, ok)
	require.Equal(t, "PONG", got.Text())

	// Implicit routes promote too; the transport may have fanned out.
	v = Decode(addrKeyed(), nil)
	require.Equal(t, KindNodeMap, v.Kind())
}

func TestDecode_SingleRoutePassesThrough(t *testing.T) {
	// Even an address-keyed shape stays untouched under a single route: one
	// node answered, the structure is payload.
	v := Decode(addrKeyed(), route.Random{})
	require.Equal(t, KindStructured, v.Kind())

	v = Decode(Text("PONG"), route.ByAddress{Host: "127.0.0.1", Port: 7000})
	require.Equal(t, "PONG", v.Text())
}

func TestDecode_MixedKeysStayStructured(t *testing.T) {
	v := Decode(Structured(
		Pair{Key: "127.0.0.1:7000", Value: Text("x")},
		Pair{Key: "maxmemory", Value: Text("0")},
	), route.AllNodes{})
	require.Equal(t, KindStructured, v.Kind())
}

func TestDecode_EmptyAndScalars(t *testing.T) {
	require.Equal(t, KindStructured, Decode(Structured(), route.AllNodes{}).Kind())
	require.Equal(t, KindText, Decode(Text("x"), route.AllNodes{}).Kind())
	require.True(t, Decode(Nil(), nil).IsNil())
}

func TestFoldPairs(t *testing.T) {
	v, err := FoldPairs(Array(Text("maxmemory"), Text("100mb"), Text("appendonly"), Text("no")))
	require.NoError(t, err)
	require.Equal(t, KindStructured, v.Kind())
	got, ok := v.Lookup("maxmemory")
	require.True(t, ok)
	require.Equal(t, "100mb", got.Text())

	// Already structured passes through.
	s := Structured(Pair{Key: "a", Value: Text("b")})
	v, err = FoldPairs(s)
	require.NoError(t, err)
	require.True(t, Equal(s, v))

	// Nil folds to the empty structure.
	v, err = FoldPairs(Nil())
	require.NoError(t, err)
	require.Equal(t, KindStructured, v.Kind())
	require.Empty(t, v.Pairs())
}

func TestFoldPairs_Errors(t *testing.T) {
	_, err := FoldPairs(Array(Text("odd")))
	require.ErrorIs(t, err, ErrDecode)

	_, err = FoldPairs(Array(Int(1), Text("v")))
	require.ErrorIs(t, err, ErrDecode)

	_, err = FoldPairs(Text("not pairs"))
	require.ErrorIs(t, err, ErrDecode)
}
