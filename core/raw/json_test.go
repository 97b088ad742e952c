package raw

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSON_RoundTrip(t *testing.T) {
	// One nested value exercising every variant.
	in := NodeMap(
		NodeEntry{Addr: "127.0.0.1:7000", Value: Structured(
			Pair{Key: "status", Value: Text("OK")},
			Pair{Key: "count", Value: Int(3)},
			Pair{Key: "ratio", Value: Float(0.5)},
			Pair{Key: "ok", Value: Bool(true)},
			Pair{Key: "items", Value: Array(Int(1), Nil())},
		)},
		NodeEntry{Addr: "127.0.0.1:7001", Value: Nil()},
	)

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Value
	require.NoError(t, json.Unmarshal(data, &out))
	require.True(t, Equal(in, out), "got %s", out)
}

func TestJSON_KindDiscriminator(t *testing.T) {
	data, err := json.Marshal(Text("PONG"))
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"text","text":"PONG"}`, string(data))

	data, err = json.Marshal(Nil())
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"nil"}`, string(data))
}

func TestJSON_UnmarshalErrors(t *testing.T) {
	var v Value
	require.Error(t, v.UnmarshalJSON([]byte(`{"kind":"wat"}`)))
	require.Error(t, v.UnmarshalJSON([]byte(`{"kind":"text"}`)))
	require.Error(t, v.UnmarshalJSON([]byte(`not json`)))

	// Empty object defaults to the nil value.
	require.NoError(t, v.UnmarshalJSON([]byte(`{}`)))
	require.True(t, v.IsNil())
}
