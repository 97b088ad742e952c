package clusterval

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingle(t *testing.T) {
	v := Single(42)
	require.True(t, v.IsSingle())
	require.False(t, v.IsMulti())

	got, err := v.SingleValue()
	require.NoError(t, err)
	require.Equal(t, 42, got)

	_, err = v.MultiValue()
	require.ErrorIs(t, err, ErrNoMultiValue)
}

func TestMulti(t *testing.T) {
	v := Multi(map[string]string{"127.0.0.1:7000": "a", "127.0.0.1:7001": "b"})
	require.True(t, v.IsMulti())
	require.False(t, v.IsSingle())

	m, err := v.MultiValue()
	require.NoError(t, err)
	require.Len(t, m, 2)

	_, err = v.SingleValue()
	require.ErrorIs(t, err, ErrNoSingleValue)
}

func TestMap(t *testing.T) {
	s := Map(Single(7), strconv.Itoa)
	got, err := s.SingleValue()
	require.NoError(t, err)
	require.Equal(t, "7", got)

	m := Map(Multi(map[string]int{"n:1": 1, "n:2": 2}), strconv.Itoa)
	mm, err := m.MultiValue()
	require.NoError(t, err)
	require.Equal(t, map[string]string{"n:1": "1", "n:2": "2"}, mm)
}

func TestMapErr(t *testing.T) {
	fail := errors.New("nope")
	_, err := MapErr(Single("x"), func(string) (int, error) { return 0, fail })
	require.ErrorIs(t, err, fail)

	v, err := MapErr(Multi(map[string]string{"n:1": "3"}), strconv.Atoi)
	require.NoError(t, err)
	m, err := v.MultiValue()
	require.NoError(t, err)
	require.Equal(t, map[string]int{"n:1": 3}, m)

	_, err = MapErr(Multi(map[string]string{"n:1": "x"}), strconv.Atoi)
	require.Error(t, err)
}
