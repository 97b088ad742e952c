package sf

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDo_DeduplicatesConcurrentCalls(t *testing.T) {
	s := New[int]()

	var calls atomic.Int32
	gate := make(chan struct{})

	const n = 16
	var wg, entered sync.WaitGroup
	results := make([]int, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		entered.Add(1)
		go func() {
			defer wg.Done()
			entered.Done()
			results[i], errs[i] = s.Do("k", func() (int, error) {
				calls.Add(1)
				<-gate
				return 42, nil
			})
		}()
	}

	entered.Wait()
	close(gate)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	// Callers blocked on the gate share one flight. A straggler that enters
	// after the flight completed may start a second one, so the bound is
	// "far fewer than n", not exactly one.
	require.Less(t, calls.Load(), int32(n))
	for _, v := range results {
		require.Equal(t, 42, v)
	}
}

func TestDo_Error(t *testing.T) {
	s := New[string]()
	fail := errors.New("boom")

	v, err := s.Do("k", func() (string, error) { return "", fail })
	require.ErrorIs(t, err, fail)
	require.Zero(t, v)
}
