// Package sf provides a generic single-flight mechanism for deduplicating
// concurrent function calls with the same key.
//
// Single-flight ensures that only one execution of a function is in-flight
// for a given key at a time. If multiple goroutines call [Singleflight.Do]
// with the same key concurrently, only the first call executes the function;
// subsequent callers block until the first call completes and then receive
// the same result.
//
// This pattern is useful for:
//   - Preventing thundering herd problems on cache misses
//   - Deduplicating expensive operations like topology queries or API calls
//   - Reducing load on backend services during traffic spikes
//
// # Usage
//
//	flight := sf.New[[]NodeInfo]()
//
//	// Multiple concurrent calls with the same key will only execute once
//	nodes, err := flight.Do("nodes", func() ([]NodeInfo, error) {
//	    return exec.ListClusterNodes(ctx)
//	})
//
// The generic type parameter T allows type-safe returns without casting.
package sf
