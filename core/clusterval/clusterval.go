package clusterval

import "errors"

var (
	// ErrNoSingleValue is returned when SingleValue is called on a multi value.
	ErrNoSingleValue = errors.New("clusterval: no single value stored")
	// ErrNoMultiValue is returned when MultiValue is called on a single value.
	ErrNoMultiValue = errors.New("clusterval: no multi value stored")
)

// Value is the tagged union handed to callers after reconciliation: either
// one logical value or a per-node mapping keyed by node address. Exactly one
// variant is populated. Instances are built once through [Single] or [Multi]
// and never mutated.
type Value[T any] struct {
	single  T
	multi   map[string]T
	isMulti bool
}

// Single wraps one logical value.
func Single[T any](v T) Value[T] {
	return Value[T]{single: v}
}

// Multi wraps a per-node mapping. This is the explicit no-collapse
// construction path: it never consults the collapse decider.
func Multi[T any](m map[string]T) Value[T] {
	return Value[T]{multi: m, isMulti: true}
}

// IsSingle reports whether one logical value is stored.
func (v Value[T]) IsSingle() bool { return !v.isMulti }

// IsMulti reports whether a per-node mapping is stored.
func (v Value[T]) IsMulti() bool { return v.isMulti }

// SingleValue returns the stored logical value, or ErrNoSingleValue if the
// value is a per-node mapping.
func (v Value[T]) SingleValue() (T, error) {
	if v.isMulti {
		var zero T
		return zero, ErrNoSingleValue
	}
	return v.single, nil
}

// MultiValue returns the stored per-node mapping, or ErrNoMultiValue if one
// logical value is stored.
func (v Value[T]) MultiValue() (map[string]T, error) {
	if !v.isMulti {
		return nil, ErrNoMultiValue
	}
	return v.multi, nil
}

// Map converts a Value[T] into a Value[U], applying f to the single value or
// to every node entry.
func Map[T, U any](v Value[T], f func(T) U) Value[U] {
	if !v.isMulti {
		return Single(f(v.single))
	}
	out := make(map[string]U, len(v.multi))
	for addr, t := range v.multi {
		out[addr] = f(t)
	}
	return Multi(out)
}

// MapErr is Map with a fallible conversion; the first failure aborts.
func MapErr[T, U any](v Value[T], f func(T) (U, error)) (Value[U], error) {
	if !v.isMulti {
		u, err := f(v.single)
		if err != nil {
			return Value[U]{}, err
		}
		return Single(u), nil
	}
	out := make(map[string]U, len(v.multi))
	for addr, t := range v.multi {
		u, err := f(t)
		if err != nil {
			return Value[U]{}, err
		}
		out[addr] = u
	}
	return Multi(out), nil
}
