// Package kv defines the per-node key-value store port backing the in-memory
// cluster. Implementations must be safe for concurrent use.
package kv

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
)

type Store interface {
	Put(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	// Len reports the number of stored keys.
	Len(ctx context.Context) (int, error)
	// Clear removes every stored key.
	Clear(ctx context.Context) error
}
