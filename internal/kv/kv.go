// Package kv is the local persistent key-value storage the state store
// mirrors its slices into. Backends are best-effort: callers must keep
// working in memory when a backend read or write fails.
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kv: key not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}
