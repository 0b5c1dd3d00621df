package kv

import "context"

// Repository is a string-keyed byte store.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// Store is a Repository that can apply a group of operations atomically.
// The Repository passed to fn is only valid inside fn.
type Store interface {
	Repository
	Update(ctx context.Context, fn func(ctx context.Context, r Repository) error) error
}
