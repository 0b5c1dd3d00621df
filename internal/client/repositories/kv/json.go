package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetJSON loads key into v. It reports false, leaving v untouched, when the
// key is absent.
func GetJSON(ctx context.Context, r Repository, key string, v any) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode kv[%s]: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v under key as JSON.
func SetJSON(ctx context.Context, r Repository, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode kv[%s]: %w", key, err)
	}
	return r.Set(ctx, key, data)
}
