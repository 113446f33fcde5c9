package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"tableflip.dev/focus/pkg/store"
)

// GetJSON decodes the value stored under key into v. It reports false when the
// key is missing, leaving v untouched.
func GetJSON(ctx context.Context, s store.Store, key string, v any) (bool, error) {
	values, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("repository: read %s: %w", key, err)
	}
	raw, ok := values[key]
	if !ok {
		return false, nil
	}
	if err := decode(key, raw, v); err != nil {
		return false, err
	}
	return true, nil
}

// PutJSON encodes v and stores it under key.
func PutJSON(ctx context.Context, s store.Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("repository: encode %s: %w", key, err)
	}
	if err := s.Set(ctx, map[string][]byte{key: raw}); err != nil {
		return fmt.Errorf("repository: write %s: %w", key, err)
	}
	return nil
}

func decode(key string, raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("repository: decode %s: %w", key, err)
	}
	return nil
}
