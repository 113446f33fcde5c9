package store

import (
	"context"
	"sort"
)

// Atomic is implemented by backends whose Set applies every key or none.
type Atomic interface {
	atomicSet()
}

func (*Memory) atomicSet() {}
func (*SQLite) atomicSet() {}

// SetOrdered writes values to s. Atomic backends get one Set. Every other
// backend gets one Set per key: the keys named in order first, in that order,
// then the remaining keys sorted. A failure stops the sequence, so keys
// earlier in order are the only ones that can land without the rest.
func SetOrdered(ctx context.Context, s Store, values map[string][]byte, order ...string) error {
	if _, ok := s.(Atomic); ok || len(values) < 2 {
		return s.Set(ctx, values)
	}
	for _, key := range writeOrder(values, order) {
		if err := s.Set(ctx, map[string][]byte{key: values[key]}); err != nil {
			return err
		}
	}
	return nil
}

func writeOrder(values map[string][]byte, order []string) []string {
	rank := make(map[string]int, len(order))
	for i, key := range order {
		if _, dup := rank[key]; !dup {
			rank[key] = i
		}
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, iok := rank[keys[i]]
		rj, jok := rank[keys[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}
