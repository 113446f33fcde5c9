package store

import (
	"context"
	"sync"
)

// Memory is an in-process Store. It backs tests and the "memory" backend.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
	events broadcaster
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := m.data[k]; ok {
			out[k] = clone(v)
		}
	}
	return out, nil
}

func (m *Memory) Set(ctx context.Context, values map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	changes := make([]Change, 0, len(values))
	for _, k := range sortedKeys(values) {
		v := clone(values[k])
		changes = append(changes, Change{Key: k, Old: m.data[k], New: v})
		m.data[k] = v
	}
	m.mu.Unlock()
	m.events.publish(changes...)
	return nil
}

func (m *Memory) Remove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	changes := make([]Change, 0, len(keys))
	for _, k := range keys {
		old, ok := m.data[k]
		if !ok {
			continue
		}
		delete(m.data, k)
		changes = append(changes, Change{Key: k, Old: old})
	}
	m.mu.Unlock()
	m.events.publish(changes...)
	return nil
}

func (m *Memory) Watch(ctx context.Context) (<-chan Change, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	return m.events.subscribe(ctx), nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.events.closeAll()
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
