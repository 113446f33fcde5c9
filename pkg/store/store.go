// Package store provides the persistent key-value layer: whole values replaced
// per key, with push-style change notifications.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Store is an asynchronous key-value store. Values are opaque JSON documents
// replaced wholesale on every Set; there are no field-level writes.
type Store interface {
	// Get returns the values for the requested keys. Missing keys are absent
	// from the result.
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)
	// Set replaces the value of every key in values.
	Set(ctx context.Context, values map[string][]byte) error
	// Remove deletes keys. Removing a missing key is not an error.
	Remove(ctx context.Context, keys ...string) error
	// Watch streams change notifications until ctx is cancelled. Callers should
	// drain the returned channel; slow consumers may miss notifications.
	Watch(ctx context.Context) (<-chan Change, error)
	// Close releases backend resources.
	Close() error
}

// Change is emitted by Store.Watch when a key is written or removed. Old is
// best-effort and may be nil even for an overwrite. New is nil on removal.
type Change struct {
	Key string
	Old []byte
	New []byte
}

// Removed reports whether the change deleted the key.
func (c Change) Removed() bool {
	return c.New == nil
}

var (
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store: closed")
	// ErrUnknownBackend is returned by Open for unsupported backend names.
	ErrUnknownBackend = errors.New("store: unknown backend")
)

func sortedKeys(values map[string][]byte) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// broadcaster fans change notifications out to watchers of in-process
// backends.
type broadcaster struct {
	mu     sync.Mutex
	next   int
	subs   map[int]*subscriber
	closed bool
}

type subscriber struct {
	ch   chan Change
	done chan struct{}
}

// subscribe returns a channel that is closed when ctx is done or the
// broadcaster is closed, whichever comes first.
func (b *broadcaster) subscribe(ctx context.Context) <-chan Change {
	sub := &subscriber{ch: make(chan Change, 64), done: make(chan struct{})}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch
	}
	if b.subs == nil {
		b.subs = make(map[int]*subscriber)
	}
	id := b.next
	b.next++
	b.subs[id] = sub
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			b.unsubscribe(id)
		case <-sub.done:
		}
	}()
	return sub.ch
}

func (b *broadcaster) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
		close(sub.done)
	}
}

func (b *broadcaster) publish(changes ...Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		for _, c := range changes {
			select {
			case sub.ch <- c:
			default:
				// Drop rather than block the writer; watchers re-read on the
				// next notification anyway.
			}
		}
	}
}

// subscribers reports the number of live subscriptions.
func (b *broadcaster) subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *broadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
		close(sub.done)
	}
}
