package repository

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"
)

// KeyLocks serializes read-modify-write cycles per store key within the
// process. Each key is guarded by a weighted semaphore of size one so waiting
// honours context cancellation.
type KeyLocks struct {
	mu    sync.Mutex
	locks map[string]*semaphore.Weighted
}

func (l *KeyLocks) get(key string) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[string]*semaphore.Weighted)
	}
	sem, ok := l.locks[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.locks[key] = sem
	}
	return sem
}

// Lock acquires every key in sorted order and returns the release func.
// Duplicate keys are acquired once.
func (l *KeyLocks) Lock(ctx context.Context, keys ...string) (func(), error) {
	sorted := uniqueSorted(keys)
	held := make([]*semaphore.Weighted, 0, len(sorted))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Release(1)
		}
	}
	for _, k := range sorted {
		sem := l.get(k)
		if err := sem.Acquire(ctx, 1); err != nil {
			release()
			return nil, err
		}
		held = append(held, sem)
	}
	return release, nil
}

func uniqueSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
