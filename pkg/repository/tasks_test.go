package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

func TestLoadNormalizesDays(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, map[string][]byte{
		KeyDailyTasks:        []byte(`{"2024-03-10":{"urgent-important":[{"id":"a","text":"x","priority":"urgent-important","date":"2024-03-10","createdAt":1710028800000}]}}`),
		KeyLastCarryOverDate: []byte(`"2024-03-10"`),
	}))

	r := NewTaskRepository(s, nil)
	snap, err := r.Load(ctx)
	require.NoError(t, err)

	day := snap.Days["2024-03-10"]
	require.Len(t, day, 3)
	assert.Len(t, day[task.UrgentImportant], 1)
	assert.NotNil(t, day[task.ManagementItems])
	assert.Equal(t, "2024-03-10", snap.LastCarryOver)
	assert.Empty(t, snap.LastArchive)
	assert.Empty(t, snap.Archive)
}

func TestDayMissingReturnsEmptyBucket(t *testing.T) {
	r := NewTaskRepository(store.NewMemory(), nil)
	b, err := r.Day(context.Background(), "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
	assert.Len(t, b, 3)
}

func TestUpdateWritesOnlyDirtyKeys(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	r := NewTaskRepository(s, nil)

	err := r.Update(ctx, TaskKeys, func(snap *Snapshot) error {
		b := snap.Day("2024-03-10")
		b[task.ManagementItems] = append(b[task.ManagementItems], task.New("a", task.ManagementItems, "email", "", "2024-03-10", time.Now()))
		snap.TouchDays()
		snap.SetLastCarryOver("2024-03-10")
		return nil
	})
	require.NoError(t, err)

	raw, err := s.Get(ctx, TaskKeys...)
	require.NoError(t, err)
	assert.Contains(t, raw, KeyDailyTasks)
	assert.Contains(t, raw, KeyLastCarryOverDate)
	assert.NotContains(t, raw, KeyTaskArchive)
	assert.NotContains(t, raw, KeyLastArchiveDate)
}

func TestUpdateErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	r := NewTaskRepository(s, nil)
	boom := errors.New("boom")

	err := r.Update(ctx, TaskKeys, func(snap *Snapshot) error {
		snap.SetLastArchive("2024-03-09")
		return boom
	})
	require.ErrorIs(t, err, boom)

	raw, err := s.Get(ctx, KeyLastArchiveDate)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestUpdateRejectsUndeclaredKey(t *testing.T) {
	r := NewTaskRepository(store.NewMemory(), nil)
	err := r.Update(context.Background(), []string{KeyDailyTasks}, func(snap *Snapshot) error {
		snap.SetLastArchive("2024-03-09")
		return nil
	})
	require.ErrorIs(t, err, errUnknownKey)
}

func TestUpdateSerializesWriters(t *testing.T) {
	ctx := context.Background()
	r := NewTaskRepository(store.NewMemory(), nil)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := r.Update(ctx, []string{KeyTaskArchive}, func(snap *Snapshot) error {
				snap.AppendArchive(task.ArchiveEntry{Date: "2024-03-10"})
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	archive, err := r.Archive(ctx)
	require.NoError(t, err)
	assert.Len(t, archive, writers)
}

func TestUpdateHonoursCancellation(t *testing.T) {
	locks := &KeyLocks{}
	unlock, err := locks.Lock(context.Background(), KeyDailyTasks)
	require.NoError(t, err)
	defer unlock()

	r := NewTaskRepository(store.NewMemory(), locks)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = r.Update(ctx, []string{KeyDailyTasks}, func(*Snapshot) error { return nil })
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClearRemovesTaskKeys(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, map[string][]byte{
		KeyDailyTasks:  []byte(`{}`),
		KeyTaskArchive: []byte(`[]`),
		"scratchpad":   []byte(`"keep"`),
	}))
	r := NewTaskRepository(s, nil)
	require.NoError(t, r.Clear(ctx))

	raw, err := s.Get(ctx, append(TaskKeys, "scratchpad")...)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"scratchpad": []byte(`"keep"`)}, raw)
}

func TestLoadMalformedJSON(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, s.Set(ctx, map[string][]byte{KeyTaskArchive: []byte(`{not json`)}))
	_, err := NewTaskRepository(s, nil).Archive(ctx)
	require.Error(t, err)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	var v string
	ok, err := GetJSON(ctx, s, "scratchpad", &v)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, PutJSON(ctx, s, "scratchpad", "notes"))
	ok, err = GetJSON(ctx, s, "scratchpad", &v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "notes", v)
}
