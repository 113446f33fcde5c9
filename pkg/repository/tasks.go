// Package repository maps the task board onto store keys and serializes
// read-modify-write cycles over them.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

// Store keys owned by the task board.
const (
	KeyDailyTasks        = "dailyTasks"
	KeyTaskArchive       = "taskArchive"
	KeyLastCarryOverDate = "lastCarryOverDate"
	KeyLastArchiveDate   = "lastArchiveDate"
)

// TaskKeys lists every key the task board writes.
var TaskKeys = []string{KeyDailyTasks, KeyTaskArchive, KeyLastCarryOverDate, KeyLastArchiveDate}

// writeOrder is the key order for backends that cannot write several keys
// atomically. The append-only archive lands before the board so a failed
// board write leaves archived tasks live (archived twice at worst) instead of
// dropping them. Markers go last so a failed write leaves the work to be
// redone.
var writeOrder = []string{KeyTaskArchive, KeyDailyTasks, KeyLastCarryOverDate, KeyLastArchiveDate}

var errUnknownKey = errors.New("repository: key not part of unit of work")

// TaskRepository reads and writes the task board keys.
type TaskRepository struct {
	store store.Store
	locks *KeyLocks
}

// NewTaskRepository wraps s. Repositories that share locks serialize against
// each other; a nil locks gets a private set.
func NewTaskRepository(s store.Store, locks *KeyLocks) *TaskRepository {
	if locks == nil {
		locks = &KeyLocks{}
	}
	return &TaskRepository{store: s, locks: locks}
}

// Snapshot is the decoded state of a set of task board keys.
type Snapshot struct {
	Days          task.DailyTasks
	Archive       []task.ArchiveEntry
	LastCarryOver string
	LastArchive   string

	keys  map[string]bool
	dirty map[string]bool
}

// Day returns the bucket for date, creating an empty one in the snapshot when
// absent.
func (s *Snapshot) Day(date string) task.DayBucket {
	b, ok := s.Days[date]
	if !ok {
		b = task.NewDayBucket()
		s.Days[date] = b
	}
	return b
}

// TouchDays marks dailyTasks for writing.
func (s *Snapshot) TouchDays() {
	s.touch(KeyDailyTasks)
}

// AppendArchive adds an entry to the archive log.
func (s *Snapshot) AppendArchive(e task.ArchiveEntry) {
	s.Archive = append(s.Archive, e)
	s.touch(KeyTaskArchive)
}

// SetLastCarryOver records the carry-over marker.
func (s *Snapshot) SetLastCarryOver(date string) {
	s.LastCarryOver = date
	s.touch(KeyLastCarryOverDate)
}

// SetLastArchive records the archive marker.
func (s *Snapshot) SetLastArchive(date string) {
	s.LastArchive = date
	s.touch(KeyLastArchiveDate)
}

func (s *Snapshot) touch(key string) {
	if s.dirty == nil {
		s.dirty = make(map[string]bool)
	}
	s.dirty[key] = true
}

// Dirty reports whether any key was marked for writing.
func (s *Snapshot) Dirty() bool {
	return len(s.dirty) > 0
}

// Load reads the requested keys. Missing keys decode to empty values.
func (r *TaskRepository) Load(ctx context.Context, keys ...string) (*Snapshot, error) {
	if len(keys) == 0 {
		keys = TaskKeys
	}
	raw, err := r.store.Get(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("repository: read: %w", err)
	}
	snap := &Snapshot{
		Days: task.DailyTasks{},
		keys: make(map[string]bool, len(keys)),
	}
	for _, k := range keys {
		snap.keys[k] = true
	}
	if err := decode(KeyDailyTasks, raw[KeyDailyTasks], &snap.Days); err != nil {
		return nil, err
	}
	if snap.Days == nil {
		snap.Days = task.DailyTasks{}
	}
	for date, b := range snap.Days {
		snap.Days[date] = b.Normalize()
	}
	if err := decode(KeyTaskArchive, raw[KeyTaskArchive], &snap.Archive); err != nil {
		return nil, err
	}
	if err := decode(KeyLastCarryOverDate, raw[KeyLastCarryOverDate], &snap.LastCarryOver); err != nil {
		return nil, err
	}
	if err := decode(KeyLastArchiveDate, raw[KeyLastArchiveDate], &snap.LastArchive); err != nil {
		return nil, err
	}
	return snap, nil
}

// Days returns every stored day.
func (r *TaskRepository) Days(ctx context.Context) (task.DailyTasks, error) {
	snap, err := r.Load(ctx, KeyDailyTasks)
	if err != nil {
		return nil, err
	}
	return snap.Days, nil
}

// Day returns the bucket for date, or an empty bucket when none is stored.
func (r *TaskRepository) Day(ctx context.Context, date string) (task.DayBucket, error) {
	days, err := r.Days(ctx)
	if err != nil {
		return nil, err
	}
	if b, ok := days[date]; ok {
		return b, nil
	}
	return task.NewDayBucket(), nil
}

// Archive returns the archive log in append order.
func (r *TaskRepository) Archive(ctx context.Context) ([]task.ArchiveEntry, error) {
	snap, err := r.Load(ctx, KeyTaskArchive)
	if err != nil {
		return nil, err
	}
	return snap.Archive, nil
}

// Update runs fn over a snapshot of keys while holding their locks, then
// writes back the keys fn marked dirty, atomically where the backend allows
// and in writeOrder otherwise. When fn returns an error or marks nothing,
// nothing is written.
func (r *TaskRepository) Update(ctx context.Context, keys []string, fn func(*Snapshot) error) error {
	unlock, err := r.locks.Lock(ctx, keys...)
	if err != nil {
		return err
	}
	defer unlock()

	snap, err := r.Load(ctx, keys...)
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	if !snap.Dirty() {
		return nil
	}
	values, err := snap.encode()
	if err != nil {
		return err
	}
	if err := store.SetOrdered(ctx, r.store, values, writeOrder...); err != nil {
		return fmt.Errorf("repository: write: %w", err)
	}
	return nil
}

// Clear removes every task board key.
func (r *TaskRepository) Clear(ctx context.Context) error {
	unlock, err := r.locks.Lock(ctx, TaskKeys...)
	if err != nil {
		return err
	}
	defer unlock()
	if err := r.store.Remove(ctx, TaskKeys...); err != nil {
		return fmt.Errorf("repository: remove: %w", err)
	}
	return nil
}

func (s *Snapshot) encode() (map[string][]byte, error) {
	values := make(map[string][]byte, len(s.dirty))
	for key := range s.dirty {
		if !s.keys[key] {
			return nil, fmt.Errorf("%w: %s", errUnknownKey, key)
		}
		var v any
		switch key {
		case KeyDailyTasks:
			for date, b := range s.Days {
				s.Days[date] = b.Normalize()
			}
			v = s.Days
		case KeyTaskArchive:
			if s.Archive == nil {
				s.Archive = []task.ArchiveEntry{}
			}
			v = s.Archive
		case KeyLastCarryOverDate:
			v = s.LastCarryOver
		case KeyLastArchiveDate:
			v = s.LastArchive
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("repository: encode %s: %w", key, err)
		}
		values[key] = raw
	}
	return values, nil
}
