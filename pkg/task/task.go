// Package task defines the priority task board model: tasks, per-day priority
// buckets, and archive entries.
package task

import (
	"sort"
	"time"
)

// DefaultCategory is assigned to tasks created without a category.
const DefaultCategory = "General"

// Task is one actionable item on a day's board.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Category    string     `json:"category"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	CompletedAt *Timestamp `json:"completedAt,omitempty"`
	CreatedAt   Timestamp  `json:"createdAt"`
	Date        string     `json:"date"`
	CarriedFrom string     `json:"carriedFrom,omitempty"`
}

// New builds an incomplete task for the given day.
func New(id string, p Priority, text, category, date string, now time.Time) Task {
	if category == "" {
		category = DefaultCategory
	}
	return Task{
		ID:        id,
		Text:      text,
		Category:  category,
		Priority:  p,
		CreatedAt: NewTimestamp(now),
		Date:      date,
	}
}

// CompletionTime returns when the task was completed, or the zero time.
func (t Task) CompletionTime() time.Time {
	if t.CompletedAt == nil {
		return time.Time{}
	}
	return t.CompletedAt.Time
}

// CarryTo returns a copy of t placed on another day under a new identity. The
// copy records the day of the instance it was copied from.
func (t Task) CarryTo(id, date string) Task {
	c := t
	c.ID = id
	c.CarriedFrom = t.Date
	c.Date = date
	return c
}

// Patch is a shallow set of field updates. Nil fields are left untouched. A
// non-nil CompletedAt holding the zero time clears the completion time.
type Patch struct {
	Text        *string    `json:"text,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	CompletedAt *time.Time `json:"-"`
}

// Apply merges p into t and returns the result.
func (p Patch) Apply(t Task) Task {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.CompletedAt != nil {
		if p.CompletedAt.IsZero() {
			t.CompletedAt = nil
		} else {
			ts := NewTimestamp(*p.CompletedAt)
			t.CompletedAt = &ts
		}
	}
	return t
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Text == nil && p.Category == nil && p.Completed == nil && p.CompletedAt == nil
}

// DayBucket holds one calendar day's tasks keyed by priority.
type DayBucket map[Priority][]Task

// NewDayBucket returns a bucket with every priority present and empty.
func NewDayBucket() DayBucket {
	b := make(DayBucket, len(Priorities()))
	for _, p := range Priorities() {
		b[p] = []Task{}
	}
	return b
}

// Normalize makes sure every priority key is present with a non-nil list.
func (b DayBucket) Normalize() DayBucket {
	if b == nil {
		return NewDayBucket()
	}
	for _, p := range Priorities() {
		if b[p] == nil {
			b[p] = []Task{}
		}
	}
	return b
}

// Clone deep-copies the bucket lists.
func (b DayBucket) Clone() DayBucket {
	out := make(DayBucket, len(b))
	for p, tasks := range b {
		cp := make([]Task, len(tasks))
		copy(cp, tasks)
		out[p] = cp
	}
	return out.Normalize()
}

// Find locates a task by id, scanning buckets in board order.
func (b DayBucket) Find(id string) (Priority, int, bool) {
	for _, p := range b.Keys() {
		for i, t := range b[p] {
			if t.ID == id {
				return p, i, true
			}
		}
	}
	return "", -1, false
}

// HasText reports whether the priority list already holds a task with text.
func (b DayBucket) HasText(p Priority, text string) bool {
	for _, t := range b[p] {
		if t.Text == text {
			return true
		}
	}
	return false
}

// Completed returns all completed tasks in board order.
func (b DayBucket) Completed() []Task {
	var out []Task
	for _, p := range b.Keys() {
		for _, t := range b[p] {
			if t.Completed {
				out = append(out, t)
			}
		}
	}
	return out
}

// Incomplete returns all open tasks in board order.
func (b DayBucket) Incomplete() []Task {
	var out []Task
	for _, p := range b.Keys() {
		for _, t := range b[p] {
			if !t.Completed {
				out = append(out, t)
			}
		}
	}
	return out
}

// RemoveCompleted drops every completed task and returns how many were removed.
func (b DayBucket) RemoveCompleted() int {
	removed := 0
	for p, tasks := range b {
		kept := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Completed {
				removed++
				continue
			}
			kept = append(kept, t)
		}
		b[p] = kept
	}
	return removed
}

// Len counts all tasks in the bucket.
func (b DayBucket) Len() int {
	n := 0
	for _, tasks := range b {
		n += len(tasks)
	}
	return n
}

// Keys returns the known priorities first, then any unknown keys read
// from storage, so nothing stored is skipped.
func (b DayBucket) Keys() []Priority {
	out := Priorities()
	var extra []Priority
	for p := range b {
		if !p.Valid() {
			extra = append(extra, p)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// DailyTasks maps day keys to buckets.
type DailyTasks map[string]DayBucket

// Dates returns the day keys in ascending order.
func (d DailyTasks) Dates() []string {
	dates := make([]string, 0, len(d))
	for date := range d {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// ArchiveEntry records the completed tasks moved out of a day.
type ArchiveEntry struct {
	Date       string    `json:"date"`
	Tasks      []Task    `json:"tasks"`
	ArchivedAt Timestamp `json:"archivedAt"`
}

// SortByCompletionDesc orders tasks most recently completed first.
func SortByCompletionDesc(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CompletionTime().After(tasks[j].CompletionTime())
	})
}
