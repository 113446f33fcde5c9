package app

import (
	"log/slog"
	"sync"

	"tableflip.dev/focus/pkg/task"
)

// EventType names a task board notification.
type EventType string

const (
	EventTasksUpdated EventType = "tasksUpdated"
	EventTasksCleared EventType = "tasksCleared"
)

// Event is delivered to listeners after a successful write. Bucket is the
// written day's board for EventTasksUpdated and nil for EventTasksCleared.
type Event struct {
	Type   EventType      `json:"type"`
	Date   string         `json:"date,omitempty"`
	Bucket task.DayBucket `json:"bucket,omitempty"`
}

// Listener observes task board events.
type Listener func(Event)

// ListenerID identifies a registered listener.
type ListenerID uint64

type listeners struct {
	mu    sync.Mutex
	next  ListenerID
	order []ListenerID
	fns   map[ListenerID]Listener
}

// AddListener registers fn and returns the handle that removes it. Listeners
// run synchronously in registration order.
func (s *Service) AddListener(fn Listener) ListenerID {
	l := &s.listeners
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[ListenerID]Listener)
	}
	l.next++
	id := l.next
	l.fns[id] = fn
	l.order = append(l.order, id)
	return id
}

// RemoveListener unregisters a listener. Unknown ids are ignored.
func (s *Service) RemoveListener(id ListenerID) {
	l := &s.listeners
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.fns[id]; !ok {
		return
	}
	delete(l.fns, id)
	for i, candidate := range l.order {
		if candidate == id {
			l.order = append(l.order[:i:i], l.order[i+1:]...)
			break
		}
	}
}

func (s *Service) emit(evt Event) {
	l := &s.listeners
	l.mu.Lock()
	fns := make([]Listener, 0, len(l.order))
	for _, id := range l.order {
		fns = append(fns, l.fns[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		s.deliver(fn, evt)
	}
}

// deliver isolates listener panics so one listener cannot block the rest.
func (s *Service) deliver(fn Listener, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger().Error("app: listener panicked", slog.String("event", string(evt.Type)), slog.Any("panic", r))
		}
	}()
	fn(evt)
}
