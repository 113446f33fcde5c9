package store

import (
	"context"
	"testing"
	"time"
)

func drained(t *testing.T, ch <-chan Change) {
	t.Helper()
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("expected closed channel, got a change")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("channel was not closed")
	}
}

func TestBroadcasterCloseEndsLiveSubscriptions(t *testing.T) {
	var b broadcaster
	ch := b.subscribe(context.Background())
	if n := b.subscribers(); n != 1 {
		t.Fatalf("expected 1 subscriber, got %d", n)
	}

	b.closeAll()
	drained(t, ch)
	if n := b.subscribers(); n != 0 {
		t.Fatalf("expected no subscribers after close, got %d", n)
	}
}

func TestBroadcasterSubscribeAfterClose(t *testing.T) {
	var b broadcaster
	b.closeAll()
	drained(t, b.subscribe(context.Background()))
	if n := b.subscribers(); n != 0 {
		t.Fatalf("closed broadcaster must not keep subscribers, got %d", n)
	}
}

func TestBroadcasterCancelUnsubscribes(t *testing.T) {
	var b broadcaster
	ctx, cancel := context.WithCancel(context.Background())
	ch := b.subscribe(ctx)
	other := b.subscribe(context.Background())

	cancel()
	drained(t, ch)

	b.publish(Change{Key: "k", New: []byte("v")})
	select {
	case c := <-other:
		if c.Key != "k" {
			t.Fatalf("unexpected change %+v", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("remaining subscriber missed the change")
	}
	if n := b.subscribers(); n != 1 {
		t.Fatalf("expected 1 subscriber, got %d", n)
	}

	// Closing after a cancel must not close the cancelled channel twice.
	b.closeAll()
	drained(t, other)
}

func TestMemoryCloseEndsWatch(t *testing.T) {
	m := NewMemory()
	ch, err := m.Watch(context.Background())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	drained(t, ch)
}
