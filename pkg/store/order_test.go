package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// sequentialStore records each Set and fails the write of one key.
type sequentialStore struct {
	*Diskv
	calls  [][]string
	failOn string
}

var errWrite = errors.New("write failed")

func (s *sequentialStore) Set(ctx context.Context, values map[string][]byte) error {
	keys := sortedKeys(values)
	s.calls = append(s.calls, keys)
	if _, ok := values[s.failOn]; ok {
		return errWrite
	}
	return s.Diskv.Set(ctx, values)
}

func TestSetOrderedWritesNamedKeysFirst(t *testing.T) {
	d, err := NewDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("diskv: %v", err)
	}
	s := &sequentialStore{Diskv: d}
	values := map[string][]byte{"b": []byte("1"), "a": []byte("2"), "z": []byte("3"), "m": []byte("4")}

	if err := SetOrdered(context.Background(), s, values, "z", "b"); err != nil {
		t.Fatalf("SetOrdered: %v", err)
	}
	want := [][]string{{"z"}, {"b"}, {"a"}, {"m"}}
	if !reflect.DeepEqual(s.calls, want) {
		t.Fatalf("expected writes %v, got %v", want, s.calls)
	}
}

func TestSetOrderedStopsAtFirstFailure(t *testing.T) {
	d, err := NewDiskv(t.TempDir())
	if err != nil {
		t.Fatalf("diskv: %v", err)
	}
	s := &sequentialStore{Diskv: d, failOn: "archive"}
	values := map[string][]byte{"board": []byte(`{}`), "archive": []byte(`[]`)}

	if err := SetOrdered(context.Background(), s, values, "archive", "board"); !errors.Is(err, errWrite) {
		t.Fatalf("expected write error, got %v", err)
	}
	got, err := d.Get(context.Background(), "board", "archive")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("nothing should be written after the failed key, got %v", got)
	}
}

func TestSetOrderedSingleSetForAtomicBackends(t *testing.T) {
	m := NewMemory()
	values := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if err := SetOrdered(context.Background(), m, values, "b"); err != nil {
		t.Fatalf("SetOrdered: %v", err)
	}
	got, err := m.Get(context.Background(), "a", "b")
	if err != nil || len(got) != 2 {
		t.Fatalf("expected both keys, got %v (%v)", got, err)
	}
}
