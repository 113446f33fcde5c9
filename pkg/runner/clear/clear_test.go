package clear

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

func seeded(t *testing.T) *app.Service {
	t.Helper()
	color.NoColor = true
	svc := app.New(store.NewMemory())
	if _, err := svc.AddTask(context.Background(), task.UrgentImportant, "keep me?", ""); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	return svc
}

func count(t *testing.T, svc *app.Service) int {
	t.Helper()
	b, err := svc.TodaysTasks(context.Background())
	if err != nil {
		t.Fatalf("TodaysTasks failed: %v", err)
	}
	return b.Len()
}

func TestClearDeclined(t *testing.T) {
	svc := seeded(t)
	c := Clear{Tasks: svc, Confirm: func(string) (bool, error) { return false, nil }, Out: &bytes.Buffer{}}
	if err := c.Do(context.Background()); !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed, got %v", err)
	}
	if count(t, svc) != 1 {
		t.Fatalf("declined clear must keep tasks")
	}
}

func TestClearConfirmed(t *testing.T) {
	svc := seeded(t)
	asked := false
	c := Clear{Tasks: svc, Confirm: func(string) (bool, error) { asked = true; return true, nil }, Out: &bytes.Buffer{}}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if !asked || count(t, svc) != 0 {
		t.Fatalf("expected prompt and empty board")
	}
}

func TestClearYesSkipsPrompt(t *testing.T) {
	svc := seeded(t)
	c := Clear{Tasks: svc, Yes: true, Confirm: func(string) (bool, error) {
		t.Fatalf("prompt should not run with Yes")
		return false, nil
	}, Out: &bytes.Buffer{}}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if count(t, svc) != 0 {
		t.Fatalf("expected empty board")
	}
}
