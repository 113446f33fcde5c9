package strike

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/runner/complete"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

func TestStrikeRemovesTask(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	svc := app.New(store.NewMemory())

	created, err := svc.AddTask(ctx, task.ManagementItems, "old idea", "")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	var buf bytes.Buffer
	s := Strike{ID: created.ID, Tasks: svc, Out: &buf}
	if err := s.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	b, _ := svc.TodaysTasks(ctx)
	if b.Len() != 0 {
		t.Fatalf("expected empty board, got %d tasks", b.Len())
	}

	if err := s.Do(ctx); !errors.Is(err, complete.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second strike, got %v", err)
	}
}
