package get

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

func newService(t *testing.T) *app.Service {
	t.Helper()
	color.NoColor = true
	svc := app.New(store.NewMemory())
	svc.Location = time.UTC
	svc.Now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestGetPrintsBoard(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	created, err := svc.AddTask(ctx, task.UrgentImportant, "Write tests", "Work")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	var buf bytes.Buffer
	g := Get{Tasks: svc, ShowID: true, Out: &buf}
	if err := g.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "2024-03-10") || !strings.Contains(out, "Write tests") || !strings.Contains(out, created.ID) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestGetCompletedAsJSON(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	a, _ := svc.AddTask(ctx, task.UrgentImportant, "first", "")
	if _, err := svc.AddTask(ctx, task.ManagementItems, "second", ""); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := svc.CompleteTask(ctx, a.ID); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	var buf bytes.Buffer
	g := Get{Tasks: svc, Completed: true, Format: "json", Out: &buf}
	if err := g.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	var done []task.Task
	if err := json.Unmarshal(buf.Bytes(), &done); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if len(done) != 1 || done[0].Text != "first" {
		t.Fatalf("unexpected completed tasks %+v", done)
	}
}

func TestGetRejectsUnknownFormat(t *testing.T) {
	g := Get{Tasks: newService(t), Format: "xml"}
	if err := g.Do(context.Background()); err == nil {
		t.Fatalf("expected error for xml output")
	}
}

func TestGetNoService(t *testing.T) {
	g := Get{}
	if err := g.Do(context.Background()); err == nil {
		t.Fatalf("expected error without task service")
	}
}
