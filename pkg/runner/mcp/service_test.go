package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

func newTestService(t *testing.T) (*Service, *time.Time) {
	t.Helper()
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	svc := app.New(store.NewMemory())
	svc.Location = time.UTC
	svc.Now = func() time.Time { return now }
	var n int
	svc.NewID = func() string {
		n++
		return "mcp-" + strconv.Itoa(n)
	}
	return NewService(svc), &now
}

func TestServiceAddTaskDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	dto, err := svc.AddTask(ctx, AddTaskOptions{Priority: "ui", Text: "Ship release"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if dto.ID != "mcp-1" {
		t.Fatalf("expected generated id mcp-1, got %s", dto.ID)
	}
	if dto.Priority != string(task.UrgentImportant) {
		t.Fatalf("expected urgent-important, got %s", dto.Priority)
	}
	if dto.Category != task.DefaultCategory {
		t.Fatalf("expected default category, got %s", dto.Category)
	}
	if dto.Date != "2024-05-02" {
		t.Fatalf("expected date 2024-05-02, got %s", dto.Date)
	}
}

func TestServiceAddTaskRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.AddTask(ctx, AddTaskOptions{Priority: "ui", Text: "  "}); err == nil {
		t.Fatalf("expected error for empty text")
	}
	if _, err := svc.AddTask(ctx, AddTaskOptions{Priority: "someday", Text: "x"}); !errors.Is(err, app.ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestServiceCompleteAndArchive(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	dto, err := svc.AddTask(ctx, AddTaskOptions{Priority: "mi", Text: "Read paper", Category: "Research"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if _, err := svc.AddTask(ctx, AddTaskOptions{Priority: "uli", Text: "Email"}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	board, err := svc.CompleteTask(ctx, dto.ID)
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if board.Done != 1 || board.Open != 1 {
		t.Fatalf("expected 1 done and 1 open, got %d/%d", board.Done, board.Open)
	}

	entry, err := svc.Archive(ctx, "")
	if err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	if entry == nil || len(entry.Tasks) != 1 || entry.Tasks[0].Text != "Read paper" {
		t.Fatalf("unexpected archive entry %+v", entry)
	}
	if entry.Tasks[0].CompletedISO == "" {
		t.Fatalf("expected archived task to carry completion time")
	}

	again, err := svc.Archive(ctx, "")
	if err != nil {
		t.Fatalf("second Archive failed: %v", err)
	}
	if again != nil {
		t.Fatalf("expected nothing to archive, got %+v", again)
	}

	history, err := svc.History(ctx, "2024-05-02", "2024-05-03")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
}

func TestServiceMutationsReportMissingTasks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.CompleteTask(ctx, "nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if _, err := svc.DeleteTask(ctx, ""); err == nil {
		t.Fatalf("expected error for empty id")
	}
	if _, err := svc.UpdateTask(ctx, "nope", nil, nil); err == nil {
		t.Fatalf("expected error for empty update")
	}
}

func TestServiceUpdateAndUncomplete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	dto, err := svc.AddTask(ctx, AddTaskOptions{Priority: "1", Text: "Draft"})
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	text := "Draft v2"
	board, err := svc.UpdateTask(ctx, dto.ID, &text, nil)
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if got := board.Buckets[0].Tasks[0].Text; got != text {
		t.Fatalf("expected %q, got %q", text, got)
	}

	if _, err := svc.CompleteTask(ctx, dto.ID); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	board, err = svc.UncompleteTask(ctx, dto.ID)
	if err != nil {
		t.Fatalf("UncompleteTask failed: %v", err)
	}
	got := board.Buckets[0].Tasks[0]
	if got.Completed || got.CompletedISO != "" {
		t.Fatalf("expected task reopened, got %+v", got)
	}
}

func TestServiceTodayCarriesOver(t *testing.T) {
	ctx := context.Background()
	svc, now := newTestService(t)

	if _, err := svc.AddTask(ctx, AddTaskOptions{Priority: "ui", Text: "Unfinished"}); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	*now = now.Add(24 * time.Hour)

	board, err := svc.Today(ctx)
	if err != nil {
		t.Fatalf("Today failed: %v", err)
	}
	if board.Date != "2024-05-03" {
		t.Fatalf("expected 2024-05-03, got %s", board.Date)
	}
	carried := board.Buckets[0].Tasks
	if len(carried) != 1 || carried[0].CarriedFrom != "2024-05-02" {
		t.Fatalf("expected carried task, got %+v", carried)
	}
	if board.Buckets[0].Capacity != 1 {
		t.Fatalf("expected capacity 1, got %d", board.Buckets[0].Capacity)
	}
}

func TestServiceWithoutApp(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.Today(context.Background()); err == nil {
		t.Fatalf("expected error without task service")
	}
}

func TestToJSONResult(t *testing.T) {
	res, err := toJSONResult(map[string]int{"count": 2})
	if err != nil {
		t.Fatalf("toJSONResult failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected error result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	var got map[string]int
	if err := json.Unmarshal([]byte(text.Text), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got["count"] != 2 {
		t.Fatalf("expected count 2, got %v", got)
	}
}

func TestRunnerRequiresTasks(t *testing.T) {
	if err := (Runner{}).Do(context.Background()); err == nil {
		t.Fatalf("expected error without task service")
	}
}
