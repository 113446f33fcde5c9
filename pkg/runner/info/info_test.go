package info

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

func TestInfoPrintsConfigAndCounts(t *testing.T) {
	color.NoColor = true
	t.Setenv("FOCUS_CONFIG_PATH", "")
	ctx := context.Background()

	svc := app.New(store.NewMemory())
	svc.Location = time.UTC
	if _, err := svc.AddTask(ctx, task.UrgentImportant, "one", ""); err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	cfg := &store.Config{
		Backend:       store.BackendMemory,
		Path:          "/tmp/focus",
		Location:      time.UTC,
		Listen:        "127.0.0.1:8787",
		TimerDuration: 25 * time.Minute,
	}
	var buf bytes.Buffer
	i := Info{Config: cfg, Tasks: svc, Out: &buf}
	if err := i.Do(ctx); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"memory", "25m0s", "1 open, 0 done", "Archive: 0 entries"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
