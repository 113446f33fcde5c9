package timer

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/focus/pkg/session"
	"tableflip.dev/focus/pkg/store"
)

func TestTimerStartTickLogsSession(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	st := session.NewTimer(store.NewMemory(), nil)
	st.Now = func() time.Time { return now }

	var buf bytes.Buffer
	r := Timer{Timer: st, Action: ActionStart, Duration: 10 * time.Minute, Category: " Writing ", Format: "json", Out: &buf}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if got["isRunning"] != true || got["remainingSeconds"] != float64(600) || got["category"] != "Writing" {
		t.Fatalf("unexpected status %v", got)
	}

	now = now.Add(11 * time.Minute)
	buf.Reset()
	r = Timer{Timer: st, Action: ActionTick, Out: &buf}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if !strings.Contains(buf.String(), "logged") || !strings.Contains(buf.String(), "Writing") {
		t.Fatalf("expected logged session, got:\n%s", buf.String())
	}

	sessions, err := st.Log.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Duration != 600 {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
}

func TestTimerStopShowsIdle(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	st := session.NewTimer(store.NewMemory(), nil)

	if err := (&Timer{Timer: st, Action: ActionStart, Out: &bytes.Buffer{}}).Do(ctx); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	var buf bytes.Buffer
	if err := (&Timer{Timer: st, Action: ActionStop, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if !strings.Contains(buf.String(), "idle") {
		t.Fatalf("expected idle timer, got:\n%s", buf.String())
	}
}

func TestTimerUnknownAction(t *testing.T) {
	r := Timer{Timer: session.NewTimer(store.NewMemory(), nil), Action: "pause"}
	if err := r.Do(context.Background()); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
