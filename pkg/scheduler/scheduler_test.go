package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/focus/pkg/session"
	"tableflip.dev/focus/pkg/task"
)

type fakeSweeper struct {
	carried  int
	archived int
	err      error
}

func (f *fakeSweeper) CarryOverIncompleteTasks(context.Context) (int, error) {
	f.carried++
	return 0, f.err
}

func (f *fakeSweeper) CheckAndArchiveCompletedTasks(context.Context) (*task.ArchiveEntry, error) {
	f.archived++
	return &task.ArchiveEntry{Date: "2024-03-10"}, nil
}

type fakeTicker struct{ ticks atomic.Int32 }

func (f *fakeTicker) Tick(context.Context) (*session.Session, error) {
	f.ticks.Add(1)
	return nil, nil
}

func TestSweepRunsBothStepsEvenWhenCarryOverFails(t *testing.T) {
	sw := &fakeSweeper{err: errors.New("boom")}
	s, err := New(context.Background(), time.UTC, sw, nil)
	require.NoError(t, err)

	s.Sweep()
	s.Tick()
	assert.Equal(t, 1, sw.carried)
	assert.Equal(t, 1, sw.archived)
}

func TestScheduledJobsRun(t *testing.T) {
	tk := &fakeTicker{}
	s, err := New(context.Background(), time.UTC, &fakeSweeper{}, tk)
	require.NoError(t, err)

	_, err = s.ScheduleDailySweep()
	require.NoError(t, err)
	_, err = s.ScheduleTimerTick(10 * time.Millisecond)
	require.NoError(t, err)

	s.Start()
	require.Eventually(t, func() bool { return tk.ticks.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Stop())
}
