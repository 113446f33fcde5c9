package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/focus/pkg/app"
	"tableflip.dev/focus/pkg/store"
	"tableflip.dev/focus/pkg/task"
)

type fakeConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func TestPublisherForwardsServiceEvents(t *testing.T) {
	conn := &fakeConn{}
	svc := app.New(store.NewMemory())
	New(conn, "focus.tasks").Attach(svc)

	ctx := context.Background()
	_, err := svc.AddTask(ctx, task.UrgentImportant, "Ship release", "Work")
	require.NoError(t, err)
	require.NoError(t, svc.ClearAllTasks(ctx))

	require.Len(t, conn.payloads, 2)
	assert.Equal(t, []string{"focus.tasks", "focus.tasks"}, conn.subjects)

	var first app.Event
	require.NoError(t, json.Unmarshal(conn.payloads[0], &first))
	assert.Equal(t, app.EventTasksUpdated, first.Type)
	require.Len(t, first.Bucket[task.UrgentImportant], 1)
	assert.Equal(t, "Ship release", first.Bucket[task.UrgentImportant][0].Text)

	var second app.Event
	require.NoError(t, json.Unmarshal(conn.payloads[1], &second))
	assert.Equal(t, app.EventTasksCleared, second.Type)
}

func TestPublishErrorDoesNotFailOperation(t *testing.T) {
	conn := &fakeConn{err: errors.New("no responders")}
	svc := app.New(store.NewMemory())
	New(conn, "focus.tasks").Attach(svc)

	_, err := svc.AddTask(context.Background(), task.ManagementItems, "x", "")
	require.NoError(t, err)
}
