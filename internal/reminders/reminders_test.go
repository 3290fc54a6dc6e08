package reminders

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/realtime"
)

type recordingHub struct {
	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	Type realtime.EventType
	Data map[string]interface{}
}

func (h *recordingHub) BroadcastData(eventType realtime.EventType, data map[string]interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, recordedEvent{Type: eventType, Data: data})
}

func (h *recordingHub) byType(eventType realtime.EventType) []recordedEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []recordedEvent
	for _, e := range h.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func testService(t *testing.T) (*Service, *recordingHub) {
	t.Helper()
	hub := &recordingHub{}
	return NewService(NewMemoryStore(), hub), hub
}

func TestCreate(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	due := time.Now().Add(time.Hour)
	r, err := svc.Create(ctx, "rep-1", CreateReminderRequest{
		OrderID: "ord_abc",
		Note:    "call customer about install window",
		DueAt:   due,
	})
	require.NoError(t, err)
	assert.Contains(t, r.ID, "rem_")
	assert.Equal(t, StatusPending, r.Status)
	assert.Equal(t, "ord_abc", r.OrderID)
	assert.True(t, r.DueAt.Equal(due))
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	due := time.Now().Add(time.Hour)

	_, err := svc.Create(ctx, "", CreateReminderRequest{Note: "x", DueAt: due})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Create(ctx, "rep-1", CreateReminderRequest{DueAt: due})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Create(ctx, "rep-1", CreateReminderRequest{Note: "x"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestScanDue_FlipsOnlyPastDuePending(t *testing.T) {
	svc, hub := testService(t)
	ctx := context.Background()
	now := time.Now()

	past, err := svc.Create(ctx, "rep-1", CreateReminderRequest{Note: "overdue", DueAt: now.Add(-time.Minute)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "rep-1", CreateReminderRequest{Note: "future", DueAt: now.Add(time.Hour)})
	require.NoError(t, err)
	done, err := svc.Create(ctx, "rep-1", CreateReminderRequest{Note: "finished", DueAt: now.Add(-time.Hour)})
	require.NoError(t, err)
	_, err = svc.Complete(ctx, done.ID)
	require.NoError(t, err)

	flipped, err := svc.ScanDue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)

	got, err := svc.Get(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDue, got.Status)

	events := hub.byType(realtime.EventReminderDue)
	require.Len(t, events, 1)
	assert.Equal(t, past.ID, events[0].Data["reminderId"])
	assert.Equal(t, "rep-1", events[0].Data["repId"])
}

func TestScanDue_Idempotent(t *testing.T) {
	svc, hub := testService(t)
	ctx := context.Background()
	now := time.Now()

	_, err := svc.Create(ctx, "rep-1", CreateReminderRequest{Note: "overdue", DueAt: now.Add(-time.Minute)})
	require.NoError(t, err)

	flipped, err := svc.ScanDue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)

	// Already due, nothing pending left to flip.
	flipped, err = svc.ScanDue(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, flipped)
	assert.Len(t, hub.byType(realtime.EventReminderDue), 1)
}

func TestComplete(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, "rep-1", CreateReminderRequest{Note: "x", DueAt: time.Now()})
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, completed.Status)

	_, err = svc.Complete(ctx, r.ID)
	assert.ErrorIs(t, err, ErrAlreadyDone)

	_, err = svc.Complete(ctx, "rem_missing")
	assert.ErrorIs(t, err, ErrReminderNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, "rep-1", CreateReminderRequest{Note: "x", DueAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, r.ID))
	assert.ErrorIs(t, svc.Delete(ctx, r.ID), ErrReminderNotFound)
}

func TestListByRep_SoonestFirst(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	now := time.Now()

	for _, offset := range []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour} {
		_, err := svc.Create(ctx, "rep-1", CreateReminderRequest{Note: "x", DueAt: now.Add(offset)})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "rep-2", CreateReminderRequest{Note: "other rep", DueAt: now})
	require.NoError(t, err)

	list, err := svc.ListByRep(ctx, "rep-1", 50)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].DueAt.Before(list[1].DueAt))
	assert.True(t, list[1].DueAt.Before(list[2].DueAt))

	limited, err := svc.ListByRep(ctx, "rep-1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestTimer_FlipsDueReminders(t *testing.T) {
	svc, hub := testService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := svc.Create(ctx, "rep-1", CreateReminderRequest{Note: "overdue", DueAt: time.Now().Add(-time.Minute)})
	require.NoError(t, err)

	timer := NewTimer(svc, 10*time.Millisecond, slog.Default())
	go timer.Start(ctx)

	require.Eventually(t, func() bool {
		return len(hub.byType(realtime.EventReminderDue)) == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.True(t, timer.Running())
	timer.Stop()
	require.Eventually(t, func() bool {
		return !timer.Running()
	}, 2*time.Second, 10*time.Millisecond)
}
