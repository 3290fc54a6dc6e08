package goals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/testutil"
)

func TestPostgresStore_CRUD(t *testing.T) {
	db, cleanup := testutil.PGTest(t)
	defer cleanup()

	store := NewPostgresStore(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	goal := &Goal{
		ID:               "goal_pg1",
		RepID:            "rep-1",
		Period:           "2030-01",
		InternetTarget:   10,
		MobileTarget:     6,
		CommissionTarget: 2500,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	require.NoError(t, store.Create(ctx, goal))

	got, err := store.Get(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.InternetTarget)
	assert.Equal(t, 2500.0, got.CommissionTarget)

	byPeriod, err := store.GetByRepPeriod(ctx, "rep-1", "2030-01")
	require.NoError(t, err)
	assert.Equal(t, goal.ID, byPeriod.ID)

	got.MobileTarget = 8
	got.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, store.Update(ctx, got))

	require.NoError(t, store.Delete(ctx, goal.ID))
	assert.ErrorIs(t, store.Delete(ctx, goal.ID), ErrGoalNotFound)
	_, err = store.Get(ctx, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestPostgresStore_UniqueRepPeriod(t *testing.T) {
	db, cleanup := testutil.PGTest(t)
	defer cleanup()

	store := NewPostgresStore(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	mk := func(id, period string) *Goal {
		return &Goal{ID: id, RepID: "rep-1", Period: period, CreatedAt: now, UpdatedAt: now}
	}

	require.NoError(t, store.Create(ctx, mk("goal_a", "2030-01")))
	require.NoError(t, store.Create(ctx, mk("goal_b", "2030-02")))

	// Duplicate insert hits the unique constraint.
	assert.ErrorIs(t, store.Create(ctx, mk("goal_c", "2030-01")), ErrGoalExists)

	// Moving a goal onto an occupied period hits it too.
	b := mk("goal_b", "2030-01")
	assert.ErrorIs(t, store.Update(ctx, b), ErrGoalExists)
}
