package goals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/earnings"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/fiscal"
)

// --- Stub earnings source ---

type stubEarnings struct {
	summary *earnings.Summary
	err     error
}

func (s *stubEarnings) Breakdown(_ context.Context, repID string, _ time.Time) (*earnings.Summary, error) {
	if s.err != nil {
		return nil, s.err
	}
	sum := *s.summary
	sum.RepID = repID
	return &sum, nil
}

func testService(t *testing.T, summary *earnings.Summary) *Service {
	t.Helper()
	if summary == nil {
		summary = &earnings.Summary{Tier: "0-4"}
	}
	return NewService(NewMemoryStore(), &stubEarnings{summary: summary})
}

func currentPeriod() string {
	return fiscal.KeyFor(time.Now())
}

// --- Create / uniqueness ---

func TestCreate_OnePerRepPerPeriod(t *testing.T) {
	svc := testService(t, nil)
	ctx := context.Background()

	req := UpsertGoalRequest{Period: currentPeriod(), InternetTarget: 10}
	goal, err := svc.Create(ctx, "rep-1", req)
	require.NoError(t, err)
	assert.Contains(t, goal.ID, "goal_")

	_, err = svc.Create(ctx, "rep-1", req)
	assert.ErrorIs(t, err, ErrGoalExists)

	// Different rep or period is fine.
	_, err = svc.Create(ctx, "rep-2", req)
	assert.NoError(t, err)
	_, err = svc.Create(ctx, "rep-1", UpsertGoalRequest{Period: "2030-01", InternetTarget: 5})
	assert.NoError(t, err)
}

func TestCreate_Validation(t *testing.T) {
	svc := testService(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "", UpsertGoalRequest{Period: currentPeriod()})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Create(ctx, "rep-1", UpsertGoalRequest{Period: "March"})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.Create(ctx, "rep-1", UpsertGoalRequest{Period: currentPeriod(), InternetTarget: -1})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUpdateAndDelete(t *testing.T) {
	svc := testService(t, nil)
	ctx := context.Background()

	goal, err := svc.Create(ctx, "rep-1", UpsertGoalRequest{Period: currentPeriod(), InternetTarget: 10})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, goal.ID, UpsertGoalRequest{Period: goal.Period, InternetTarget: 20, MobileTarget: 8})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.InternetTarget)
	assert.Equal(t, 8, updated.MobileTarget)

	require.NoError(t, svc.Delete(ctx, goal.ID))
	_, err = svc.Get(ctx, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, goal.ID), ErrGoalNotFound)
}

func TestUpdate_PeriodMoveKeepsUniqueness(t *testing.T) {
	svc := testService(t, nil)
	ctx := context.Background()

	jan, err := svc.Create(ctx, "rep-1", UpsertGoalRequest{Period: "2030-01", InternetTarget: 10})
	require.NoError(t, err)
	feb, err := svc.Create(ctx, "rep-1", UpsertGoalRequest{Period: "2030-02", InternetTarget: 12})
	require.NoError(t, err)

	// Moving feb's goal onto jan's period would leave two goals for
	// (rep-1, 2030-01).
	_, err = svc.Update(ctx, feb.ID, UpsertGoalRequest{Period: jan.Period, InternetTarget: 12})
	assert.ErrorIs(t, err, ErrGoalExists)

	// The rejected move must not have touched either goal.
	got, err := svc.Get(ctx, feb.ID)
	require.NoError(t, err)
	assert.Equal(t, "2030-02", got.Period)

	// Moving to a free period is fine, and frees the old one up.
	moved, err := svc.Update(ctx, feb.ID, UpsertGoalRequest{Period: "2030-03", InternetTarget: 12})
	require.NoError(t, err)
	assert.Equal(t, "2030-03", moved.Period)
	_, err = svc.Create(ctx, "rep-1", UpsertGoalRequest{Period: "2030-02", InternetTarget: 1})
	assert.NoError(t, err)
}

// --- Progress ---

func TestProgress_Percentages(t *testing.T) {
	summary := &earnings.Summary{
		InternetCount: 8,
		Tier:          "5-9",
		Total:         1500,
		Rows: []earnings.Row{
			{Product: "internet", Units: 8, Payout: 800},
			{Product: "mobile", Units: 4, Payout: 300},
		},
	}
	svc := testService(t, summary)
	ctx := context.Background()

	_, err := svc.Create(ctx, "rep-1", UpsertGoalRequest{
		Period:           currentPeriod(),
		InternetTarget:   10,
		MobileTarget:     8,
		CommissionTarget: 3000,
	})
	require.NoError(t, err)

	p, err := svc.Progress(ctx, "rep-1", currentPeriod())
	require.NoError(t, err)

	assert.Equal(t, 8, p.InternetAttained)
	assert.Equal(t, 4, p.MobileAttained)
	assert.Equal(t, 1500, p.CommissionAttained)
	assert.Equal(t, 80, p.InternetPercent)
	assert.Equal(t, 50, p.MobilePercent)
	assert.Equal(t, 50, p.CommissionPercent)
	assert.Equal(t, "5-9", p.Tier)
}

func TestProgress_ZeroTargetsGuarded(t *testing.T) {
	summary := &earnings.Summary{InternetCount: 5, Total: 500, Tier: "5-9"}
	svc := testService(t, summary)
	ctx := context.Background()

	_, err := svc.Create(ctx, "rep-1", UpsertGoalRequest{Period: currentPeriod()})
	require.NoError(t, err)

	p, err := svc.Progress(ctx, "rep-1", currentPeriod())
	require.NoError(t, err)
	assert.Zero(t, p.InternetPercent)
	assert.Zero(t, p.MobilePercent)
	assert.Zero(t, p.CommissionPercent)
}

func TestProgress_NoGoal(t *testing.T) {
	svc := testService(t, nil)
	_, err := svc.Progress(context.Background(), "rep-1", currentPeriod())
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestListByRep_NewestPeriodFirst(t *testing.T) {
	svc := testService(t, nil)
	ctx := context.Background()

	for _, period := range []string{"2030-01", "2030-03", "2030-02"} {
		_, err := svc.Create(ctx, "rep-1", UpsertGoalRequest{Period: period})
		require.NoError(t, err)
	}

	list, err := svc.ListByRep(ctx, "rep-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2030-03", list[0].Period)
	assert.Equal(t, "2030-01", list[2].Period)
}
