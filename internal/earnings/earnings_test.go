package earnings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/commission"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/orders"
)

func testService(t *testing.T) (*Service, *orders.MemoryStore) {
	t.Helper()
	store := orders.NewMemoryStore()
	return NewService(store, commission.MustEngine(commission.DefaultSchedule())), store
}

var seq int

func put(t *testing.T, store *orders.MemoryStore, o orders.Order) {
	t.Helper()
	seq++
	o.ID = fmt.Sprintf("ord_%d", seq)
	if o.RepID == "" {
		o.RepID = "rep-1"
	}
	if o.CustomerName == "" {
		o.CustomerName = "c"
	}
	if o.Status == "" {
		o.Status = string(orders.StatusPending)
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	require.NoError(t, store.Create(context.Background(), &o))
}

func putInternet(t *testing.T, store *orders.MemoryStore, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		put(t, store, orders.Order{HasInternet: true})
	}
}

func TestBreakdown_BelowThresholdGatesEverything(t *testing.T) {
	svc, store := testService(t)

	// 3 internet units: tier 0-4 and below the eligibility threshold.
	putInternet(t, store, 2)
	put(t, store, orders.Order{HasInternet: true, MobileLines: 4, MonthlyTotal: 500, HasWIB: true})

	summary, err := svc.Breakdown(context.Background(), "rep-1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.InternetCount)
	assert.Equal(t, "0-4", summary.Tier)
	assert.Equal(t, 0, summary.Total)
	for _, row := range summary.Rows {
		assert.Zero(t, row.Payout, "product %s should pay nothing below threshold", row.Product)
	}
	// Units still reported even when gated.
	assert.Equal(t, Row{Product: "mobile", Units: 4, Payout: 0}, summary.Rows[1])
}

func TestBreakdown_EligibleTierPricing(t *testing.T) {
	svc, store := testService(t)

	// 5 internet units, one carrying mobile, MRR and WIB.
	putInternet(t, store, 4)
	put(t, store, orders.Order{HasInternet: true, MobileLines: 2, MonthlyTotal: 1000, HasWIB: true})

	summary, err := svc.Breakdown(context.Background(), "rep-1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "5-9", summary.Tier)
	byProduct := map[string]Row{}
	for _, r := range summary.Rows {
		byProduct[r.Product] = r
	}
	assert.Equal(t, 500, byProduct["internet"].Payout) // 5*100
	assert.Equal(t, 150, byProduct["mobile"].Payout)   // 2*75
	assert.Equal(t, 250, byProduct["mrr"].Payout)      // 1000*0.25
	assert.Equal(t, 100, byProduct["wib"].Payout)
	assert.Equal(t, 1000, summary.Total)
}

func TestBreakdown_ExcludesCancelled(t *testing.T) {
	svc, store := testService(t)

	putInternet(t, store, 5)
	put(t, store, orders.Order{HasInternet: true, Status: string(orders.StatusCancelled)})

	summary, err := svc.Breakdown(context.Background(), "rep-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 5, summary.InternetCount)
}

func TestBreakdown_IgnoresOtherPeriods(t *testing.T) {
	svc, store := testService(t)

	putInternet(t, store, 5)
	// An order from two months ago must not count.
	put(t, store, orders.Order{HasInternet: true, CreatedAt: time.Now().AddDate(0, -2, 0)})

	summary, err := svc.Breakdown(context.Background(), "rep-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 5, summary.InternetCount)
}

func TestNextTier_ProjectionFromLiveOrders(t *testing.T) {
	svc, store := testService(t)

	// 9 internet units, 5 mobile lines, nothing else.
	putInternet(t, store, 8)
	put(t, store, orders.Order{HasInternet: true, MobileLines: 5})

	p, err := svc.NextTier(context.Background(), "rep-1", time.Now())
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "5-9", p.CurrentLabel)
	assert.Equal(t, "10-19", p.NextLabel)
	assert.Equal(t, 1, p.InternetNeeded)
	assert.Equal(t, 1275, p.CurrentTotal)
	assert.Equal(t, 2750, p.ProjectedTotal)
	assert.Equal(t, 1475, p.Increase)
	assert.Equal(t, 116, p.PercentIncrease)
}

func TestNextTier_NilAtMaxTier(t *testing.T) {
	svc, store := testService(t)

	putInternet(t, store, 45)

	p, err := svc.NextTier(context.Background(), "rep-1", time.Now())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestCurrentTotals_MRRAndAlacartePriced(t *testing.T) {
	svc, store := testService(t)

	putInternet(t, store, 9)
	put(t, store, orders.Order{MonthlyTotal: 1000, HasWIB: true, SBCSeats: 2})

	count, totals, err := svc.CurrentTotals(context.Background(), "rep-1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, 9, count)
	assert.Equal(t, 9, totals.Internet)
	assert.Equal(t, 250.0, totals.MRR)      // 1000 * 0.25 at tier 5-9
	assert.Equal(t, 150.0, totals.Alacarte) // WIB 100 + 2 seats * 25
}

func TestCurrentTotals_GatedBelowThreshold(t *testing.T) {
	svc, store := testService(t)

	putInternet(t, store, 2)
	put(t, store, orders.Order{MonthlyTotal: 1000, HasWIB: true})

	_, totals, err := svc.CurrentTotals(context.Background(), "rep-1", time.Now())
	require.NoError(t, err)
	assert.Zero(t, totals.MRR)
	assert.Zero(t, totals.Alacarte)
	assert.Equal(t, 2, totals.Internet)
}

func TestTier_Info(t *testing.T) {
	svc, store := testService(t)

	putInternet(t, store, 12)

	info, err := svc.Tier(context.Background(), "rep-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 12, info.InternetCount)
	assert.Equal(t, "10-19", info.Label)
	assert.Equal(t, 200.0, info.Tier.Internet)
	assert.False(t, info.AtMaxTier)
}
