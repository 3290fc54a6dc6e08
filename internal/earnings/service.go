package earnings

import (
	"context"
	"fmt"
	"time"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/commission"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/fiscal"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/metrics"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/orders"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/traces"
)

// Service computes earnings aggregates over the orders store.
type Service struct {
	store  orders.Store
	engine *commission.Engine
}

// NewService creates a new earnings service.
func NewService(store orders.Store, engine *commission.Engine) *Service {
	return &Service{store: store, engine: engine}
}

// load reads the rep's fiscal-month orders once and reduces them.
func (s *Service) load(ctx context.Context, repID string, at time.Time) (snapshot, fiscal.Period, error) {
	period := fiscal.PeriodFor(at)
	list, err := s.store.ListByRepBetween(ctx, repID, period.Start, period.End)
	if err != nil {
		return snapshot{}, period, fmt.Errorf("failed to list rep orders: %w", err)
	}

	var snap snapshot
	for _, o := range list {
		if o.Status == string(orders.StatusCancelled) {
			continue
		}
		if o.HasInternet {
			snap.internet++
		}
		snap.mobile += o.MobileLines
		snap.voice += o.VoiceLines
		if o.HasTV {
			snap.video++
		}
		snap.mrrBase += o.MonthlyTotal
		if o.HasWIB {
			snap.wib++
		}
		if o.HasGigInternet {
			snap.gig++
		}
		snap.sbcSeats += o.SBCSeats
	}
	return snap, period, nil
}

// Breakdown returns the per-product earnings rows for the fiscal month
// containing at.
func (s *Service) Breakdown(ctx context.Context, repID string, at time.Time) (*Summary, error) {
	ctx, span := traces.StartSpan(ctx, "earnings.Breakdown", traces.RepID(repID))
	defer span.End()

	snap, period, err := s.load(ctx, repID, at)
	if err != nil {
		return nil, err
	}

	rates := s.engine.TierFor(snap.internet)
	ala := s.engine.AlacarteRates()
	eligible := s.engine.Eligible(snap.internet)

	gated := func(v float64) float64 {
		if eligible {
			return v
		}
		return 0
	}

	rows := []Row{
		{Product: "internet", Units: snap.internet, Payout: round(float64(snap.internet) * rates.Internet)},
		{Product: "mobile", Units: snap.mobile, Payout: round(gated(float64(snap.mobile) * rates.Mobile))},
		{Product: "voice", Units: snap.voice, Payout: round(gated(float64(snap.voice) * rates.Voice))},
		{Product: "video", Units: snap.video, Payout: round(gated(float64(snap.video) * rates.Video))},
		{Product: "mrr", Units: 0, Payout: round(gated(snap.mrrBase * rates.MRR))},
		{Product: "wib", Units: snap.wib, Payout: round(gated(float64(snap.wib) * ala.WIB))},
		{Product: "gigInternet", Units: snap.gig, Payout: round(gated(float64(snap.gig) * ala.GigInternet))},
		{Product: "sbcSeats", Units: snap.sbcSeats, Payout: round(gated(float64(snap.sbcSeats) * ala.SBCSeat))},
	}

	total := 0
	for _, r := range rows {
		total += r.Payout
	}

	return &Summary{
		RepID:         repID,
		Period:        period,
		InternetCount: snap.internet,
		Tier:          s.engine.TierLabel(snap.internet),
		AtMaxTier:     s.engine.AtMaxTier(snap.internet),
		Rows:          rows,
		Total:         total,
	}, nil
}

// CurrentTotals reduces the fiscal month to the engine's aggregate form.
func (s *Service) CurrentTotals(ctx context.Context, repID string, at time.Time) (int, commission.Totals, error) {
	snap, _, err := s.load(ctx, repID, at)
	if err != nil {
		return 0, commission.Totals{}, err
	}
	return snap.internet, snap.totals(s.engine), nil
}

// NextTier projects the rep's earnings at the next tier. Returns nil when
// the rep is already in the terminal tier.
func (s *Service) NextTier(ctx context.Context, repID string, at time.Time) (*commission.Projection, error) {
	ctx, span := traces.StartSpan(ctx, "earnings.NextTier", traces.RepID(repID))
	defer span.End()

	count, totals, err := s.CurrentTotals(ctx, repID, at)
	if err != nil {
		return nil, err
	}
	metrics.NextTierProjectionsTotal.Inc()
	return s.engine.NextTier(count, totals), nil
}

// Tier returns the rep's current rate tier.
func (s *Service) Tier(ctx context.Context, repID string, at time.Time) (*TierInfo, error) {
	snap, period, err := s.load(ctx, repID, at)
	if err != nil {
		return nil, err
	}
	return &TierInfo{
		RepID:         repID,
		Period:        period.Key,
		InternetCount: snap.internet,
		Tier:          s.engine.TierFor(snap.internet),
		Label:         s.engine.TierLabel(snap.internet),
		AtMaxTier:     s.engine.AtMaxTier(snap.internet),
	}, nil
}
