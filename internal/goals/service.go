package goals

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/earnings"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/fiscal"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/traces"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/validation"
)

// EarningsSource supplies the monthly breakdown progress is measured against.
// Satisfied by *earnings.Service.
type EarningsSource interface {
	Breakdown(ctx context.Context, repID string, at time.Time) (*earnings.Summary, error)
}

// Service implements goal management and progress tracking.
type Service struct {
	store    Store
	earnings EarningsSource
}

// NewService creates a new goals service.
func NewService(store Store, earnings EarningsSource) *Service {
	return &Service{store: store, earnings: earnings}
}

// Create adds a goal for a rep and period. One goal per rep per period.
func (s *Service) Create(ctx context.Context, repID string, req UpsertGoalRequest) (*Goal, error) {
	if err := validate(repID, req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetByRepPeriod(ctx, repID, req.Period); err == nil {
		return nil, ErrGoalExists
	} else if !errors.Is(err, ErrGoalNotFound) {
		return nil, fmt.Errorf("failed to check existing goal: %w", err)
	}

	now := time.Now()
	goal := &Goal{
		ID:               generateGoalID(),
		RepID:            repID,
		Period:           req.Period,
		InternetTarget:   req.InternetTarget,
		MobileTarget:     req.MobileTarget,
		CommissionTarget: req.CommissionTarget,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal, nil
}

// Update replaces the targets on an existing goal.
func (s *Service) Update(ctx context.Context, id string, req UpsertGoalRequest) (*Goal, error) {
	goal, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate(goal.RepID, req); err != nil {
		return nil, err
	}

	// Moving the goal to another period must not collide with an
	// existing goal for that period.
	if req.Period != goal.Period {
		if _, err := s.store.GetByRepPeriod(ctx, goal.RepID, req.Period); err == nil {
			return nil, ErrGoalExists
		} else if !errors.Is(err, ErrGoalNotFound) {
			return nil, fmt.Errorf("failed to check existing goal: %w", err)
		}
	}

	goal.Period = req.Period
	goal.InternetTarget = req.InternetTarget
	goal.MobileTarget = req.MobileTarget
	goal.CommissionTarget = req.CommissionTarget
	goal.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

// Delete removes a goal.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Get fetches one goal.
func (s *Service) Get(ctx context.Context, id string) (*Goal, error) {
	return s.store.Get(ctx, id)
}

// ListByRep returns all goals for a rep, newest period first.
func (s *Service) ListByRep(ctx context.Context, repID string) ([]*Goal, error) {
	return s.store.ListByRep(ctx, repID)
}

// Progress measures a rep's goal for a period against the live earnings
// breakdown of that period.
func (s *Service) Progress(ctx context.Context, repID, period string) (*Progress, error) {
	ctx, span := traces.StartSpan(ctx, "goals.Progress",
		traces.RepID(repID), traces.Period(period))
	defer span.End()

	goal, err := s.store.GetByRepPeriod(ctx, repID, period)
	if err != nil {
		return nil, err
	}

	p, ok := fiscal.PeriodForKey(period, time.Local)
	if !ok {
		return nil, ErrInvalidPeriod
	}

	summary, err := s.earnings.Breakdown(ctx, repID, p.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to load earnings: %w", err)
	}

	mobile := 0
	for _, row := range summary.Rows {
		if row.Product == "mobile" {
			mobile = row.Units
		}
	}

	return &Progress{
		Goal:               goal,
		InternetAttained:   summary.InternetCount,
		MobileAttained:     mobile,
		CommissionAttained: summary.Total,
		InternetPercent:    percent(float64(summary.InternetCount), float64(goal.InternetTarget)),
		MobilePercent:      percent(float64(mobile), float64(goal.MobileTarget)),
		CommissionPercent:  percent(float64(summary.Total), goal.CommissionTarget),
		Tier:               summary.Tier,
	}, nil
}

// percent guards the zero-target case.
func percent(attained, target float64) int {
	if target == 0 {
		return 0
	}
	return int(math.Round(attained / target * 100))
}

func validate(repID string, req UpsertGoalRequest) error {
	if errs := validation.Validate(
		validation.Required("repId", repID),
		validation.NonNegative("internetTarget", float64(req.InternetTarget)),
		validation.NonNegative("mobileTarget", float64(req.MobileTarget)),
		validation.NonNegative("commissionTarget", req.CommissionTarget),
	); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, errs.Error())
	}
	if _, ok := fiscal.PeriodForKey(req.Period, time.Local); !ok {
		return fmt.Errorf("%w: %s", ErrInvalidPeriod, req.Period)
	}
	return nil
}
