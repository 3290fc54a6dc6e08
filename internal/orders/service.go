package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/commission"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/fiscal"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/logging"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/metrics"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/pagination"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/realtime"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/syncutil"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/traces"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/validation"
)

// Broadcaster pushes dashboard events. Satisfied by *realtime.Hub; nil-safe
// via NopBroadcaster for tests and memory-only deployments without a hub.
type Broadcaster interface {
	BroadcastData(typ realtime.EventType, data map[string]interface{})
}

// NopBroadcaster discards events.
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastData(realtime.EventType, map[string]interface{}) {}

// Service implements the order lifecycle business logic.
type Service struct {
	store  Store
	engine *commission.Engine
	hub    Broadcaster

	// repLocks serializes booking per rep so concurrent creates cannot
	// read the same internet count and double-report a tier crossing.
	repLocks syncutil.ShardedMutex
}

// NewService creates a new orders service.
func NewService(store Store, engine *commission.Engine, hub Broadcaster) *Service {
	if hub == nil {
		hub = NopBroadcaster{}
	}
	return &Service{store: store, engine: engine, hub: hub}
}

// InternetCount returns the rep's internet-unit count for the fiscal month
// containing at. Cancelled orders do not count.
func (s *Service) InternetCount(ctx context.Context, repID string, at time.Time) (int, error) {
	period := fiscal.PeriodFor(at)
	list, err := s.store.ListByRepBetween(ctx, repID, period.Start, period.End)
	if err != nil {
		return 0, fmt.Errorf("failed to list rep orders: %w", err)
	}
	count := 0
	for _, o := range list {
		if o.HasInternet && o.Status != string(StatusCancelled) {
			count++
		}
	}
	return count, nil
}

// CreateOrder books a new order and attaches a commission estimate at the
// rep's current tier. If the order itself pushes the rep into a new tier, a
// tier_changed event is emitted alongside order_created.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	ctx, span := traces.StartSpan(ctx, "orders.CreateOrder", traces.RepID(req.RepID))
	defer span.End()

	if err := validateCreate(req); err != nil {
		return nil, err
	}

	unlock := s.repLocks.Lock(req.RepID)
	defer unlock()

	now := time.Now()
	count, err := s.InternetCount(ctx, req.RepID, now)
	if err != nil {
		return nil, err
	}

	order := &Order{
		ID:             generateOrderID(),
		RepID:          req.RepID,
		CustomerName:   validation.SanitizeString(req.CustomerName, 200),
		CustomerPhone:  validation.SanitizeString(req.CustomerPhone, 40),
		HasInternet:    req.HasInternet,
		MobileLines:    req.MobileLines,
		VoiceLines:     req.VoiceLines,
		HasTV:          req.HasTV,
		HasWIB:         req.HasWIB,
		HasGigInternet: req.HasGigInternet,
		SBCSeats:       req.SBCSeats,
		MonthlyTotal:   req.MonthlyTotal,
		Status:         string(StatusPending),
		Notes:          validation.SanitizeString(req.Notes, validation.MaxStringLength),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	order.Estimate = s.engine.EstimateOrder(order.CommissionInput(), count)

	if err := s.store.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	metrics.OrdersTotal.WithLabelValues(string(StatusPending)).Inc()
	metrics.CommissionEstimatesTotal.Inc()

	s.hub.BroadcastData(realtime.EventOrderCreated, map[string]interface{}{
		"repId":    order.RepID,
		"orderId":  order.ID,
		"customer": order.CustomerName,
		"estimate": order.Estimate,
	})

	if order.HasInternet {
		before := s.engine.TierLabel(count)
		after := s.engine.TierLabel(count + 1)
		if before != after {
			metrics.TierChangesTotal.Inc()
			s.hub.BroadcastData(realtime.EventTierChanged, map[string]interface{}{
				"repId": order.RepID,
				"from":  before,
				"to":    after,
			})
			logging.L(ctx).Info("rep crossed into new tier",
				"rep_id", order.RepID, "from", before, "to", after)
		}
	}

	return order, nil
}

// Get fetches one order.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.store.Get(ctx, id)
}

// ListByRep returns one page of a rep's orders, newest first, plus a
// cursor for the next page when more orders exist.
func (s *Service) ListByRep(ctx context.Context, repID string, after *pagination.Cursor, limit int) ([]*Order, string, bool, error) {
	list, err := s.store.ListByRep(ctx, repID, after, limit+1)
	if err != nil {
		return nil, "", false, err
	}
	page, next, hasMore := pagination.ComputePage(list, limit, func(o *Order) (time.Time, string) {
		return o.CreatedAt, o.ID
	})
	return page, next, hasMore, nil
}

// ListInstalls returns orders with an install scheduled in [start, end),
// across all reps, for the install calendar.
func (s *Service) ListInstalls(ctx context.Context, start, end time.Time) ([]*Order, error) {
	return s.store.ListScheduledBetween(ctx, start, end)
}

// ScheduleInstall sets the install date on a pending or scheduled order.
func (s *Service) ScheduleInstall(ctx context.Context, id string, at time.Time) (*Order, error) {
	ctx, span := traces.StartSpan(ctx, "orders.ScheduleInstall", traces.OrderID(id))
	defer span.End()

	order, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsTerminal() {
		return nil, ErrOrderTerminal
	}

	order.Status = string(StatusScheduled)
	order.InstallAt = &at
	order.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to schedule install: %w", err)
	}

	metrics.OrdersTotal.WithLabelValues(string(StatusScheduled)).Inc()
	s.hub.BroadcastData(realtime.EventInstallScheduled, map[string]interface{}{
		"repId":     order.RepID,
		"orderId":   order.ID,
		"installAt": at,
	})
	return order, nil
}

// MarkInstalled completes a scheduled order.
func (s *Service) MarkInstalled(ctx context.Context, id string) (*Order, error) {
	ctx, span := traces.StartSpan(ctx, "orders.MarkInstalled", traces.OrderID(id))
	defer span.End()

	order, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsTerminal() {
		return nil, ErrOrderTerminal
	}
	if order.Status != string(StatusScheduled) {
		return nil, fmt.Errorf("%w: %s -> installed", ErrInvalidTransition, order.Status)
	}

	order.Status = string(StatusInstalled)
	order.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to mark installed: %w", err)
	}

	metrics.OrdersTotal.WithLabelValues(string(StatusInstalled)).Inc()
	s.hub.BroadcastData(realtime.EventOrderInstalled, map[string]interface{}{
		"repId":   order.RepID,
		"orderId": order.ID,
	})
	return order, nil
}

// Cancel cancels a non-terminal order.
func (s *Service) Cancel(ctx context.Context, id string) (*Order, error) {
	ctx, span := traces.StartSpan(ctx, "orders.Cancel", traces.OrderID(id))
	defer span.End()

	order, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsTerminal() {
		return nil, ErrOrderTerminal
	}

	order.Status = string(StatusCancelled)
	order.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	metrics.OrdersTotal.WithLabelValues(string(StatusCancelled)).Inc()
	s.hub.BroadcastData(realtime.EventOrderCancelled, map[string]interface{}{
		"repId":   order.RepID,
		"orderId": order.ID,
	})
	return order, nil
}

// Estimate computes a stateless commission estimate for an unsaved order.
func (s *Service) Estimate(req EstimateRequest) (int, string) {
	count := commission.DefaultInternetCount
	if req.InternetCount != nil {
		count = *req.InternetCount
	}
	metrics.CommissionEstimatesTotal.Inc()
	return s.engine.EstimateOrder(req.Input(), count), s.engine.TierLabel(count)
}

func validateCreate(req CreateOrderRequest) error {
	if errs := validation.Validate(
		validation.Required("repId", req.RepID),
		validation.Required("customerName", req.CustomerName),
		validation.MaxLength("notes", req.Notes, validation.MaxStringLength),
		validation.NonNegative("mobileLines", float64(req.MobileLines)),
		validation.NonNegative("voiceLines", float64(req.VoiceLines)),
		validation.NonNegative("sbcSeats", float64(req.SBCSeats)),
		validation.NonNegative("monthlyTotal", req.MonthlyTotal),
	); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, errs.Error())
	}
	return nil
}
