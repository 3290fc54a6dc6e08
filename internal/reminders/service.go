package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/logging"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/metrics"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/realtime"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/traces"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/validation"
)

// Broadcaster pushes reminder events to connected dashboard clients.
// Satisfied by *realtime.Hub.
type Broadcaster interface {
	BroadcastData(eventType realtime.EventType, data map[string]interface{})
}

// NopBroadcaster discards events. Used when no hub is wired.
type NopBroadcaster struct{}

func (NopBroadcaster) BroadcastData(realtime.EventType, map[string]interface{}) {}

// Service implements reminder management and the due scan.
type Service struct {
	store Store
	hub   Broadcaster
}

// NewService creates a new reminders service. A nil hub disables
// realtime events.
func NewService(store Store, hub Broadcaster) *Service {
	if hub == nil {
		hub = NopBroadcaster{}
	}
	return &Service{store: store, hub: hub}
}

// Create schedules a new reminder for a rep.
func (s *Service) Create(ctx context.Context, repID string, req CreateReminderRequest) (*Reminder, error) {
	ctx, span := traces.StartSpan(ctx, "reminders.Create", traces.RepID(repID))
	defer span.End()

	if errs := validation.Validate(
		validation.Required("repId", repID),
		validation.Required("note", req.Note),
		validation.MaxLength("note", req.Note, validation.MaxStringLength),
	); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, errs.Error())
	}
	if req.DueAt.IsZero() {
		return nil, fmt.Errorf("%w: dueAt is required", ErrInvalidRequest)
	}

	now := time.Now()
	r := &Reminder{
		ID:        generateReminderID(),
		RepID:     repID,
		OrderID:   req.OrderID,
		Note:      validation.SanitizeString(req.Note, validation.MaxStringLength),
		DueAt:     req.DueAt,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return r, nil
}

// Get fetches one reminder.
func (s *Service) Get(ctx context.Context, id string) (*Reminder, error) {
	return s.store.Get(ctx, id)
}

// ListByRep returns a rep's reminders, soonest due first.
func (s *Service) ListByRep(ctx context.Context, repID string, limit int) ([]*Reminder, error) {
	return s.store.ListByRep(ctx, repID, limit)
}

// Complete marks a reminder done.
func (s *Service) Complete(ctx context.Context, id string) (*Reminder, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == StatusDone {
		return nil, ErrAlreadyDone
	}

	r.Status = StatusDone
	r.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to complete reminder: %w", err)
	}
	return r, nil
}

// Delete removes a reminder.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// ScanDue flips pending reminders past their DueAt to due and notifies
// the dashboard. Returns how many were flipped. Called by the Timer.
func (s *Service) ScanDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.store.ListDueBefore(ctx, now, 100)
	if err != nil {
		return 0, fmt.Errorf("failed to list due reminders: %w", err)
	}

	flipped := 0
	for _, r := range due {
		r.Status = StatusDue
		r.UpdatedAt = now
		if err := s.store.Update(ctx, r); err != nil {
			logging.L(ctx).Warn("failed to mark reminder due",
				"reminderId", r.ID, "error", err)
			continue
		}
		flipped++
		metrics.RemindersDueTotal.Inc()

		s.hub.BroadcastData(realtime.EventReminderDue, map[string]interface{}{
			"reminderId": r.ID,
			"repId":      r.RepID,
			"orderId":    r.OrderID,
			"note":       r.Note,
			"dueAt":      r.DueAt,
		})
	}
	return flipped, nil
}
