// Package reminders implements follow-up reminders for reps. A reminder
// is created pending, flipped to due by a background scan once its DueAt
// passes, and marked done by the rep. Due reminders are pushed to the
// dashboard over the realtime hub.
package reminders

import (
	"context"
	"errors"
	"time"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/idgen"
)

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrInvalidRequest   = errors.New("invalid request")
	ErrAlreadyDone      = errors.New("reminder already done")
)

// Reminder statuses.
const (
	StatusPending = "pending"
	StatusDue     = "due"
	StatusDone    = "done"
)

// Reminder is a follow-up a rep scheduled for themselves, optionally
// attached to an order.
type Reminder struct {
	ID        string    `json:"id"`
	RepID     string    `json:"repId"`
	OrderID   string    `json:"orderId,omitempty"`
	Note      string    `json:"note"`
	DueAt     time.Time `json:"dueAt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists reminders.
type Store interface {
	Create(ctx context.Context, r *Reminder) error
	Get(ctx context.Context, id string) (*Reminder, error)
	Update(ctx context.Context, r *Reminder) error
	Delete(ctx context.Context, id string) error
	ListByRep(ctx context.Context, repID string, limit int) ([]*Reminder, error)

	// ListDueBefore returns pending reminders whose DueAt is at or
	// before the cutoff, oldest first.
	ListDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]*Reminder, error)
}

// CreateReminderRequest is the payload for creating a reminder.
type CreateReminderRequest struct {
	OrderID string    `json:"orderId"`
	Note    string    `json:"note" binding:"required"`
	DueAt   time.Time `json:"dueAt" binding:"required"`
}

func generateReminderID() string {
	return idgen.WithPrefix("rem_")
}
