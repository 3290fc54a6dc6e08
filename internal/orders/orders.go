// Package orders manages the sales-order lifecycle.
//
// Flow:
//  1. Rep books an order → commission estimated at the rep's current tier
//  2. Install gets scheduled → appears on the install calendar
//  3. Install completes (or the order cancels) → order is terminal
//
// Cancelled orders drop out of every earnings aggregation.
package orders

import (
	"context"
	"errors"
	"time"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/commission"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/idgen"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/pagination"
)

// Errors
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidRequest    = errors.New("invalid order request")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderTerminal     = errors.New("order is already installed or cancelled")
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusScheduled OrderStatus = "scheduled"
	StatusInstalled OrderStatus = "installed"
	StatusCancelled OrderStatus = "cancelled"
)

// Order is one booked sale.
type Order struct {
	ID             string     `json:"id"`
	RepID          string     `json:"repId"`
	CustomerName   string     `json:"customerName"`
	CustomerPhone  string     `json:"customerPhone,omitempty"`
	HasInternet    bool       `json:"hasInternet"`
	MobileLines    int        `json:"mobileLines"`
	VoiceLines     int        `json:"voiceLines"`
	HasTV          bool       `json:"hasTv"`
	HasWIB         bool       `json:"hasWib"`
	HasGigInternet bool       `json:"hasGigInternet"`
	SBCSeats       int        `json:"sbcSeats"`
	MonthlyTotal   float64    `json:"monthlyTotal"`
	Status         string     `json:"status"`
	Estimate       int        `json:"estimate"`
	InstallAt      *time.Time `json:"installAt,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// IsTerminal reports whether the order can no longer change status.
func (o *Order) IsTerminal() bool {
	return o.Status == string(StatusInstalled) || o.Status == string(StatusCancelled)
}

// CommissionInput normalizes an order for the commission engine. Every field
// defaults to zero, so partially-filled orders estimate cleanly.
func (o *Order) CommissionInput() commission.OrderInput {
	return commission.OrderInput{
		HasInternet:    o.HasInternet,
		MobileLines:    o.MobileLines,
		VoiceLines:     o.VoiceLines,
		HasTV:          o.HasTV,
		HasWIB:         o.HasWIB,
		HasGigInternet: o.HasGigInternet,
		SBCSeats:       o.SBCSeats,
		MonthlyTotal:   o.MonthlyTotal,
	}
}

// Store persists orders.
type Store interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, order *Order) error
	// ListByRep returns a rep's orders newest first, starting after the
	// cursor when one is given. Callers fetch limit+1 rows to detect
	// whether another page exists.
	ListByRep(ctx context.Context, repID string, after *pagination.Cursor, limit int) ([]*Order, error)
	ListByRepBetween(ctx context.Context, repID string, start, end time.Time) ([]*Order, error)
	ListScheduledBetween(ctx context.Context, start, end time.Time) ([]*Order, error)
}

// Request/response types for handlers.

// CreateOrderRequest is the request body for POST /v1/orders.
type CreateOrderRequest struct {
	RepID          string  `json:"repId" binding:"required"`
	CustomerName   string  `json:"customerName" binding:"required"`
	CustomerPhone  string  `json:"customerPhone"`
	HasInternet    bool    `json:"hasInternet"`
	MobileLines    int     `json:"mobileLines"`
	VoiceLines     int     `json:"voiceLines"`
	HasTV          bool    `json:"hasTv"`
	HasWIB         bool    `json:"hasWib"`
	HasGigInternet bool    `json:"hasGigInternet"`
	SBCSeats       int     `json:"sbcSeats"`
	MonthlyTotal   float64 `json:"monthlyTotal"`
	Notes          string  `json:"notes"`
}

// ScheduleInstallRequest is the request body for POST /v1/orders/:id/schedule.
type ScheduleInstallRequest struct {
	InstallAt time.Time `json:"installAt" binding:"required"`
}

// EstimateRequest is the request body for POST /v1/orders/estimate. When
// InternetCount is nil the engine's default count is assumed.
type EstimateRequest struct {
	HasInternet    bool    `json:"hasInternet"`
	MobileLines    int     `json:"mobileLines"`
	VoiceLines     int     `json:"voiceLines"`
	HasTV          bool    `json:"hasTv"`
	HasWIB         bool    `json:"hasWib"`
	HasGigInternet bool    `json:"hasGigInternet"`
	SBCSeats       int     `json:"sbcSeats"`
	MonthlyTotal   float64 `json:"monthlyTotal"`
	InternetCount  *int    `json:"internetCount"`
}

// Input converts the request to engine input.
func (r EstimateRequest) Input() commission.OrderInput {
	return commission.OrderInput{
		HasInternet:    r.HasInternet,
		MobileLines:    r.MobileLines,
		VoiceLines:     r.VoiceLines,
		HasTV:          r.HasTV,
		HasWIB:         r.HasWIB,
		HasGigInternet: r.HasGigInternet,
		SBCSeats:       r.SBCSeats,
		MonthlyTotal:   r.MonthlyTotal,
	}
}

func generateOrderID() string {
	return idgen.WithPrefix("ord_")
}
