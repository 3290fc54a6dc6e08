// Package goals tracks per-rep monthly sales targets and their progress
// against live earnings.
package goals

import (
	"context"
	"errors"
	"time"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/idgen"
)

// Errors
var (
	ErrGoalNotFound   = errors.New("goal not found")
	ErrGoalExists     = errors.New("goal already exists for this period")
	ErrInvalidRequest = errors.New("invalid goal request")
	ErrInvalidPeriod  = errors.New("invalid period key")
)

// Goal is one rep's targets for one fiscal month.
type Goal struct {
	ID               string    `json:"id"`
	RepID            string    `json:"repId"`
	Period           string    `json:"period"` // fiscal key, e.g. "2026-03"
	InternetTarget   int       `json:"internetTarget"`
	MobileTarget     int       `json:"mobileTarget"`
	CommissionTarget float64   `json:"commissionTarget"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Progress joins a goal with what the rep has actually attained. Percentages
// are whole numbers; a zero target reports zero percent rather than dividing
// by zero.
type Progress struct {
	Goal               *Goal  `json:"goal"`
	InternetAttained   int    `json:"internetAttained"`
	MobileAttained     int    `json:"mobileAttained"`
	CommissionAttained int    `json:"commissionAttained"`
	InternetPercent    int    `json:"internetPercent"`
	MobilePercent      int    `json:"mobilePercent"`
	CommissionPercent  int    `json:"commissionPercent"`
	Tier               string `json:"tier"`
}

// Store persists goals.
type Store interface {
	Create(ctx context.Context, goal *Goal) error
	Get(ctx context.Context, id string) (*Goal, error)
	GetByRepPeriod(ctx context.Context, repID, period string) (*Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id string) error
	ListByRep(ctx context.Context, repID string) ([]*Goal, error)
}

// Request types for handlers.

// UpsertGoalRequest is the request body for POST and PUT goal endpoints.
type UpsertGoalRequest struct {
	Period           string  `json:"period" binding:"required"`
	InternetTarget   int     `json:"internetTarget"`
	MobileTarget     int     `json:"mobileTarget"`
	CommissionTarget float64 `json:"commissionTarget"`
}

func generateGoalID() string {
	return idgen.WithPrefix("goal_")
}
