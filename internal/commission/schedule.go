// Package commission computes sales-rep commission estimates from a tiered
// rate schedule.
//
// The schedule maps a rep's rolling internet-unit count for the fiscal month
// to a rate tier; every product on an order pays a flat per-unit amount at
// that tier, plus a fractional rate on monthly recurring revenue. Products
// other than internet only pay out once the rep clears the à-la-carte
// eligibility threshold.
//
// Every entry point is a pure function over its arguments. The engine holds
// no state beyond the immutable schedule it was built with.
package commission

import (
	"errors"
	"fmt"
)

// Unbounded marks a tier with no upper limit on internet count.
const Unbounded = -1

// DefaultInternetCount is assumed when a caller has no earnings snapshot to
// derive the rep's current count from.
const DefaultInternetCount = 10

// RateTier is the rate schedule for one contiguous range of monthly
// internet-unit counts. Min and Max are inclusive; Max == Unbounded means
// the tier extends to infinity.
type RateTier struct {
	Min      int     `json:"min"`
	Max      int     `json:"max"`
	Internet float64 `json:"internet"`
	Mobile   float64 `json:"mobile"`
	Voice    float64 `json:"voice"`
	Video    float64 `json:"video"`
	MRR      float64 `json:"mrr"`
	Label    string  `json:"label"`
}

func (t RateTier) contains(n int) bool {
	if n < t.Min {
		return false
	}
	return t.Max == Unbounded || n <= t.Max
}

// AlacarteRates are flat rates for ancillary products that do not vary by
// tier but share the eligibility threshold.
type AlacarteRates struct {
	WIB         float64 `json:"wib"`
	GigInternet float64 `json:"gigInternet"`
	SBCSeat     float64 `json:"sbcSeat"`
}

// Schedule is the full commission configuration. Treat as immutable; the
// engine copies the tier slice at construction so later mutation of the
// caller's slice cannot leak in.
type Schedule struct {
	Tiers               []RateTier
	Alacarte            AlacarteRates
	AlacarteMinInternet int
}

// DefaultSchedule returns the production rate schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		Tiers: []RateTier{
			{Min: 0, Max: 4, Internet: 0, Mobile: 0, Voice: 0, Video: 0, MRR: 0, Label: "0-4"},
			{Min: 5, Max: 9, Internet: 100, Mobile: 75, Voice: 50, Video: 50, MRR: 0.25, Label: "5-9"},
			{Min: 10, Max: 19, Internet: 200, Mobile: 150, Voice: 100, Video: 100, MRR: 0.50, Label: "10-19"},
			{Min: 20, Max: 39, Internet: 300, Mobile: 200, Voice: 150, Video: 150, MRR: 0.60, Label: "20-39"},
			{Min: 40, Max: Unbounded, Internet: 400, Mobile: 250, Voice: 200, Video: 200, MRR: 0.75, Label: "40+"},
		},
		Alacarte: AlacarteRates{
			WIB:         100,
			GigInternet: 50,
			SBCSeat:     25,
		},
		AlacarteMinInternet: 4,
	}
}

// Validate checks the structural invariants the engine relies on: tiers are
// contiguous and exhaustive over [0, inf), the final tier is unbounded, and
// rates never decrease from one tier to the next.
func (s Schedule) Validate() error {
	if len(s.Tiers) == 0 {
		return errors.New("schedule has no tiers")
	}
	if s.Tiers[0].Min != 0 {
		return fmt.Errorf("first tier must start at 0, got %d", s.Tiers[0].Min)
	}
	last := len(s.Tiers) - 1
	for i, t := range s.Tiers {
		if i < last {
			if t.Max == Unbounded {
				return fmt.Errorf("tier %d is unbounded but not last", i)
			}
			if t.Max < t.Min {
				return fmt.Errorf("tier %d has max %d below min %d", i, t.Max, t.Min)
			}
			if s.Tiers[i+1].Min != t.Max+1 {
				return fmt.Errorf("gap between tier %d (max %d) and tier %d (min %d)",
					i, t.Max, i+1, s.Tiers[i+1].Min)
			}
		} else if t.Max != Unbounded {
			return fmt.Errorf("final tier must be unbounded, got max %d", t.Max)
		}
		if i == 0 {
			continue
		}
		prev := s.Tiers[i-1]
		if t.Internet < prev.Internet || t.Mobile < prev.Mobile ||
			t.Voice < prev.Voice || t.Video < prev.Video || t.MRR < prev.MRR {
			return fmt.Errorf("tier %d rates decrease relative to tier %d", i, i-1)
		}
	}
	if s.MRRRateValid() {
		return nil
	}
	return errors.New("mrr rates must be fractions in [0, 1]")
}

// MRRRateValid reports whether every tier's MRR rate is a fraction.
func (s Schedule) MRRRateValid() bool {
	for _, t := range s.Tiers {
		if t.MRR < 0 || t.MRR > 1 {
			return false
		}
	}
	return true
}
