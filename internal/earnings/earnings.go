// Package earnings aggregates a rep's orders into fiscal-month commission
// figures: the per-product breakdown, the live totals fed to next-tier
// projections, and the rep's current tier.
//
// Every figure for one request is derived from a single store read, so the
// internet count that picks the tier and the product counts priced at that
// tier always describe the same set of orders.
package earnings

import (
	"math"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/commission"
	"github.com/FeliksML/sales-orders-manager-sub002/internal/fiscal"
)

// Row is one product line in a monthly breakdown.
type Row struct {
	Product string `json:"product"`
	Units   int    `json:"units"`
	Payout  int    `json:"payout"`
}

// Summary is a rep's full fiscal-month earnings picture.
type Summary struct {
	RepID         string        `json:"repId"`
	Period        fiscal.Period `json:"period"`
	InternetCount int           `json:"internetCount"`
	Tier          string        `json:"tier"`
	AtMaxTier     bool          `json:"atMaxTier"`
	Rows          []Row         `json:"rows"`
	Total         int           `json:"total"`
}

// TierInfo is the response for the tier lookup endpoint.
type TierInfo struct {
	RepID         string              `json:"repId"`
	Period        string              `json:"period"`
	InternetCount int                 `json:"internetCount"`
	Tier          commission.RateTier `json:"tier"`
	Label         string              `json:"label"`
	AtMaxTier     bool                `json:"atMaxTier"`
}

// snapshot is the single-read aggregate everything else is computed from.
type snapshot struct {
	internet int
	mobile   int
	voice    int
	video    int
	mrrBase  float64 // raw monthly-total dollars, not yet rated
	wib      int
	gig      int
	sbcSeats int
}

// totals converts the snapshot into the engine's aggregate form, pricing the
// MRR and à-la-carte payouts at the tier the snapshot's own count resolves.
func (s snapshot) totals(e *commission.Engine) commission.Totals {
	t := commission.Totals{
		Internet: s.internet,
		Mobile:   s.mobile,
		Voice:    s.voice,
		Video:    s.video,
	}
	if !e.Eligible(s.internet) {
		return t
	}
	rates := e.TierFor(s.internet)
	ala := e.AlacarteRates()
	t.MRR = s.mrrBase * rates.MRR
	t.Alacarte = float64(s.wib)*ala.WIB + float64(s.gig)*ala.GigInternet + float64(s.sbcSeats)*ala.SBCSeat
	return t
}

func round(v float64) int {
	return int(math.Round(v))
}
