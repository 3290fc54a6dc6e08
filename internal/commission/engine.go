package commission

import (
	"fmt"
	"math"
)

// OrderInput is a fully-populated, normalized view of an order for
// estimation. Callers map their own order types through this struct so the
// engine never sees missing fields; absent values are zero and the engine
// stays total over any input.
type OrderInput struct {
	HasInternet    bool    `json:"hasInternet"`
	MobileLines    int     `json:"mobileLines"`
	VoiceLines     int     `json:"voiceLines"`
	HasTV          bool    `json:"hasTv"`
	HasWIB         bool    `json:"hasWib"`
	HasGigInternet bool    `json:"hasGigInternet"`
	SBCSeats       int     `json:"sbcSeats"`
	MonthlyTotal   float64 `json:"monthlyTotal"`
}

// Totals is the rep's aggregate fiscal-month snapshot: per-product unit
// counts plus the already-computed MRR and à-la-carte payouts. The engine
// reads it; it never mutates or owns it.
type Totals struct {
	Internet int     `json:"internet"`
	Mobile   int     `json:"mobile"`
	Voice    int     `json:"voice"`
	Video    int     `json:"video"`
	MRR      float64 `json:"mrr"`
	Alacarte float64 `json:"alacarte"`
}

// Breakdown decomposes a projected commission increase by product.
type Breakdown struct {
	Internet int `json:"internet"`
	Mobile   int `json:"mobile"`
	Voice    int `json:"voice"`
	Video    int `json:"video"`
	MRR      int `json:"mrr"`
}

// Projection is the result of a next-tier computation: what crossing into
// the next tier with the minimum number of additional internet sales would
// do to the rep's monthly commission. All monetary figures are rounded to
// whole currency units.
type Projection struct {
	CurrentLabel    string    `json:"currentTier"`
	NextLabel       string    `json:"nextTier"`
	InternetNeeded  int       `json:"internetNeeded"`
	CurrentTotal    int       `json:"currentTotal"`
	ProjectedTotal  int       `json:"projectedTotal"`
	Increase        int       `json:"increase"`
	PercentIncrease int       `json:"percentIncrease"`
	ByProduct       Breakdown `json:"breakdown"`
}

// Engine resolves tiers and estimates commissions against one immutable
// schedule. Safe for concurrent use.
type Engine struct {
	tiers    []RateTier
	alacarte AlacarteRates
	alaMin   int
}

// NewEngine builds an engine from a schedule. The schedule is validated
// once here; every per-call method is total and never returns an error.
func NewEngine(s Schedule) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schedule: %w", err)
	}
	tiers := make([]RateTier, len(s.Tiers))
	copy(tiers, s.Tiers)
	return &Engine{
		tiers:    tiers,
		alacarte: s.Alacarte,
		alaMin:   s.AlacarteMinInternet,
	}, nil
}

// MustEngine is NewEngine for schedules known-good at compile time, such as
// DefaultSchedule.
func MustEngine(s Schedule) *Engine {
	e, err := NewEngine(s)
	if err != nil {
		panic(err)
	}
	return e
}

// TierIndex returns the position in the tier table for an internet count.
// Counts below every tier fall back to 0, the lowest tier.
func (e *Engine) TierIndex(internetCount int) int {
	for i, t := range e.tiers {
		if t.contains(internetCount) {
			return i
		}
	}
	return 0
}

// TierFor returns the rate tier active at an internet count.
func (e *Engine) TierFor(internetCount int) RateTier {
	return e.tiers[e.TierIndex(internetCount)]
}

// TierLabel formats the active tier's bounds, "5-9" or "40+".
func (e *Engine) TierLabel(internetCount int) string {
	t := e.TierFor(internetCount)
	if t.Label != "" {
		return t.Label
	}
	if t.Max == Unbounded {
		return fmt.Sprintf("%d+", t.Min)
	}
	return fmt.Sprintf("%d-%d", t.Min, t.Max)
}

// AtMaxTier reports whether the count already resolves to the terminal tier.
func (e *Engine) AtMaxTier(internetCount int) bool {
	return e.TierIndex(internetCount) == len(e.tiers)-1
}

// Eligible reports whether the count clears the à-la-carte threshold, which
// also gates every non-internet product.
func (e *Engine) Eligible(internetCount int) bool {
	return internetCount > e.alaMin
}

// AlacarteRates returns the flat à-la-carte rates.
func (e *Engine) AlacarteRates() AlacarteRates {
	return e.alacarte
}

// EstimateOrder computes the rounded commission contribution of a single
// order at the tier resolved from internetCount.
//
// Internet itself always pays at the tier rate. Every other line (mobile,
// voice, TV, MRR, and the à-la-carte products) is gated on the rep having
// cleared the eligibility threshold.
func (e *Engine) EstimateOrder(in OrderInput, internetCount int) int {
	rates := e.TierFor(internetCount)
	eligible := internetCount > e.alaMin

	total := 0.0
	if in.HasInternet {
		total += rates.Internet
	}
	if eligible {
		total += float64(in.MobileLines) * rates.Mobile
		total += float64(in.VoiceLines) * rates.Voice
		if in.HasTV {
			total += rates.Video
		}
		total += in.MonthlyTotal * rates.MRR
		if in.HasWIB {
			total += e.alacarte.WIB
		}
		if in.HasGigInternet {
			total += e.alacarte.GigInternet
		}
		total += float64(in.SBCSeats) * e.alacarte.SBCSeat
	}
	return int(math.Round(total))
}

// NextTier projects the commission impact of reaching the next tier with
// the minimum additional internet sales. Returns nil when the rep is
// already in the terminal tier.
//
// The internetCount parameter, not totals.Internet, is authoritative for
// tier position. The stored MRR payout is divided by the current tier's MRR
// rate to recover the underlying dollar base before re-rating; when the
// current rate is zero the stored value is treated as already raw. The
// à-la-carte payout carries into the projection only if the next tier's
// floor clears the eligibility threshold.
func (e *Engine) NextTier(internetCount int, totals Totals) *Projection {
	idx := e.TierIndex(internetCount)
	if idx >= len(e.tiers)-1 {
		return nil
	}
	cur := e.tiers[idx]
	next := e.tiers[idx+1]

	needed := next.Min - internetCount

	rawMRR := totals.MRR
	if cur.MRR > 0 {
		rawMRR = totals.MRR / cur.MRR
	}

	currentTotal := float64(totals.Internet)*cur.Internet +
		float64(totals.Mobile)*cur.Mobile +
		float64(totals.Voice)*cur.Voice +
		float64(totals.Video)*cur.Video +
		rawMRR*cur.MRR +
		totals.Alacarte

	projected := float64(totals.Internet+needed)*next.Internet +
		float64(totals.Mobile)*next.Mobile +
		float64(totals.Voice)*next.Voice +
		float64(totals.Video)*next.Video +
		rawMRR*next.MRR
	if next.Min > e.alaMin {
		projected += totals.Alacarte
	}

	increase := projected - currentTotal
	percent := 0.0
	if currentTotal != 0 {
		percent = increase / currentTotal * 100
	}

	return &Projection{
		CurrentLabel:    e.TierLabel(internetCount),
		NextLabel:       e.labelFor(next),
		InternetNeeded:  needed,
		CurrentTotal:    int(math.Round(currentTotal)),
		ProjectedTotal:  int(math.Round(projected)),
		Increase:        int(math.Round(increase)),
		PercentIncrease: int(math.Round(percent)),
		ByProduct: Breakdown{
			Internet: int(math.Round(float64(totals.Internet) * (next.Internet - cur.Internet))),
			Mobile:   int(math.Round(float64(totals.Mobile) * (next.Mobile - cur.Mobile))),
			Voice:    int(math.Round(float64(totals.Voice) * (next.Voice - cur.Voice))),
			Video:    int(math.Round(float64(totals.Video) * (next.Video - cur.Video))),
			MRR:      int(math.Round(rawMRR * (next.MRR - cur.MRR))),
		},
	}
}

func (e *Engine) labelFor(t RateTier) string {
	if t.Label != "" {
		return t.Label
	}
	if t.Max == Unbounded {
		return fmt.Sprintf("%d+", t.Min)
	}
	return fmt.Sprintf("%d-%d", t.Min, t.Max)
}
