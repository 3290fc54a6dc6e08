// Package fiscal implements the commission calendar.
//
// A fiscal month does not align with the calendar month: it runs from the
// 28th at 18:00 to the next 28th at 18:00, matching the carrier's billing
// cutoff. A period is keyed by the calendar month of its end boundary, so
// the period ending 2026-03-28 18:00 is "2026-03".
package fiscal

import "time"

// BoundaryDay is the day of month on which a fiscal month rolls over.
const BoundaryDay = 28

// BoundaryHour is the rollover hour on BoundaryDay.
const BoundaryHour = 18

// KeyLayout formats a period key, e.g. "2026-03".
const KeyLayout = "2006-01"

// Period is one fiscal month. Start is inclusive, End exclusive.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Key   string    `json:"key"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// boundary returns the rollover instant in the given year/month, in t's location.
func boundary(year int, month time.Month, loc *time.Location) time.Time {
	return time.Date(year, month, BoundaryDay, BoundaryHour, 0, 0, 0, loc)
}

// PeriodFor returns the fiscal month containing t.
func PeriodFor(t time.Time) Period {
	b := boundary(t.Year(), t.Month(), t.Location())
	var start, end time.Time
	if t.Before(b) {
		start = boundary(t.Year(), t.Month()-1, t.Location())
		end = b
	} else {
		start = b
		end = boundary(t.Year(), t.Month()+1, t.Location())
	}
	return Period{Start: start, End: end, Key: end.Format(KeyLayout)}
}

// KeyFor returns the period key containing t.
func KeyFor(t time.Time) string {
	return PeriodFor(t).Key
}

// PeriodForKey resolves a period key ("2026-03") back to its period in loc.
// The bool is false when the key does not parse.
func PeriodForKey(key string, loc *time.Location) (Period, bool) {
	end, err := time.ParseInLocation(KeyLayout, key, loc)
	if err != nil {
		return Period{}, false
	}
	e := boundary(end.Year(), end.Month(), loc)
	s := boundary(end.Year(), end.Month()-1, loc)
	return Period{Start: s, End: e, Key: key}, true
}
