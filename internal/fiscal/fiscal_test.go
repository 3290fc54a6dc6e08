package fiscal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodFor_MidMonth(t *testing.T) {
	// March 10th sits in the period Feb 28 18:00 -> Mar 28 18:00.
	at := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	p := PeriodFor(at)

	assert.Equal(t, time.Date(2026, time.February, 28, 18, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2026, time.March, 28, 18, 0, 0, 0, time.UTC), p.End)
	assert.Equal(t, "2026-03", p.Key)
}

func TestPeriodFor_BoundaryInstant(t *testing.T) {
	// Exactly at the rollover the new period begins.
	at := time.Date(2026, time.March, 28, 18, 0, 0, 0, time.UTC)
	p := PeriodFor(at)

	assert.Equal(t, at, p.Start)
	assert.Equal(t, "2026-04", p.Key)

	// One second earlier still belongs to the outgoing period.
	before := PeriodFor(at.Add(-time.Second))
	assert.Equal(t, "2026-03", before.Key)
	assert.Equal(t, at, before.End)
}

func TestPeriodFor_LateMonth(t *testing.T) {
	// March 30th is already in the April period.
	at := time.Date(2026, time.March, 30, 9, 0, 0, 0, time.UTC)
	p := PeriodFor(at)

	assert.Equal(t, "2026-04", p.Key)
	assert.Equal(t, time.Date(2026, time.March, 28, 18, 0, 0, 0, time.UTC), p.Start)
}

func TestPeriodFor_YearRollover(t *testing.T) {
	at := time.Date(2026, time.December, 29, 0, 0, 0, 0, time.UTC)
	p := PeriodFor(at)

	assert.Equal(t, "2027-01", p.Key)
	assert.Equal(t, time.Date(2027, time.January, 28, 18, 0, 0, 0, time.UTC), p.End)

	early := PeriodFor(time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2026-01", early.Key)
	assert.Equal(t, time.Date(2025, time.December, 28, 18, 0, 0, 0, time.UTC), early.Start)
}

func TestPeriod_Contains(t *testing.T) {
	p := PeriodFor(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))

	assert.True(t, p.Contains(p.Start))
	assert.False(t, p.Contains(p.End)) // End is exclusive
	assert.True(t, p.Contains(p.End.Add(-time.Nanosecond)))
	assert.False(t, p.Contains(p.Start.Add(-time.Nanosecond)))
}

func TestPeriodForKey_RoundTrip(t *testing.T) {
	at := time.Date(2026, time.July, 4, 10, 0, 0, 0, time.UTC)
	p := PeriodFor(at)

	got, ok := PeriodForKey(p.Key, time.UTC)
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestPeriodForKey_Invalid(t *testing.T) {
	_, ok := PeriodForKey("not-a-key", time.UTC)
	assert.False(t, ok)
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "2026-03", KeyFor(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)))
}
