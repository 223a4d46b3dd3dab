// Package calendar is the single source of truth for "what day is it".
// All day arithmetic happens in one timezone fixed at construction, against
// an injected clock, so results are deterministic under a fake clock.
package calendar

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"
)

// DayKeyLayout formats a day bucket label.
const DayKeyLayout = "2006-01-02"

// Period is a half-open interval [Start, End).
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Calendar buckets instants into calendar days of one location.
type Calendar struct {
	clock clockwork.Clock
	loc   *time.Location
}

// New returns a Calendar reading time from clock and bucketing days in loc.
// A nil loc means UTC.
func New(clock clockwork.Clock, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{clock: clock, loc: loc}
}

// Load resolves an IANA timezone name and returns a Calendar for it.
func Load(clock clockwork.Clock, tz string) (*Calendar, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	return New(clock, loc), nil
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant expressed in the calendar's location.
func (c *Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// DayOf returns the day bucket of t: midnight of its calendar day.
func (c *Calendar) DayOf(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// DayKey returns the YYYY-MM-DD label of t's day bucket.
func (c *Calendar) DayKey(t time.Time) string {
	return c.DayOf(t).Format(DayKeyLayout)
}

// StartOfToday is midnight of the current day.
func (c *Calendar) StartOfToday() time.Time {
	return c.DayOf(c.Now())
}

// StartOfTomorrow is midnight of the next day.
func (c *Calendar) StartOfTomorrow() time.Time {
	return c.StartOfToday().AddDate(0, 0, 1)
}

// EndOfToday is the last representable instant of today. Range checks in
// this module use StartOfTomorrow as an exclusive bound instead.
func (c *Calendar) EndOfToday() time.Time {
	return c.StartOfTomorrow().Add(-time.Nanosecond)
}

// Today covers the current day, end exclusive.
func (c *Calendar) Today() Period {
	return Period{Start: c.StartOfToday(), End: c.StartOfTomorrow()}
}

// Yesterday covers the day before today, end exclusive.
func (c *Calendar) Yesterday() Period {
	start := c.StartOfToday()
	return Period{Start: start.AddDate(0, 0, -1), End: start}
}

// LastNDays covers today and the n-1 calendar days before it.
func (c *Calendar) LastNDays(n int) Period {
	if n < 1 {
		n = 1
	}
	start := c.StartOfToday()
	return Period{Start: start.AddDate(0, 0, -(n - 1)), End: start.AddDate(0, 0, 1)}
}
