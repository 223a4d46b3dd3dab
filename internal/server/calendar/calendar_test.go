package calendar

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auckland(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Pacific/Auckland")
	require.NoError(t, err)
	return loc
}

func newTestCalendar(t *testing.T, now time.Time) (*Calendar, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(now)
	return New(clock, auckland(t)), clock
}

func TestCalendar_TodayBoundaries(t *testing.T) {
	loc := auckland(t)
	c, _ := newTestCalendar(t, time.Date(2026, 10, 15, 10, 30, 0, 0, loc))

	assert.True(t, c.StartOfToday().Equal(time.Date(2026, 10, 15, 0, 0, 0, 0, loc)))
	assert.True(t, c.StartOfTomorrow().Equal(time.Date(2026, 10, 16, 0, 0, 0, 0, loc)))
	assert.True(t, c.EndOfToday().Equal(time.Date(2026, 10, 15, 23, 59, 59, 999999999, loc)))

	today := c.Today()
	assert.True(t, today.Contains(today.Start))
	assert.False(t, today.Contains(today.End))
	assert.True(t, today.Contains(c.EndOfToday()))
}

func TestCalendar_UsesConfiguredZoneNotUTC(t *testing.T) {
	// 12:00 UTC on the 14th is already 01:00 on the 15th in Auckland (NZDT).
	c, _ := newTestCalendar(t, time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, "2026-10-15", c.DayKey(c.Now()))
	assert.Equal(t, "2026-10-15", c.StartOfToday().Format(DayKeyLayout))
}

func TestCalendar_Yesterday(t *testing.T) {
	loc := auckland(t)
	c, _ := newTestCalendar(t, time.Date(2026, 10, 15, 8, 0, 0, 0, loc))

	y := c.Yesterday()
	assert.True(t, y.Start.Equal(time.Date(2026, 10, 14, 0, 0, 0, 0, loc)))
	assert.True(t, y.End.Equal(time.Date(2026, 10, 15, 0, 0, 0, 0, loc)))
	assert.True(t, y.Contains(time.Date(2026, 10, 14, 23, 59, 59, 0, loc)))
	assert.False(t, y.Contains(time.Date(2026, 10, 15, 0, 0, 0, 0, loc)))
}

func TestCalendar_LastNDays(t *testing.T) {
	loc := auckland(t)
	c, _ := newTestCalendar(t, time.Date(2026, 10, 15, 8, 0, 0, 0, loc))

	tests := []struct {
		name      string
		n         int
		wantStart time.Time
	}{
		{name: "week", n: 7, wantStart: time.Date(2026, 10, 9, 0, 0, 0, 0, loc)},
		{name: "month", n: 30, wantStart: time.Date(2026, 9, 16, 0, 0, 0, 0, loc)},
		{name: "today only", n: 1, wantStart: time.Date(2026, 10, 15, 0, 0, 0, 0, loc)},
		{name: "non-positive clamps to today", n: 0, wantStart: time.Date(2026, 10, 15, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := c.LastNDays(tt.n)
			assert.True(t, p.Start.Equal(tt.wantStart), "start %v", p.Start)
			assert.True(t, p.End.Equal(c.StartOfTomorrow()), "end %v", p.End)
		})
	}
}

func TestCalendar_DaylightSavingDayIsShort(t *testing.T) {
	// NZ daylight saving starts on 2026-09-27 at 02:00, so that day has 23 hours.
	loc := auckland(t)
	c, _ := newTestCalendar(t, time.Date(2026, 9, 27, 12, 0, 0, 0, loc))

	today := c.Today()
	assert.Equal(t, 23*time.Hour, today.End.Sub(today.Start))
	assert.Equal(t, 0, today.End.In(loc).Hour())
}

func TestCalendar_FollowsClock(t *testing.T) {
	loc := auckland(t)
	c, clock := newTestCalendar(t, time.Date(2026, 10, 15, 23, 59, 0, 0, loc))

	assert.Equal(t, "2026-10-15", c.DayKey(c.Now()))
	clock.Advance(2 * time.Minute)
	assert.Equal(t, "2026-10-16", c.DayKey(c.Now()))
}

func TestLoad(t *testing.T) {
	clock := clockwork.NewFakeClock()

	c, err := Load(clock, "Pacific/Auckland")
	require.NoError(t, err)
	assert.Equal(t, "Pacific/Auckland", c.Location().String())

	_, err = Load(clock, "Not/AZone")
	require.Error(t, err)
}

func TestNew_NilLocationIsUTC(t *testing.T) {
	c := New(clockwork.NewFakeClockAt(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)), nil)
	assert.Equal(t, time.UTC, c.Location())
	assert.Equal(t, "2026-01-02", c.DayKey(c.Now()))
}
