package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session identifies a phase of the US equity trading day.
type Session string

const (
	SessionClosed     Session = "closed"
	SessionPreMarket  Session = "pre_market"
	SessionRegular    Session = "regular"
	SessionAfterHours Session = "after_hours"
)

// Multiplier returns the alert-threshold multiplier for the session.
// Thinner liquidity outside regular hours produces noisier percentage
// moves, so the bar for "significant" rises.
func (s Session) Multiplier() decimal.Decimal {
	switch s {
	case SessionClosed:
		return decimal.NewFromFloat(2.0)
	case SessionPreMarket:
		return decimal.NewFromFloat(1.3)
	case SessionAfterHours:
		return decimal.NewFromFloat(1.1)
	default:
		return decimal.NewFromInt(1)
	}
}

// Emoji returns the marker used in delivered message headers.
func (s Session) Emoji() string {
	switch s {
	case SessionClosed:
		return "🌙"
	case SessionPreMarket:
		return "🌅"
	case SessionRegular:
		return "📈"
	case SessionAfterHours:
		return "🌆"
	default:
		return "❓"
	}
}

// Label renders the session name for humans ("Pre Market", "Regular").
func (s Session) Label() string {
	switch s {
	case SessionPreMarket:
		return "Pre Market"
	case SessionAfterHours:
		return "After Hours"
	case SessionRegular:
		return "Regular"
	default:
		return "Closed"
	}
}

// US equity market holidays, calendar dates in Eastern time.
var holidays2025 = []string{
	"2025-01-01", // New Year's Day
	"2025-01-20", // Martin Luther King Jr. Day
	"2025-02-17", // Presidents' Day
	"2025-04-18", // Good Friday
	"2025-05-26", // Memorial Day
	"2025-06-19", // Juneteenth
	"2025-07-04", // Independence Day
	"2025-09-01", // Labor Day
	"2025-11-27", // Thanksgiving
	"2025-12-25", // Christmas
}

// Clock derives trading-session context from wall-clock time in a fixed
// reference timezone. It holds no mutable state; every decision is a pure
// function of the supplied instant plus the static holiday calendar.
type Clock struct {
	loc      *time.Location
	now      func() time.Time
	holidays map[string]struct{}
}

// NewClock builds a Clock pinned to US Eastern time.
func NewClock() (*Clock, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, err
	}
	return newClock(loc, time.Now), nil
}

// NewClockAt builds a Clock with an injected time source. Intended for tests.
func NewClockAt(loc *time.Location, now func() time.Time) *Clock {
	return newClock(loc, now)
}

func newClock(loc *time.Location, now func() time.Time) *Clock {
	hols := make(map[string]struct{}, len(holidays2025))
	for _, d := range holidays2025 {
		hols[d] = struct{}{}
	}
	return &Clock{loc: loc, now: now, holidays: hols}
}

// Now returns the current instant in the reference timezone.
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Session reports the current trading-session phase.
func (c *Clock) Session() Session {
	return c.SessionAt(c.Now())
}

// SessionAt reports the trading-session phase at the given instant.
// Weekends and holidays force closed regardless of time of day.
func (c *Clock) SessionAt(t time.Time) Session {
	t = t.In(c.loc)
	if c.isWeekend(t) || c.IsHoliday(t) {
		return SessionClosed
	}

	minutes := t.Hour()*60 + t.Minute()
	switch {
	case minutes < 4*60:
		return SessionClosed
	case minutes < 9*60+30:
		return SessionPreMarket
	case minutes < 16*60:
		return SessionRegular
	case minutes < 20*60:
		return SessionAfterHours
	default:
		return SessionClosed
	}
}

// IsHoliday reports whether the instant falls on a listed market holiday.
// Only the calendar date is compared.
func (c *Clock) IsHoliday(t time.Time) bool {
	_, ok := c.holidays[t.In(c.loc).Format(time.DateOnly)]
	return ok
}

func (c *Clock) isWeekend(t time.Time) bool {
	wd := t.In(c.loc).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// EndOfTradingDay reports whether the daily-summary window is open:
// a non-holiday weekday between 16:30 and 17:00 Eastern inclusive.
func (c *Clock) EndOfTradingDay() bool {
	return c.EndOfTradingDayAt(c.Now())
}

// EndOfTradingDayAt is EndOfTradingDay for an explicit instant.
func (c *Clock) EndOfTradingDayAt(t time.Time) bool {
	t = t.In(c.loc)
	if c.isWeekend(t) || c.IsHoliday(t) {
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= 16*60+30 && minutes <= 17*60
}
