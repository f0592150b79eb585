package market

import (
	"testing"
	"time"
)

func eastern(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func clockAt(t *testing.T, instant time.Time) *Clock {
	t.Helper()
	return NewClockAt(eastern(t), func() time.Time { return instant })
}

func TestSessionBoundaries(t *testing.T) {
	loc := eastern(t)
	// Tuesday 2025-03-04 is a regular trading day.
	day := time.Date(2025, 3, 4, 0, 0, 0, 0, loc)

	cases := []struct {
		hour, min int
		want      Session
	}{
		{0, 0, SessionClosed},
		{3, 59, SessionClosed},
		{4, 0, SessionPreMarket},
		{9, 29, SessionPreMarket},
		{9, 30, SessionRegular},
		{15, 59, SessionRegular},
		{16, 0, SessionAfterHours},
		{19, 59, SessionAfterHours},
		{20, 0, SessionClosed},
		{23, 30, SessionClosed},
	}

	clock := clockAt(t, day)
	for _, tc := range cases {
		at := time.Date(2025, 3, 4, tc.hour, tc.min, 0, 0, loc)
		if got := clock.SessionAt(at); got != tc.want {
			t.Errorf("SessionAt(%02d:%02d) = %s, want %s", tc.hour, tc.min, got, tc.want)
		}
	}
}

func TestSessionWeekendAndHoliday(t *testing.T) {
	loc := eastern(t)
	clock := clockAt(t, time.Now())

	// Saturday midday.
	sat := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	if got := clock.SessionAt(sat); got != SessionClosed {
		t.Errorf("Saturday session = %s, want closed", got)
	}

	// Independence Day falls on a Friday; the time of day must not matter.
	july4 := time.Date(2025, 7, 4, 11, 0, 0, 0, loc)
	if got := clock.SessionAt(july4); got != SessionClosed {
		t.Errorf("holiday session = %s, want closed", got)
	}
	if !clock.IsHoliday(july4) {
		t.Error("2025-07-04 should be a listed holiday")
	}
}

func TestEndOfTradingDayWindow(t *testing.T) {
	loc := eastern(t)
	clock := clockAt(t, time.Now())

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before window", time.Date(2025, 3, 4, 16, 29, 0, 0, loc), false},
		{"window opens", time.Date(2025, 3, 4, 16, 30, 0, 0, loc), true},
		{"inside window", time.Date(2025, 3, 4, 16, 45, 0, 0, loc), true},
		{"window closes", time.Date(2025, 3, 4, 17, 0, 0, 0, loc), true},
		{"after window", time.Date(2025, 3, 4, 17, 1, 0, 0, loc), false},
		{"weekend", time.Date(2025, 3, 8, 16, 45, 0, 0, loc), false},
		{"holiday", time.Date(2025, 12, 25, 16, 45, 0, 0, loc), false},
	}

	for _, tc := range cases {
		if got := clock.EndOfTradingDayAt(tc.at); got != tc.want {
			t.Errorf("%s: EndOfTradingDayAt = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSessionMultipliers(t *testing.T) {
	cases := map[Session]string{
		SessionClosed:     "2",
		SessionPreMarket:  "1.3",
		SessionAfterHours: "1.1",
		SessionRegular:    "1",
	}
	for session, want := range cases {
		if got := session.Multiplier().String(); got != want {
			t.Errorf("%s multiplier = %s, want %s", session, got, want)
		}
	}
}

func TestNowUsesReferenceTimezone(t *testing.T) {
	loc := eastern(t)
	// Inject a UTC instant; Now must surface it in Eastern.
	utc := time.Date(2025, 3, 4, 20, 0, 0, 0, time.UTC)
	clock := NewClockAt(loc, func() time.Time { return utc })

	now := clock.Now()
	if now.Location() != loc {
		t.Fatalf("Now location = %v, want %v", now.Location(), loc)
	}
	if now.Hour() != 15 {
		t.Fatalf("Now hour = %d, want 15 (EST offset)", now.Hour())
	}
}
