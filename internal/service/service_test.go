package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kshamiyah/investbot/internal/alerting"
	"github.com/kshamiyah/investbot/internal/ledger"
	"github.com/kshamiyah/investbot/internal/market"
	"github.com/kshamiyah/investbot/internal/scanner"
	"github.com/kshamiyah/investbot/internal/watch"
)

type staticFilings struct{ events []scanner.FilingEvent }

func (s staticFilings) Scan(context.Context) []scanner.FilingEvent { return s.events }

type staticPrices struct{ events []scanner.PriceMoveEvent }

func (s staticPrices) Scan(context.Context) []scanner.PriceMoveEvent { return s.events }

type captureNotifier struct {
	notes []alerting.Notification
	err   error
}

func (c *captureNotifier) Notify(_ context.Context, note alerting.Notification) error {
	if c.err != nil {
		return c.err
	}
	c.notes = append(c.notes, note)
	return nil
}

func clockAtHour(t *testing.T, hour, minute int) *market.Clock {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	now := time.Date(2025, 3, 4, hour, minute, 0, 0, loc)
	return market.NewClockAt(loc, func() time.Time { return now })
}

func emptyLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	return ledger.New(filepath.Join(t.TempDir(), "alerts.log"), zerolog.Nop())
}

func filingFixture() scanner.FilingEvent {
	return scanner.FilingEvent{
		Filer:    watch.Filer{Name: "Warren Buffett", CIK: "1067983", Company: "Berkshire Hathaway", Strategy: "Value"},
		Form:     "13F-HR", FilingDate: "2025-03-04", AccessionNumber: "acc-1",
		AlertKey: "file-1067983-acc-1",
	}
}

func moveFixture(changePct float64) scanner.PriceMoveEvent {
	return scanner.PriceMoveEvent{
		Ticker: "AAPL", Company: "Apple Inc.",
		Current:       decimal.NewFromInt(104),
		PreviousClose: decimal.NewFromInt(100),
		ChangePct:     decimal.NewFromFloat(changePct),
		ChangeAmount:  decimal.NewFromFloat(changePct),
		Threshold:     decimal.NewFromFloat(3.5),
		AlertKey:      "price-AAPL-2025-03-04-10",
	}
}

func TestRunScanDeliversAndMarksBothBatches(t *testing.T) {
	led := emptyLedger(t)
	notifier := &captureNotifier{}

	svc := New(
		staticFilings{[]scanner.FilingEvent{filingFixture()}},
		staticPrices{[]scanner.PriceMoveEvent{moveFixture(4)}},
		notifier, led, clockAtHour(t, 10, 0), watch.Default(), nil, zerolog.Nop(),
	)

	count := svc.RunScan(context.Background())
	if count != 2 {
		t.Fatalf("batch count = %d, want 2", count)
	}
	if len(notifier.notes) != 2 {
		t.Fatalf("deliveries = %d, want 2", len(notifier.notes))
	}
	if notifier.notes[0].Urgency != alerting.UrgencyCritical {
		t.Errorf("filing urgency = %s, want CRITICAL", notifier.notes[0].Urgency)
	}
	if notifier.notes[1].Urgency != alerting.UrgencyMedium {
		t.Errorf("price urgency for 4%% = %s, want MEDIUM", notifier.notes[1].Urgency)
	}
	if !led.Has("file-1067983-acc-1") || !led.Has("price-AAPL-2025-03-04-10") {
		t.Fatal("delivered identities must be marked in the ledger")
	}
}

func TestRunScanDeliveryFailureLeavesEventsUnmarked(t *testing.T) {
	led := emptyLedger(t)
	notifier := &captureNotifier{err: errors.New("telegram down")}

	svc := New(
		staticFilings{[]scanner.FilingEvent{filingFixture()}},
		staticPrices{nil},
		notifier, led, clockAtHour(t, 10, 0), watch.Default(), nil, zerolog.Nop(),
	)

	if count := svc.RunScan(context.Background()); count != 0 {
		t.Fatalf("batch count = %d, want 0 on delivery failure", count)
	}
	if led.Has("file-1067983-acc-1") {
		t.Fatal("failed delivery must not mark the ledger; events stay eligible for retry")
	}
}

func TestRunScanPriceUrgencyEscalation(t *testing.T) {
	notifier := &captureNotifier{}
	svc := New(
		staticFilings{nil},
		staticPrices{[]scanner.PriceMoveEvent{moveFixture(4), moveFixture(12)}},
		notifier, emptyLedger(t), clockAtHour(t, 10, 0), watch.Default(), nil, zerolog.Nop(),
	)

	svc.RunScan(context.Background())
	if len(notifier.notes) != 1 {
		t.Fatalf("deliveries = %d, want 1", len(notifier.notes))
	}
	if notifier.notes[0].Urgency != alerting.UrgencyCritical {
		t.Fatalf("urgency = %s, want CRITICAL (highest tier in batch)", notifier.notes[0].Urgency)
	}
}

func TestRunScanIdleDaySendsSummaryOnceNotCounted(t *testing.T) {
	led := emptyLedger(t)
	notifier := &captureNotifier{}
	// 16:45 Eastern on a weekday: inside the end-of-day window.
	svc := New(staticFilings{nil}, staticPrices{nil}, notifier, led, clockAtHour(t, 16, 45), watch.Default(), nil, zerolog.Nop())

	count := svc.RunScan(context.Background())
	if count != 0 {
		t.Fatalf("summary must not be counted as an alert batch, got %d", count)
	}
	if len(notifier.notes) != 1 || notifier.notes[0].Urgency != alerting.UrgencyLow {
		t.Fatalf("expected one LOW-urgency summary delivery, got %+v", notifier.notes)
	}
	if !led.Has("summary-2025-03-04") {
		t.Fatal("summary identity should be marked")
	}

	// A second pass the same day must stay silent.
	svc.RunScan(context.Background())
	if len(notifier.notes) != 1 {
		t.Fatalf("summary sent twice in one day: %d deliveries", len(notifier.notes))
	}
}

func TestRunScanNoSummaryOutsideWindow(t *testing.T) {
	notifier := &captureNotifier{}
	svc := New(staticFilings{nil}, staticPrices{nil}, notifier, emptyLedger(t), clockAtHour(t, 10, 0), watch.Default(), nil, zerolog.Nop())

	svc.RunScan(context.Background())
	if len(notifier.notes) != 0 {
		t.Fatalf("no summary expected outside 16:30-17:00, got %+v", notifier.notes)
	}
}

func TestRunScanNoSummaryWhenAlertsWereSent(t *testing.T) {
	notifier := &captureNotifier{}
	svc := New(
		staticFilings{[]scanner.FilingEvent{filingFixture()}},
		staticPrices{nil},
		notifier, emptyLedger(t), clockAtHour(t, 16, 45), watch.Default(), nil, zerolog.Nop(),
	)

	if count := svc.RunScan(context.Background()); count != 1 {
		t.Fatalf("batch count = %d, want 1", count)
	}
	for _, note := range notifier.notes {
		if note.Urgency == alerting.UrgencyLow {
			t.Fatal("summary must be suppressed when alert batches were sent")
		}
	}
}

func TestRunScanNilNotifierNothingMarked(t *testing.T) {
	led := emptyLedger(t)
	svc := New(
		staticFilings{[]scanner.FilingEvent{filingFixture()}},
		staticPrices{nil},
		nil, led, clockAtHour(t, 10, 0), watch.Default(), nil, zerolog.Nop(),
	)

	if count := svc.RunScan(context.Background()); count != 0 {
		t.Fatalf("batch count = %d, want 0 without a notifier", count)
	}
	if led.Len() != 0 {
		t.Fatal("nothing may be marked when delivery is impossible")
	}
}
