// Package service runs one monitoring pass: scan filings, scan prices,
// deliver whatever is new, and fall back to an idle-day summary.
package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kshamiyah/investbot/internal/alerting"
	"github.com/kshamiyah/investbot/internal/ledger"
	"github.com/kshamiyah/investbot/internal/market"
	"github.com/kshamiyah/investbot/internal/scanner"
	"github.com/kshamiyah/investbot/internal/storage"
	"github.com/kshamiyah/investbot/internal/watch"
)

// FilingSource produces newly-detected filing events.
type FilingSource interface {
	Scan(ctx context.Context) []scanner.FilingEvent
}

// PriceSource produces newly-detected price-move events.
type PriceSource interface {
	Scan(ctx context.Context) []scanner.PriceMoveEvent
}

// Service orchestrates one scan pass per invocation.
type Service struct {
	filings  FilingSource
	prices   PriceSource
	notifier alerting.Notifier
	ledger   *ledger.Ledger
	clock    *market.Clock
	registry *watch.Registry
	audit    storage.AlertHistory
	logger   zerolog.Logger
}

// New constructs the monitoring service. notifier and audit may be nil:
// a nil notifier makes every delivery fail (events stay eligible for the
// next run), a nil audit disables history recording.
func New(filings FilingSource, prices PriceSource, notifier alerting.Notifier, led *ledger.Ledger, clock *market.Clock, registry *watch.Registry, audit storage.AlertHistory, logger zerolog.Logger) *Service {
	return &Service{
		filings:  filings,
		prices:   prices,
		notifier: notifier,
		ledger:   led,
		clock:    clock,
		registry: registry,
		audit:    audit,
		logger:   logger.With().Str("component", "service").Logger(),
	}
}

// RunScan executes a single pass and returns the number of alert batches
// sent for filings and prices. A delivered idle-day summary is not
// included in the count: callers read the return as "market-event batches
// sent", and the summary is bookkeeping, not a market event.
func (s *Service) RunScan(ctx context.Context) int {
	session := s.clock.Session()
	s.logger.Info().Str("session", string(session)).Msg("running monitoring scan")

	batches := 0

	if events := s.filings.Scan(ctx); len(events) > 0 {
		text := alerting.FilingAlert(events)
		if s.deliver(ctx, text, alerting.UrgencyCritical, session) {
			for _, ev := range events {
				s.ledger.Mark(ev.AlertKey)
				s.record(ctx, storage.AlertRecord{
					AlertKey: ev.AlertKey,
					Kind:     storage.KindFiling,
					Subject:  ev.Filer.Name,
					Urgency:  string(alerting.UrgencyCritical),
				})
			}
			batches++
		}
	}

	if moves := s.prices.Scan(ctx); len(moves) > 0 {
		if text := alerting.PriceAlert(moves); text != "" {
			urgency := alerting.PriceUrgency(moves)
			if s.deliver(ctx, text, urgency, session) {
				for _, mv := range moves {
					s.ledger.Mark(mv.AlertKey)
					s.record(ctx, storage.AlertRecord{
						AlertKey:  mv.AlertKey,
						Kind:      storage.KindPrice,
						Subject:   mv.Ticker,
						ChangePct: decimal.NewNullDecimal(mv.ChangePct),
						Urgency:   string(urgency),
					})
				}
				batches++
			}
		}
	}

	if batches == 0 {
		s.maybeDailySummary(ctx, session)
	}

	return batches
}

// deliver pushes one formatted batch. A failed delivery leaves the batch's
// identities unmarked, so the events stay eligible on the next invocation.
func (s *Service) deliver(ctx context.Context, text string, urgency alerting.Urgency, session market.Session) bool {
	if s.notifier == nil {
		s.logger.Warn().Msg("no notifier configured; alert not delivered")
		return false
	}

	note := alerting.Notification{Text: text, Urgency: urgency, Session: session}
	if err := s.notifier.Notify(ctx, note); err != nil {
		s.logger.Error().Err(err).Str("urgency", string(urgency)).Msg("alert delivery failed, events stay eligible")
		return false
	}
	return true
}

func (s *Service) maybeDailySummary(ctx context.Context, session market.Session) {
	now := s.clock.Now()
	key := scanner.SummaryAlertKey(now)
	if s.ledger.Has(key) {
		return
	}
	if !s.clock.EndOfTradingDay() {
		return
	}

	text := alerting.DailySummary(now, len(s.registry.Filers()), len(s.registry.Symbols()))
	if s.deliver(ctx, text, alerting.UrgencyLow, session) {
		s.ledger.Mark(key)
		s.record(ctx, storage.AlertRecord{
			AlertKey: key,
			Kind:     storage.KindSummary,
			Subject:  now.Format("2006-01-02"),
			Urgency:  string(alerting.UrgencyLow),
		})
		s.logger.Info().Msg("daily summary sent")
	}
}

// record writes the audit row; failures are logged and never affect the
// scan outcome.
func (s *Service) record(ctx context.Context, rec storage.AlertRecord) {
	if s.audit == nil {
		return
	}
	if _, err := s.audit.InsertAlert(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("alert_key", rec.AlertKey).Msg("failed to persist alert record")
	}
}
