package scanner

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/kshamiyah/investbot/internal/fetcher"
	"github.com/kshamiyah/investbot/internal/ledger"
	"github.com/kshamiyah/investbot/internal/market"
	"github.com/kshamiyah/investbot/internal/watch"
)

var hundred = decimal.NewFromInt(100)

// PriceScanner queries quotes per watched symbol and emits events for
// unseen moves beyond the session-adjusted threshold.
type PriceScanner struct {
	fetcher  fetcher.QuoteFetcher
	registry *watch.Registry
	ledger   *ledger.Ledger
	clock    *market.Clock
	delay    time.Duration
	logger   zerolog.Logger
}

// NewPriceScanner constructs a price scanner. A nil fetcher means the
// market-data credential is absent; Scan then returns empty immediately.
func NewPriceScanner(f fetcher.QuoteFetcher, registry *watch.Registry, led *ledger.Ledger, clock *market.Clock, delay time.Duration, logger zerolog.Logger) *PriceScanner {
	return &PriceScanner{
		fetcher:  f,
		registry: registry,
		ledger:   led,
		clock:    clock,
		delay:    delay,
		logger:   logger.With().Str("component", "price_scanner").Logger(),
	}
}

// Scan walks the symbol registry in declaration order and returns the
// newly-detected price moves. Per-symbol failures are logged and skipped.
// Quotes with a missing price or non-positive previous close are dropped
// silently.
func (s *PriceScanner) Scan(ctx context.Context) []PriceMoveEvent {
	if s.fetcher == nil {
		s.logger.Debug().Msg("market-data credential absent; price scan disabled")
		return nil
	}

	session := s.clock.Session()

	var events []PriceMoveEvent
	for i, sym := range s.registry.Symbols() {
		if i > 0 && s.delay > 0 {
			time.Sleep(s.delay)
		}

		quote, err := s.fetcher.FetchQuote(ctx, sym.Ticker)
		if err != nil {
			s.logger.Warn().Err(err).Str("ticker", sym.Ticker).Msg("quote fetch failed, skipping symbol")
			continue
		}
		if quote.Current.IsZero() || !quote.PreviousClose.IsPositive() {
			continue
		}

		changePct := quote.Current.Sub(quote.PreviousClose).Div(quote.PreviousClose).Mul(hundred)
		threshold := EffectiveThreshold(sym.Class, session)
		if changePct.Abs().LessThan(threshold) {
			continue
		}

		key := PriceAlertKey(sym.Ticker, s.clock.Now())
		if s.ledger.Has(key) {
			continue
		}

		events = append(events, PriceMoveEvent{
			Ticker:        sym.Ticker,
			Company:       s.registry.CompanyName(sym.Ticker),
			Current:       quote.Current,
			PreviousClose: quote.PreviousClose,
			ChangePct:     changePct,
			ChangeAmount:  quote.Current.Sub(quote.PreviousClose),
			Threshold:     threshold,
			AlertKey:      key,
		})
		s.logger.Info().
			Str("ticker", sym.Ticker).
			Str("change_pct", changePct.StringFixed(2)).
			Str("threshold", threshold.StringFixed(1)).
			Msg("new price move queued")
	}
	return events
}
