package scanner

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kshamiyah/investbot/internal/fetcher"
	"github.com/kshamiyah/investbot/internal/ledger"
	"github.com/kshamiyah/investbot/internal/market"
	"github.com/kshamiyah/investbot/internal/watch"
)

// filingLookbackDays bounds how old a filing may be and still alert.
const filingLookbackDays = 5

// Form types worth announcing. Everything else in the feed is noise.
var allowedForms = map[string]struct{}{
	"13F-HR": {},
	"13F-NT": {},
	"4":      {},
	"SC 13G": {},
	"SC 13D": {},
	"8-K":    {},
}

// FilingScanner queries the submissions feed per watched filer and emits
// events for unseen, in-window filings of allowed form types.
type FilingScanner struct {
	fetcher  fetcher.SubmissionsFetcher
	registry *watch.Registry
	ledger   *ledger.Ledger
	clock    *market.Clock
	delay    time.Duration
	logger   zerolog.Logger
}

// NewFilingScanner constructs a filing scanner. delay is the fixed pause
// between per-filer requests, respecting the data source's rate
// expectations.
func NewFilingScanner(f fetcher.SubmissionsFetcher, registry *watch.Registry, led *ledger.Ledger, clock *market.Clock, delay time.Duration, logger zerolog.Logger) *FilingScanner {
	return &FilingScanner{
		fetcher:  f,
		registry: registry,
		ledger:   led,
		clock:    clock,
		delay:    delay,
		logger:   logger.With().Str("component", "filing_scanner").Logger(),
	}
}

// Scan walks the filer registry in declaration order and returns the
// newly-detected filing events. A per-filer fetch failure is logged and
// skipped; it never aborts the remaining filers.
func (s *FilingScanner) Scan(ctx context.Context) []FilingEvent {
	cutoff := s.clock.Now().AddDate(0, 0, -filingLookbackDays).Format(time.DateOnly)

	var events []FilingEvent
	for i, filer := range s.registry.Filers() {
		if i > 0 && s.delay > 0 {
			time.Sleep(s.delay)
		}

		filings, err := s.fetcher.FetchSubmissions(ctx, filer.CIK)
		if err != nil {
			s.logger.Warn().Err(err).Str("filer", filer.Name).Msg("submissions fetch failed, skipping filer")
			continue
		}

		for _, f := range filings {
			if _, ok := allowedForms[f.Form]; !ok {
				continue
			}
			// ISO dates compare correctly as strings, matching the feed.
			if f.FilingDate < cutoff {
				continue
			}

			key := FilingAlertKey(filer.CIK, f.AccessionNumber)
			if s.ledger.Has(key) {
				continue
			}

			events = append(events, FilingEvent{
				Filer:           filer,
				Form:            f.Form,
				FilingDate:      f.FilingDate,
				AccessionNumber: f.AccessionNumber,
				AlertKey:        key,
			})
			s.logger.Info().
				Str("filer", filer.Name).
				Str("form", f.Form).
				Str("date", f.FilingDate).
				Msg("new filing queued")
		}
	}
	return events
}
