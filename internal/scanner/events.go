// Package scanner detects noteworthy market events that have not yet been
// announced, deduplicating against the alert ledger.
package scanner

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kshamiyah/investbot/internal/watch"
)

// FilingEvent is a newly-detected SEC filing for a watched filer.
type FilingEvent struct {
	Filer           watch.Filer
	Form            string
	FilingDate      string
	AccessionNumber string
	AlertKey        string
}

// PriceMoveEvent is a price change that cleared the session-adjusted
// threshold for a watched symbol.
type PriceMoveEvent struct {
	Ticker        string
	Company       string
	Current       decimal.Decimal
	PreviousClose decimal.Decimal
	ChangePct     decimal.Decimal
	ChangeAmount  decimal.Decimal
	Threshold     decimal.Decimal
	AlertKey      string
}

// FilingAlertKey derives the deduplication identity for a filing.
func FilingAlertKey(cik, accessionNumber string) string {
	return "file-" + cik + "-" + accessionNumber
}

// PriceAlertKey derives the deduplication identity for a price move. The
// hour bucket deliberately suppresses repeat alerts for a symbol within
// the same clock hour even if the price oscillates across the threshold.
func PriceAlertKey(ticker string, at time.Time) string {
	return "price-" + ticker + "-" + at.Format("2006-01-02-15")
}

// SummaryAlertKey derives the identity for the idle-day summary; one per
// calendar day.
func SummaryAlertKey(at time.Time) string {
	return "summary-" + at.Format(time.DateOnly)
}
