package fetcher

import (
	"context"

	"github.com/shopspring/decimal"
)

// Filing is one entry from a registrant's recent-submissions feed.
type Filing struct {
	Form            string
	FilingDate      string // ISO date, as reported by the source
	AccessionNumber string
}

// SubmissionsFetcher retrieves recent SEC submissions for a registrant.
type SubmissionsFetcher interface {
	FetchSubmissions(ctx context.Context, cik string) ([]Filing, error)
}

// Quote carries the current price and previous close for one symbol.
type Quote struct {
	Current       decimal.Decimal
	PreviousClose decimal.Decimal
}

// QuoteFetcher retrieves a market quote for a ticker.
type QuoteFetcher interface {
	FetchQuote(ctx context.Context, ticker string) (Quote, error)
}
