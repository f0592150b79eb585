package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const quotePath = "/quote"

// FinnhubOptions parameterise the quote fetcher.
type FinnhubOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Finnhub fetches real-time quotes from the Finnhub REST API.
type Finnhub struct {
	opts    FinnhubOptions
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewFinnhub constructs a Finnhub fetcher.
func NewFinnhub(opts FinnhubOptions, logger zerolog.Logger) *Finnhub {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://finnhub.io/api/v1"
	}

	return &Finnhub{
		opts:    opts,
		logger:  logger.With().Str("component", "finnhub_fetcher").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// FetchQuote retrieves the current price and previous close for a ticker.
func (f *Finnhub) FetchQuote(ctx context.Context, ticker string) (Quote, error) {
	if f.opts.APIKey == "" {
		return Quote{}, errors.New("finnhub api key not configured")
	}
	if strings.TrimSpace(ticker) == "" {
		return Quote{}, errors.New("ticker required")
	}

	params := url.Values{}
	params.Set("symbol", ticker)
	params.Set("token", f.opts.APIKey)

	endpoint := f.baseURL + quotePath + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("finnhub api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var body quoteResponse
	if err := json.Unmarshal(payload, &body); err != nil {
		return Quote{}, fmt.Errorf("decode quote: %w", err)
	}

	return Quote{
		Current:       decimal.NewFromFloat(body.Current),
		PreviousClose: decimal.NewFromFloat(body.PreviousClose),
	}, nil
}

type quoteResponse struct {
	Current       float64 `json:"c"`
	PreviousClose float64 `json:"pc"`
}

var _ QuoteFetcher = (*Finnhub)(nil)
