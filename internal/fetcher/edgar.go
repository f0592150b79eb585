package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const submissionsPathFmt = "/submissions/CIK%s.json"

// EDGAROptions parameterise the SEC submissions fetcher.
type EDGAROptions struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// EDGAR fetches recent submissions from the SEC EDGAR data API.
type EDGAR struct {
	opts    EDGAROptions
	logger  zerolog.Logger
	client  *http.Client
	baseURL string
}

// NewEDGAR constructs an EDGAR fetcher.
func NewEDGAR(opts EDGAROptions, logger zerolog.Logger) *EDGAR {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://data.sec.gov"
	}

	return &EDGAR{
		opts:    opts,
		logger:  logger.With().Str("component", "edgar_fetcher").Logger(),
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// FetchSubmissions retrieves the recent filings for a registrant. The CIK
// is zero-padded to the 10 digits the endpoint expects.
func (e *EDGAR) FetchSubmissions(ctx context.Context, cik string) ([]Filing, error) {
	if strings.TrimSpace(cik) == "" {
		return nil, errors.New("cik required")
	}

	endpoint := e.baseURL + fmt.Sprintf(submissionsPathFmt, padCIK(cik))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	if ua := strings.TrimSpace(e.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "investbot/1.0")
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edgar api error (%d): %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var doc submissionsResponse
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}

	recent := doc.Filings.Recent
	// The feed is parallel arrays; truncate to the shortest so a ragged
	// response cannot index out of range.
	n := len(recent.Form)
	if len(recent.FilingDate) < n {
		n = len(recent.FilingDate)
	}
	if len(recent.AccessionNumber) < n {
		n = len(recent.AccessionNumber)
	}

	filings := make([]Filing, 0, n)
	for i := 0; i < n; i++ {
		filings = append(filings, Filing{
			Form:            recent.Form[i],
			FilingDate:      recent.FilingDate[i],
			AccessionNumber: recent.AccessionNumber[i],
		})
	}
	return filings, nil
}

func padCIK(cik string) string {
	if len(cik) >= 10 {
		return cik
	}
	return strings.Repeat("0", 10-len(cik)) + cik
}

type submissionsResponse struct {
	Filings struct {
		Recent struct {
			Form            []string `json:"form"`
			FilingDate      []string `json:"filingDate"`
			AccessionNumber []string `json:"accessionNumber"`
		} `json:"recent"`
	} `json:"filings"`
}

var _ SubmissionsFetcher = (*EDGAR)(nil)
