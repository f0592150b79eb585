package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestEDGARFetchMissingCIK(t *testing.T) {
	e := NewEDGAR(EDGAROptions{}, noopLogger())
	if _, err := e.FetchSubmissions(context.Background(), ""); err == nil {
		t.Fatal("empty cik should return an error")
	}
}

func TestEDGARFetchPadsCIKAndParsesParallelArrays(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"filings": {"recent": {
				"form": ["13F-HR", "4", "8-K"],
				"filingDate": ["2025-03-03", "2025-03-02", "2025-02-28"],
				"accessionNumber": ["0001-25-000001", "0001-25-000002", "0001-25-000003"]
			}}
		}`))
	}))
	defer srv.Close()

	e := NewEDGAR(EDGAROptions{BaseURL: srv.URL, UserAgent: "test", Timeout: time.Second}, noopLogger())
	filings, err := e.FetchSubmissions(context.Background(), "1067983")
	if err != nil {
		t.Fatalf("fetch should succeed: %v", err)
	}

	if gotPath != "/submissions/CIK0001067983.json" {
		t.Fatalf("request path = %q, want zero-padded CIK", gotPath)
	}
	if len(filings) != 3 {
		t.Fatalf("parsed %d filings, want 3", len(filings))
	}
	if filings[0].Form != "13F-HR" || filings[0].FilingDate != "2025-03-03" || filings[0].AccessionNumber != "0001-25-000001" {
		t.Fatalf("first filing mismatched: %+v", filings[0])
	}
}

func TestEDGARFetchRaggedArraysTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"filings": {"recent": {
				"form": ["13F-HR", "4"],
				"filingDate": ["2025-03-03"],
				"accessionNumber": ["0001-25-000001", "0001-25-000002"]
			}}
		}`))
	}))
	defer srv.Close()

	e := NewEDGAR(EDGAROptions{BaseURL: srv.URL, Timeout: time.Second}, noopLogger())
	filings, err := e.FetchSubmissions(context.Background(), "1067983")
	if err != nil {
		t.Fatalf("fetch should succeed: %v", err)
	}
	if len(filings) != 1 {
		t.Fatalf("ragged arrays should truncate to shortest, got %d filings", len(filings))
	}
}

func TestEDGARFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	e := NewEDGAR(EDGAROptions{BaseURL: srv.URL, Timeout: time.Second}, noopLogger())
	_, err := e.FetchSubmissions(context.Background(), "1067983")
	if err == nil {
		t.Fatal("HTTP 429 should return an error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("error should carry the status code: %v", err)
	}
}
