package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFinnhubFetchMissingKey(t *testing.T) {
	f := NewFinnhub(FinnhubOptions{}, noopLogger())
	if _, err := f.FetchQuote(context.Background(), "AAPL"); err == nil {
		t.Fatal("missing api key should return an error")
	}
}

func TestFinnhubFetchSuccess(t *testing.T) {
	var gotSymbol, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSymbol = r.URL.Query().Get("symbol")
		gotToken = r.URL.Query().Get("token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"c": 103.5, "pc": 100, "h": 104, "l": 99}`))
	}))
	defer srv.Close()

	f := NewFinnhub(FinnhubOptions{BaseURL: srv.URL, APIKey: "key", Timeout: time.Second}, noopLogger())
	quote, err := f.FetchQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("fetch should succeed: %v", err)
	}

	if gotSymbol != "AAPL" || gotToken != "key" {
		t.Fatalf("query params symbol=%q token=%q", gotSymbol, gotToken)
	}
	if quote.Current.String() != "103.5" {
		t.Fatalf("current = %s, want 103.5", quote.Current)
	}
	if quote.PreviousClose.String() != "100" {
		t.Fatalf("previous close = %s, want 100", quote.PreviousClose)
	}
}

func TestFinnhubFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := NewFinnhub(FinnhubOptions{BaseURL: srv.URL, APIKey: "bad", Timeout: time.Second}, noopLogger())
	if _, err := f.FetchQuote(context.Background(), "AAPL"); err == nil {
		t.Fatal("HTTP 401 should return an error")
	}
}
