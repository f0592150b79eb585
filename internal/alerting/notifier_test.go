package alerting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kshamiyah/investbot/internal/market"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestTelegramNotifierSuccess(t *testing.T) {
	received := make(map[string]string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "sendMessage") {
			t.Fatalf("path should contain sendMessage, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	notifier := NewTelegramNotifier("token", "chat", srv.URL, time.Second, testLogger())
	note := Notification{Text: "hello", Urgency: UrgencyHigh, Session: market.SessionRegular}

	if err := notifier.Notify(context.Background(), note); err != nil {
		t.Fatalf("notify should succeed: %v", err)
	}

	if received["chat_id"] != "chat" {
		t.Fatalf("chat_id wrong: %#v", received)
	}
	if received["parse_mode"] != "Markdown" {
		t.Fatalf("parse_mode wrong: %#v", received)
	}
	if !strings.Contains(received["text"], "Regular Session") || !strings.Contains(received["text"], "hello") {
		t.Fatalf("rendered text missing header or body: %q", received["text"])
	}
}

func TestTelegramNotifierOKFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false})
	}))
	defer srv.Close()

	notifier := NewTelegramNotifier("token", "chat", srv.URL, time.Second, testLogger())
	note := Notification{Text: "hello", Urgency: UrgencyLow, Session: market.SessionClosed}

	if err := notifier.Notify(context.Background(), note); err == nil {
		t.Fatal("ok=false should be a delivery failure")
	}
}

func TestTelegramNotifierHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	notifier := NewTelegramNotifier("token", "chat", srv.URL, time.Second, testLogger())
	note := Notification{Text: "hello", Urgency: UrgencyMedium, Session: market.SessionPreMarket}

	if err := notifier.Notify(context.Background(), note); err == nil {
		t.Fatal("non-200 status should be a delivery failure")
	}
}
