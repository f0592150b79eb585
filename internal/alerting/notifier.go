package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kshamiyah/investbot/internal/market"
)

// Urgency grades how loudly a notification is delivered.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyLow      Urgency = "LOW"
)

// Icon returns the marker prefixed to delivered messages.
func (u Urgency) Icon() string {
	switch u {
	case UrgencyCritical:
		return "🚨🚨🚨"
	case UrgencyHigh:
		return "🚨"
	case UrgencyMedium:
		return "⚠️"
	default:
		return "📊"
	}
}

// Notification wraps alert text with its delivery context.
type Notification struct {
	Text    string
	Urgency Urgency
	Session market.Session
}

// Notifier delivers a formatted alert to the external channel.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// TelegramNotifier pushes messages through the Telegram Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	logger   zerolog.Logger
}

// NewTelegramNotifier constructs a Telegram notifier. baseURL is
// overridable for tests.
func NewTelegramNotifier(botToken, chatID, baseURL string, timeout time.Duration, logger zerolog.Logger) *TelegramNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With().Str("component", "alert_telegram").Logger(),
	}
}

// Notify calls the sendMessage API with Markdown text. Any status outside
// the 200 range, or an ok=false body, is a delivery failure.
func (n *TelegramNotifier) Notify(ctx context.Context, note Notification) error {
	payload := map[string]string{
		"chat_id":    n.chatID,
		"text":       renderMessage(note),
		"parse_mode": "Markdown",
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram api status %d", resp.StatusCode)
	}

	var result struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
		if !result.OK {
			return fmt.Errorf("telegram returned ok=false")
		}
	}

	n.logger.Info().
		Str("urgency", string(note.Urgency)).
		Str("session", string(note.Session)).
		Msg("alert delivered")
	return nil
}

func renderMessage(note Notification) string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("%s *VIP InvestBot Alert* %s\n", note.Urgency.Icon(), note.Session.Emoji()))
	builder.WriteString(fmt.Sprintf("_%s Session_\n\n", note.Session.Label()))
	builder.WriteString(note.Text)
	return builder.String()
}

var _ Notifier = (*TelegramNotifier)(nil)
