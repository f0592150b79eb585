package alerting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kshamiyah/investbot/internal/scanner"
)

var (
	tierCritical = decimal.NewFromInt(10)
	tierHigh     = decimal.NewFromInt(5)
)

// FilingAlert renders filing events as one Telegram Markdown message.
// Header is singular or plural depending on the batch size.
func FilingAlert(events []scanner.FilingEvent) string {
	if len(events) == 0 {
		return ""
	}

	builder := strings.Builder{}
	if len(events) > 1 {
		builder.WriteString(fmt.Sprintf("📰 *BREAKING: %d VIP TRADERS MAKE MAJOR MOVES*\n\n", len(events)))
	} else {
		builder.WriteString(fmt.Sprintf("📰 *BREAKING: %s's Latest Moves Revealed*\n\n", events[0].Filer.Name))
	}

	for _, ev := range events {
		builder.WriteString(fmt.Sprintf("👤 *%s*\n🏢 %s\n📄 %s filed on %s\n🎯 Strategy: _%s_\n\n", ev.Filer.Name, ev.Filer.Company, ev.Form, ev.FilingDate, ev.Filer.Strategy))
		builder.WriteString(fmt.Sprintf("🔗 *Analysis:*\n🐋 [WhaleWisdom](%s)\n📊 [QuiverQuant](https://www.quiverquant.com/sources/institutions)\n\n", ev.Filer.WhaleLink))
		builder.WriteString("─────────────────\n\n")
	}
	return builder.String()
}

// PriceAlert renders price-move events largest-move-first. An empty input
// returns the empty string; callers must treat that as nothing to send.
func PriceAlert(events []scanner.PriceMoveEvent) string {
	if len(events) == 0 {
		return ""
	}

	sorted := make([]scanner.PriceMoveEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ChangePct.Abs().GreaterThan(sorted[j].ChangePct.Abs())
	})

	builder := strings.Builder{}
	if len(sorted) > 1 {
		builder.WriteString(fmt.Sprintf("📈 *%d MAJOR PRICE MOVEMENTS DETECTED!*\n\n", len(sorted)))
	} else {
		builder.WriteString("📈 *MAJOR PRICE MOVEMENT DETECTED!*\n\n")
	}

	for _, ev := range sorted {
		direction := "🚀"
		if ev.ChangePct.IsNegative() {
			direction = "📉"
		}

		builder.WriteString(fmt.Sprintf("%s %s *%s* - %s\n", severityIcon(ev.ChangePct.Abs()), direction, ev.Ticker, ev.Company))
		builder.WriteString(fmt.Sprintf("💰 Price: $%s (was $%s)\n", ev.Current.StringFixed(2), ev.PreviousClose.StringFixed(2)))
		builder.WriteString(fmt.Sprintf("📊 Change: %s%% ($%s)\n", signedFixed(ev.ChangePct, 2), signedFixed(ev.ChangeAmount, 2)))
		builder.WriteString(fmt.Sprintf("🎯 Threshold: %s%%\n\n", ev.Threshold.StringFixed(1)))
	}
	return builder.String()
}

// PriceUrgency is the delivery escalation for a price batch: the highest
// tier among its severity markers.
func PriceUrgency(events []scanner.PriceMoveEvent) Urgency {
	urgency := UrgencyMedium
	for _, ev := range events {
		abs := ev.ChangePct.Abs()
		if abs.GreaterThanOrEqual(tierCritical) {
			return UrgencyCritical
		}
		if abs.GreaterThanOrEqual(tierHigh) {
			urgency = UrgencyHigh
		}
	}
	return urgency
}

// DailySummary renders the idle-day message sent when a whole scan pass
// produced no alerts.
func DailySummary(date time.Time, filerCount, symbolCount int) string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("🌙 *End of Day Summary - %s*\n\n", date.Format("January 2, 2006")))
	builder.WriteString("✅ *Markets Calm Today*\n\n")
	builder.WriteString("🔍 *Daily Scan Results:*\n• VIP trader filings: None\n• Major price movements: None detected\n\n")
	builder.WriteString(fmt.Sprintf("📊 *Monitoring Stats:*\n• VIP traders & institutions monitored: %d\n• Major stocks tracked: %d S&P 500 leaders\n\n", filerCount, symbolCount))
	builder.WriteString("💤 *Rest easy - your bot is watching 24/7*")
	return builder.String()
}

// severityIcon marks the tier per absolute percentage change: >=10
// critical, >=5 high, else warning.
func severityIcon(abs decimal.Decimal) string {
	switch {
	case abs.GreaterThanOrEqual(tierCritical):
		return "🚨🚨🚨"
	case abs.GreaterThanOrEqual(tierHigh):
		return "🚨"
	default:
		return "⚠️"
	}
}

func signedFixed(d decimal.Decimal, places int32) string {
	if d.Sign() >= 0 {
		return "+" + d.StringFixed(places)
	}
	return d.StringFixed(places)
}
