package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Alert kinds recorded in the history table.
const (
	KindFiling  = "filing"
	KindPrice   = "price"
	KindSummary = "summary"
)

// AlertRecord captures one delivered alert event for auditing. The flat-file
// ledger remains the sole deduplication authority; this table only exists
// for operators to inspect and chart what was sent.
type AlertRecord struct {
	ID        int64
	AlertKey  string
	Kind      string
	Subject   string
	ChangePct decimal.NullDecimal
	Urgency   string
	CreatedAt time.Time
}
