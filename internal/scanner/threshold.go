package scanner

import (
	"github.com/shopspring/decimal"

	"github.com/kshamiyah/investbot/internal/market"
	"github.com/kshamiyah/investbot/internal/watch"
)

// BaseThreshold returns the percentage-change threshold for a volatility
// class during regular hours.
func BaseThreshold(class watch.VolatilityClass) decimal.Decimal {
	switch class {
	case watch.ClassStable:
		return decimal.NewFromFloat(3.5)
	case watch.ClassVolatile:
		return decimal.NewFromFloat(6.0)
	default:
		return decimal.NewFromFloat(4.5)
	}
}

// EffectiveThreshold scales the base threshold by the session multiplier.
// Recomputed per symbol per scan, using the session at scan time.
func EffectiveThreshold(class watch.VolatilityClass, session market.Session) decimal.Decimal {
	return BaseThreshold(class).Mul(session.Multiplier())
}
