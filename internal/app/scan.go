package app

import (
	"context"

	"github.com/kshamiyah/investbot/internal/market"
	"github.com/kshamiyah/investbot/internal/watch"
)

// Scan runs a single monitoring pass: load the ledger, scan filings and
// prices, deliver anything new, then persist the ledger. A failed ledger
// save is logged but does not fail the pass; delivered alerts would then
// repeat on the next run, which beats losing them.
func (a *App) Scan(ctx context.Context) error {
	clock, err := market.NewClock()
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	registry := watch.Default()
	a.logStartup(clock, registry)

	led := a.openLedger()
	svc := a.newService(led, clock, registry, auditOrNil(store))

	batches := svc.RunScan(ctx)
	a.Logger.Info().Int("alert_batches", batches).Msg("scan pass complete")

	if err := led.Save(); err != nil {
		a.Logger.Error().Err(err).Msg("failed to persist alert ledger")
	}
	return nil
}
