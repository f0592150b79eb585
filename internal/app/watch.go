package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/kshamiyah/investbot/internal/market"
	"github.com/kshamiyah/investbot/internal/scheduler"
	"github.com/kshamiyah/investbot/internal/watch"
)

// Watch runs the monitoring loop until interrupted. The ledger is loaded
// once at startup and saved after every pass, so a crash between passes
// loses at most the current pass's marks.
func (a *App) Watch(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	clock, err := market.NewClock()
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		a.Logger.Warn().Msg("database.dsn not configured; alert history disabled")
	}
	if closeStore != nil {
		defer closeStore()
	}

	registry := watch.Default()
	a.logStartup(clock, registry)

	led := a.openLedger()
	svc := a.newService(led, clock, registry, auditOrNil(store))

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Scheduler.Interval,
		AlignToStart: a.Config.Scheduler.AlignToInterval,
		StartupDelay: a.Config.Scheduler.StartupDelay,
	}, a.Logger)

	a.Logger.Info().Dur("interval", a.Config.Scheduler.Interval).Msg("starting watch loop")
	err = sched.Run(ctx, func(ctx context.Context, _ time.Time) error {
		svc.RunScan(ctx)
		if err := led.Save(); err != nil {
			a.Logger.Error().Err(err).Msg("failed to persist alert ledger")
		}
		return nil
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("watch loop terminated with error")
		return err
	}

	// Final save catches marks from a pass interrupted mid-shutdown.
	if err := led.Save(); err != nil {
		a.Logger.Error().Err(err).Msg("failed to persist alert ledger on shutdown")
	}

	a.Logger.Info().Msg("watch loop stopped")
	return nil
}
