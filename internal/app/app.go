package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kshamiyah/investbot/internal/alerting"
	"github.com/kshamiyah/investbot/internal/config"
	"github.com/kshamiyah/investbot/internal/fetcher"
	"github.com/kshamiyah/investbot/internal/ledger"
	"github.com/kshamiyah/investbot/internal/market"
	"github.com/kshamiyah/investbot/internal/scanner"
	"github.com/kshamiyah/investbot/internal/service"
	"github.com/kshamiyah/investbot/internal/storage"
	"github.com/kshamiyah/investbot/internal/watch"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newNotifier() alerting.Notifier {
	if !a.Config.TelegramEnabled() {
		return nil
	}
	tg := a.Config.Telegram
	return alerting.NewTelegramNotifier(tg.BotToken, tg.ChatID, tg.APIBase, 10*time.Second, a.Logger)
}

// newQuoteFetcher returns nil when no Finnhub key is configured; the price
// scanner treats a nil fetcher as "price monitoring disabled".
func (a *App) newQuoteFetcher() fetcher.QuoteFetcher {
	if a.Config.Finnhub.APIKey == "" {
		return nil
	}
	return fetcher.NewFinnhub(fetcher.FinnhubOptions{
		BaseURL: a.Config.Finnhub.BaseURL,
		APIKey:  a.Config.Finnhub.APIKey,
		Timeout: a.Config.Finnhub.RequestTimeout,
	}, a.Logger)
}

func (a *App) newSubmissionsFetcher() fetcher.SubmissionsFetcher {
	return fetcher.NewEDGAR(fetcher.EDGAROptions{
		BaseURL:   a.Config.SEC.BaseURL,
		UserAgent: a.Config.SEC.UserAgent,
		Timeout:   a.Config.SEC.RequestTimeout,
	}, a.Logger)
}

// openLedger loads the flat-file alert ledger. A missing file yields an
// empty ledger; every other load problem is logged and tolerated.
func (a *App) openLedger() *ledger.Ledger {
	led := ledger.New(a.Config.Ledger.Path, a.Logger)
	led.Load()
	return led
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

// newService wires the full monitoring pipeline around a loaded ledger and
// an optional audit store.
func (a *App) newService(led *ledger.Ledger, clock *market.Clock, registry *watch.Registry, audit storage.AlertHistory) *service.Service {
	filings := scanner.NewFilingScanner(a.newSubmissionsFetcher(), registry, led, clock, a.Config.SEC.RequestDelay, a.Logger)
	prices := scanner.NewPriceScanner(a.newQuoteFetcher(), registry, led, clock, a.Config.Finnhub.RequestDelay, a.Logger)
	return service.New(filings, prices, a.newNotifier(), led, clock, registry, audit, a.Logger)
}

// logStartup announces what is being watched and the market state, once
// per command invocation.
func (a *App) logStartup(clock *market.Clock, registry *watch.Registry) {
	session := clock.Session()
	a.Logger.Info().
		Int("watched_filers", len(registry.Filers())).
		Int("watched_symbols", len(registry.Symbols())).
		Str("session", string(session)).
		Bool("price_monitoring", a.Config.Finnhub.APIKey != "").
		Bool("telegram", a.Config.TelegramEnabled()).
		Msg("investbot starting")
}

// auditOrNil converts a possibly-nil store into the history interface.
// A typed nil must not leak into the interface value.
func auditOrNil(store *storage.Store) storage.AlertHistory {
	if store == nil {
		return nil
	}
	return store
}

// ExportOptions hold parameters for exporting the alert history.
type ExportOptions struct {
	From      *time.Time
	To        *time.Time
	PNGPath   string
	CSVPath   string
	MaxPoints int
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}
