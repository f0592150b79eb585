package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/kshamiyah/investbot/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   logging.Config  `mapstructure:"logging"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	SEC       SECConfig       `mapstructure:"sec"`
	Finnhub   FinnhubConfig   `mapstructure:"finnhub"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Export    ExportConfig    `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// LedgerConfig locates the flat-file alert ledger.
type LedgerConfig struct {
	Path string `mapstructure:"path"`
}

// DatabaseConfig encapsulates the optional PostgreSQL audit history.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// SchedulerConfig governs the watch-mode cadence.
type SchedulerConfig struct {
	Interval        time.Duration `mapstructure:"interval"`
	AlignToInterval bool          `mapstructure:"align_to_interval"`
	StartupDelay    time.Duration `mapstructure:"startup_delay"`
}

// SECConfig covers the EDGAR submissions source.
type SECConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	UserAgent      string        `mapstructure:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RequestDelay   time.Duration `mapstructure:"request_delay"`
}

// FinnhubConfig covers the market-quote source. An empty APIKey disables
// price scanning entirely.
type FinnhubConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RequestDelay   time.Duration `mapstructure:"request_delay"`
}

// TelegramConfig describes the delivery channel. Empty credentials leave
// the notifier unconfigured; scans still run but nothing is delivered.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	APIBase  string `mapstructure:"api_base"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	MaxDataPoints int `mapstructure:"max_data_points"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVESTBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials are usually supplied out-of-band; honour the bare names
	// too so deployments do not have to rename their secrets.
	_ = v.BindEnv("telegram.bot_token", "INVESTBOT_TELEGRAM_BOT_TOKEN", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("telegram.chat_id", "INVESTBOT_TELEGRAM_CHAT_ID", "TELEGRAM_CHAT_ID")
	_ = v.BindEnv("finnhub.api_key", "INVESTBOT_FINNHUB_API_KEY", "FINNHUB_API_KEY")

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "investbot")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("ledger.path", "sent_alerts.log")

	v.SetDefault("scheduler.interval", "30m")
	v.SetDefault("scheduler.align_to_interval", true)
	v.SetDefault("scheduler.startup_delay", "0s")

	v.SetDefault("sec.base_url", "https://data.sec.gov")
	v.SetDefault("sec.user_agent", "investbot/1.0 (monitoring)")
	v.SetDefault("sec.request_timeout", "15s")
	v.SetDefault("sec.request_delay", "400ms")

	v.SetDefault("finnhub.base_url", "https://finnhub.io/api/v1")
	v.SetDefault("finnhub.request_timeout", "10s")
	v.SetDefault("finnhub.request_delay", "500ms")

	v.SetDefault("telegram.api_base", "https://api.telegram.org")

	v.SetDefault("export.max_data_points", 100000)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path must not be empty")
	}
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be greater than zero")
	}
	if c.SEC.RequestDelay < 0 || c.Finnhub.RequestDelay < 0 {
		return fmt.Errorf("request delays cannot be negative")
	}
	if c.Export.MaxDataPoints <= 0 {
		return fmt.Errorf("export.max_data_points must be greater than zero")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether delivery credentials are present.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// ResolveMaxPoints returns either the CLI override or config default.
func (c *Config) ResolveMaxPoints(override int) int {
	if override > 0 {
		return override
	}
	return c.Export.MaxDataPoints
}
