package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"nbprates-service/internal/application"
	"nbprates-service/internal/config"
	"nbprates-service/internal/infrastructure/pg"
	"nbprates-service/internal/infrastructure/provider"
	redisstore "nbprates-service/internal/infrastructure/redis"
	"nbprates-service/internal/infrastructure/sqlite"
	"nbprates-service/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required for STORAGE=pg")

// App holds the wired services. Close releases the store and cache clients.
type App struct {
	Rates      *application.RatesService
	Currencies *application.CurrencyService
	Refresher  *worker.Refresher
	Close      func()
}

// BuildStore opens the rate store selected by STORAGE ("sqlite" or "pg").
func BuildStore(ctx context.Context, cfg config.Config, log *zap.Logger) (application.RateStore, func(), error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Storage {
	case "", "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, func() {}, err
		}
		cleanup := func() {
			log.Debug("closing sqlite")
			_ = db.Close()
		}
		return sqlite.NewRateStore(db), cleanup, nil
	case "pg":
		if cfg.DatabaseURL == "" {
			return nil, func() {}, ErrMissingDBURL
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, func() {}, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, func() {}, err
		}
		cleanup := func() {
			log.Debug("closing pg")
			db.Close()
		}
		return pg.NewRateStore(db), cleanup, nil
	default:
		return nil, func() {}, fmt.Errorf("unsupported STORAGE=%q", cfg.Storage)
	}
}

// BuildRateSource returns the upstream client selected by PROVIDER.
func BuildRateSource(cfg config.Config) application.RateSource {
	switch cfg.Provider {
	case "fake":
		return provider.NewFake(decimal.RequireFromString("1.2345"))
	default:
		return &provider.NBPProvider{
			BaseURL: cfg.NBPBase,
			Client:  &http.Client{Timeout: cfg.RequestTimeout},
		}
	}
}

// BuildCurrencyCache returns the Redis cache when CURRENCY_CACHE=redis, a no-op otherwise.
func BuildCurrencyCache(cfg config.Config) (application.CurrencyCache, func()) {
	if cfg.CurrencyCache != "redis" {
		return application.NoopCurrencyCache{}, func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return redisstore.New(client, cfg.CurrencyTTL), func() { _ = client.Close() }
}

func Init(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	store, closeStore, err := BuildStore(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}
	cache, closeCache := BuildCurrencyCache(cfg)
	source := BuildRateSource(cfg)

	rates := application.NewRatesService(store, source, application.WithLogger(log))
	return &App{
		Rates:      rates,
		Currencies: application.NewCurrencyService(source, cache, log),
		Refresher: &worker.Refresher{
			Rates:        rates,
			Watchlist:    cfg.Watchlist,
			RefreshEvery: cfg.RefreshEvery,
			Days:         cfg.RefreshDays,
			Log:          log.With(zap.String("component", "refresher")),
		},
		Close: func() {
			closeCache()
			closeStore()
		},
	}, nil
}
