package config

import (
	"strings"
	"time"

	infraconfig "nbprates-service/internal/infrastructure/config"

	"github.com/spf13/viper"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// Storage
	Storage     string
	SQLitePath  string
	DatabaseURL string
	// Upstream
	Provider       string
	NBPBase        string
	RequestTimeout time.Duration
	// Currency list cache
	CurrencyCache string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CurrencyTTL   time.Duration
	// Refresher
	Watchlist    []string
	RefreshEvery time.Duration
	RefreshDays  int
}

func ms(v *viper.Viper, key string) time.Duration {
	return time.Duration(v.GetInt64(key)) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE", infraconfig.DefaultStorage)
	v.SetDefault("SQLITE_PATH", infraconfig.DefaultSQLitePath)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PROVIDER", "nbp")
	v.SetDefault("NBP_API_BASE", infraconfig.DefaultNBPBase)
	v.SetDefault("REQUEST_TIMEOUT_MS", infraconfig.DefaultRequestTimeout.Milliseconds())
	v.SetDefault("CURRENCY_CACHE", "none")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CURRENCY_CACHE_TTL_MS", infraconfig.DefaultCurrencyTTL.Milliseconds())
	v.SetDefault("WATCHLIST", "")
	v.SetDefault("REFRESH_EVERY_MS", infraconfig.DefaultRefreshEvery.Milliseconds())
	v.SetDefault("REFRESH_DAYS", infraconfig.DefaultRefreshDays)

	return Config{
		Env:            v.GetString("ENV"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		Storage:        strings.ToLower(v.GetString("STORAGE")),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		Provider:       strings.ToLower(v.GetString("PROVIDER")),
		NBPBase:        strings.TrimRight(v.GetString("NBP_API_BASE"), "/"),
		RequestTimeout: ms(v, "REQUEST_TIMEOUT_MS"),
		CurrencyCache:  strings.ToLower(v.GetString("CURRENCY_CACHE")),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		CurrencyTTL:    ms(v, "CURRENCY_CACHE_TTL_MS"),
		Watchlist:      splitList(v.GetString("WATCHLIST")),
		RefreshEvery:   ms(v, "REFRESH_EVERY_MS"),
		RefreshDays:    v.GetInt("REFRESH_DAYS"),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
