package config

import "time"

const (
	DefaultStorage        = "sqlite"
	DefaultSQLitePath     = "data/currency_rates.db"
	DefaultNBPBase        = "https://api.nbp.pl/api"
	DefaultRequestTimeout = 4 * time.Second
	DefaultCurrencyTTL    = 12 * time.Hour
	DefaultRefreshEvery   = time.Hour
	DefaultRefreshDays    = 30
	DefaultPGMaxConns     = 5
	DefaultPGMinConns     = 1
)
