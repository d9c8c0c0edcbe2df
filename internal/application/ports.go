package application

import (
	"context"

	"nbprates-service/internal/domain"
)

// RateStore is the local rate cache. Merge must be atomic: readers never see
// a duplicated (date, currency) pair or a half-written batch.
type RateStore interface {
	ExistingDates(ctx context.Context, currency string, r domain.DateRange) (map[string]bool, error)
	Merge(ctx context.Context, currency string, points []domain.RatePoint) error
	ListRates(ctx context.Context, currency string, r domain.DateRange) ([]domain.RatePoint, error)
}

// RateSource is the upstream publisher of mid-rates.
// Errors wrap domain.ErrNotFound or domain.ErrUpstreamFailure.
type RateSource interface {
	FetchRates(ctx context.Context, currency string, r domain.DateRange) ([]domain.RatePoint, error)
	ListCurrencies(ctx context.Context) ([]string, error)
}

// CurrencyCache holds the list of available currency codes for a while.
type CurrencyCache interface {
	// Get returns ok=false on a miss.
	Get(ctx context.Context) (codes []string, ok bool, err error)
	Set(ctx context.Context, codes []string) error
}

// NoopCurrencyCache never hits; useful for tests/dev when Redis is disabled.
type NoopCurrencyCache struct{}

func (NoopCurrencyCache) Get(context.Context) ([]string, bool, error) { return nil, false, nil }
func (NoopCurrencyCache) Set(context.Context, []string) error         { return nil }
