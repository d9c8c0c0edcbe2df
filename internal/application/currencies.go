package application

import (
	"context"

	"go.uber.org/zap"
)

// CurrencyService lists the currency codes the upstream publishes rates for.
type CurrencyService struct {
	source RateSource
	cache  CurrencyCache
	log    *zap.Logger
}

func NewCurrencyService(source RateSource, cache CurrencyCache, log *zap.Logger) *CurrencyService {
	if cache == nil {
		cache = NoopCurrencyCache{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CurrencyService{source: source, cache: cache, log: log}
}

// ListCurrencies serves from the cache when possible. Cache failures are
// logged and fall through to the upstream.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]string, error) {
	codes, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn("currencies.cache_get_failed", zap.Error(err))
	}
	if ok && len(codes) > 0 {
		return codes, nil
	}
	codes, err = s.source.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, codes); err != nil {
		s.log.Warn("currencies.cache_set_failed", zap.Error(err))
	}
	return codes, nil
}
