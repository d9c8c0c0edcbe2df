package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nbprates-service/internal/application"

	"github.com/redis/go-redis/v9"
)

const currenciesKey = "nbprates:currencies:a"

var _ application.CurrencyCache = (*CurrencyCache)(nil)

// CurrencyCache keeps the table A currency list as one JSON value with a TTL.
type CurrencyCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *CurrencyCache {
	return &CurrencyCache{Client: client, TTL: ttl}
}

func (c *CurrencyCache) Get(ctx context.Context) ([]string, bool, error) {
	raw, err := c.Client.Get(ctx, currenciesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		return nil, false, fmt.Errorf("decode cached currencies: %w", err)
	}
	return codes, true, nil
}

func (c *CurrencyCache) Set(ctx context.Context, codes []string) error {
	raw, err := json.Marshal(codes)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, currenciesKey, raw, c.TTL).Err()
}
