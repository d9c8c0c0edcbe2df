package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListCurrencies_CachesUpstream(t *testing.T) {
	t.Parallel()
	src := &fakeSource{codes: []string{"EUR", "USD"}}
	cache := &fakeCache{}
	svc := NewCurrencyService(src, cache, nil)

	got, err := svc.ListCurrencies(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"EUR", "USD"}, got)

	got, err = svc.ListCurrencies(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"EUR", "USD"}, got)
	require.Equal(t, 1, src.listCalls)
	require.Equal(t, 1, cache.sets)
}

func TestListCurrencies_CacheErrorFallsThrough(t *testing.T) {
	t.Parallel()
	src := &fakeSource{codes: []string{"CHF"}}
	svc := NewCurrencyService(src, &fakeCache{getErr: ErrRepo}, nil)

	got, err := svc.ListCurrencies(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"CHF"}, got)
}

func TestListCurrencies_UpstreamError(t *testing.T) {
	t.Parallel()
	svc := NewCurrencyService(&fakeSource{err: ErrRepo}, nil, nil)
	_, err := svc.ListCurrencies(context.Background())
	require.ErrorIs(t, err, ErrRepo)
}
