package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"nbprates-service/internal/application"
	"nbprates-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubRates struct {
	gotStart, gotEnd string
	err              error
}

func (s *stubRates) GetSeries(_ context.Context, currency, start, end string) (application.Series, error) {
	s.gotStart, s.gotEnd = start, end
	if s.err != nil {
		return application.Series{}, s.err
	}
	r, err := domain.ParseDateRange(start, end)
	if err != nil {
		return application.Series{}, err
	}
	return application.Series{
		Currency: currency,
		Range:    r,
		Points:   []domain.RatePoint{{Date: r.End, Rate: decimal.RequireFromString("3.85")}},
	}, nil
}

func (s *stubRates) DefaultRange(days int) domain.DateRange {
	end := time.Date(2022, 1, 31, 0, 0, 0, 0, time.UTC)
	return domain.DateRange{Start: end.AddDate(0, 0, -days), End: end}
}

type stubCurrencies []string

func (s stubCurrencies) ListCurrencies(context.Context) ([]string, error) { return s, nil }

func stubLoader(rates seriesGetter, loads *int) loader {
	return func(context.Context) (services, error) {
		if loads != nil {
			*loads++
		}
		return services{rates: rates, currencies: stubCurrencies{"EUR", "USD"}}, nil
	}
}

func run(t *testing.T, rates seriesGetter, args ...string) (string, error) {
	t.Helper()
	return runWith(t, stubLoader(rates, nil), args...)
}

func runWith(t *testing.T, load loader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(load)
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRatesCmd_PrintsSeries(t *testing.T) {
	out, err := run(t, &stubRates{}, "rates", "-c", "USD", "--start", "2022-01-01", "--end", "2022-01-03")
	require.NoError(t, err)
	require.Equal(t, "# USD/PLN 2022-01-01..2022-01-03\n2022-01-03\t3.85\n", out)
}

func TestRatesCmd_DefaultRange(t *testing.T) {
	rates := &stubRates{}
	_, err := run(t, rates, "rates", "--days", "10")
	require.NoError(t, err)
	require.Equal(t, "2022-01-21", rates.gotStart)
	require.Equal(t, "2022-01-31", rates.gotEnd)
}

func TestRatesCmd_Error(t *testing.T) {
	_, err := run(t, &stubRates{err: domain.ErrNotFound}, "rates", "-c", "XYZ")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCurrenciesCmd(t *testing.T) {
	out, err := run(t, &stubRates{}, "currencies")
	require.NoError(t, err)
	require.Equal(t, "EUR\nUSD\n", out)
}

func TestHelp_DoesNotLoadServices(t *testing.T) {
	loads := 0
	out, err := runWith(t, stubLoader(&stubRates{}, &loads), "--help")
	require.NoError(t, err)
	require.Contains(t, out, "currencies")
	require.Zero(t, loads)

	_, err = runWith(t, stubLoader(&stubRates{}, &loads), "currencies")
	require.NoError(t, err)
	require.Equal(t, 1, loads)
}

func TestLoaderError(t *testing.T) {
	_, err := runWith(t, func(context.Context) (services, error) {
		return services{}, domain.ErrUpstreamFailure
	}, "rates")
	require.ErrorIs(t, err, domain.ErrUpstreamFailure)
}
