package application

import (
	"context"
	"errors"
	"sort"
	"time"

	"nbprates-service/internal/domain"

	"github.com/shopspring/decimal"
)

var ErrRepo = errors.New("repo error")

// fakeStore keeps one rate per (currency, date).
type fakeStore struct {
	rows        map[string]map[string]decimal.Decimal
	existsCalls int
	mergeCalls  int
	err         error
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string]map[string]decimal.Decimal{}}
}

func (f *fakeStore) put(currency, date, rate string) {
	if f.rows[currency] == nil {
		f.rows[currency] = map[string]decimal.Decimal{}
	}
	f.rows[currency][date] = decimal.RequireFromString(rate)
}

func inRange(date string, r domain.DateRange) bool {
	return date >= r.Start.Format(domain.DateLayout) && date <= r.End.Format(domain.DateLayout)
}

func (f *fakeStore) ExistingDates(_ context.Context, currency string, r domain.DateRange) (map[string]bool, error) {
	f.existsCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]bool{}
	for d := range f.rows[currency] {
		if inRange(d, r) {
			out[d] = true
		}
	}
	return out, nil
}

func (f *fakeStore) Merge(_ context.Context, currency string, points []domain.RatePoint) error {
	f.mergeCalls++
	if f.err != nil {
		return f.err
	}
	for _, p := range points {
		f.put(currency, p.Date.Format(domain.DateLayout), p.Rate.String())
	}
	return nil
}

func (f *fakeStore) ListRates(_ context.Context, currency string, r domain.DateRange) ([]domain.RatePoint, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.RatePoint
	for d, v := range f.rows[currency] {
		if !inRange(d, r) {
			continue
		}
		t, _ := time.Parse(domain.DateLayout, d)
		out = append(out, domain.RatePoint{Date: t, Rate: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type fakeSource struct {
	points     []domain.RatePoint
	codes      []string
	err        error
	fetchCalls int
	listCalls  int
}

func (f *fakeSource) FetchRates(context.Context, string, domain.DateRange) ([]domain.RatePoint, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.points, nil
}

func (f *fakeSource) ListCurrencies(context.Context) ([]string, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.codes, nil
}

type fakeCache struct {
	codes  []string
	getErr error
	sets   int
}

func (f *fakeCache) Get(context.Context) ([]string, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.codes, f.codes != nil, nil
}

func (f *fakeCache) Set(_ context.Context, codes []string) error {
	f.sets++
	f.codes = codes
	return nil
}

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type fixedID string

func (f fixedID) NewID() string { return string(f) }

func point(date, rate string) domain.RatePoint {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return domain.RatePoint{Date: t, Rate: decimal.RequireFromString(rate)}
}

func mustRange(start, end string) domain.DateRange {
	r, err := domain.ParseDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}
