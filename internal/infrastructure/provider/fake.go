package provider

import (
	"context"
	"sort"

	"nbprates-service/internal/application"
	"nbprates-service/internal/domain"

	"github.com/shopspring/decimal"
)

// Ensure Fake implements application.RateSource.
var _ application.RateSource = (*Fake)(nil)

// Fake publishes one constant rate for every business day and a fixed
// currency list. Used offline and in e2e profiles.
type Fake struct {
	rate  decimal.Decimal
	codes []string
}

func NewFake(rate decimal.Decimal, codes ...string) *Fake {
	if len(codes) == 0 {
		codes = []string{"CHF", "EUR", "GBP", "USD"}
	}
	sorted := append([]string(nil), codes...)
	sort.Strings(sorted)
	return &Fake{rate: rate, codes: sorted}
}

func (f *Fake) FetchRates(_ context.Context, currency string, r domain.DateRange) ([]domain.RatePoint, error) {
	if !f.known(currency) {
		return nil, domain.ErrNotFound
	}
	days := r.BusinessDays()
	if len(days) == 0 {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.RatePoint, 0, len(days))
	for _, d := range days {
		out = append(out, domain.RatePoint{Date: d, Rate: f.rate})
	}
	return out, nil
}

func (f *Fake) ListCurrencies(context.Context) ([]string, error) {
	return append([]string(nil), f.codes...), nil
}

func (f *Fake) known(code string) bool {
	i := sort.SearchStrings(f.codes, code)
	return i < len(f.codes) && f.codes[i] == code
}
