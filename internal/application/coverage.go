package application

import (
	"context"

	"nbprates-service/internal/domain"
)

// CoverageChecker decides whether the store already holds every business day
// of a range for a currency.
type CoverageChecker struct {
	store RateStore
}

func NewCoverageChecker(store RateStore) *CoverageChecker {
	return &CoverageChecker{store: store}
}

// IsCovered reports whether every Monday..Friday in r has a stored rate.
// Ranges without business days are covered and do not touch the store.
func (c *CoverageChecker) IsCovered(ctx context.Context, currency string, r domain.DateRange) (bool, error) {
	missing, err := c.Missing(ctx, currency, r, 1)
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

// Missing returns up to limit business days of r absent from the store.
// limit <= 0 means no limit.
func (c *CoverageChecker) Missing(ctx context.Context, currency string, r domain.DateRange, limit int) ([]string, error) {
	days := r.BusinessDays()
	if len(days) == 0 {
		return nil, nil
	}
	have, err := c.store.ExistingDates(ctx, currency, r)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, d := range days {
		key := d.Format(domain.DateLayout)
		if have[key] {
			continue
		}
		missing = append(missing, key)
		if limit > 0 && len(missing) >= limit {
			break
		}
	}
	return missing, nil
}
