package application

import (
	"context"
	"fmt"
	"time"

	"nbprates-service/internal/domain"

	"go.uber.org/zap"
)

// Series is the ordered rate series for one currency and range.
type Series struct {
	Currency  string
	Range     domain.DateRange
	Points    []domain.RatePoint
	FromCache bool
}

type RatesService struct {
	store    RateStore
	source   RateSource
	coverage *CoverageChecker
	clock    Clock
	idgen    IDGen
	log      *zap.Logger
}

type Option func(*RatesService)

func WithClock(c Clock) Option        { return func(s *RatesService) { s.clock = c } }
func WithIDGen(g IDGen) Option        { return func(s *RatesService) { s.idgen = g } }
func WithLogger(l *zap.Logger) Option { return func(s *RatesService) { s.log = l } }

func NewRatesService(store RateStore, source RateSource, opts ...Option) *RatesService {
	s := &RatesService{
		store:    store,
		source:   source,
		coverage: NewCoverageChecker(store),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.idgen == nil {
		s.idgen = defaultIDGen{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// GetSeries runs one reconciliation cycle: check the cache, fetch and merge
// when a business day is missing, then read the range back from the store.
func (s *RatesService) GetSeries(ctx context.Context, currency, start, end string) (Series, error) {
	code, err := domain.NormalizeCurrency(currency)
	if err != nil {
		return Series{}, err
	}
	r, err := domain.ParseDateRange(start, end)
	if err != nil {
		return Series{}, err
	}
	// NBP publishes a day's table on that day; yesterday is the last complete one.
	if err := r.NotAfter(s.yesterday()); err != nil {
		return Series{}, err
	}
	return s.Reconcile(ctx, code, r)
}

// Reconcile is GetSeries for an already validated currency and range.
func (s *RatesService) Reconcile(ctx context.Context, currency string, r domain.DateRange) (Series, error) {
	log := s.log.With(
		zap.String("cycle_id", s.idgen.NewID()),
		zap.String("currency", currency),
		zap.String("range", r.String()),
	)
	out := Series{Currency: currency, Range: r}

	covered, err := s.coverage.IsCovered(ctx, currency, r)
	if err != nil {
		log.Error("reconcile.check_failed", zap.Error(err))
		return Series{}, fmt.Errorf("check cache: %w", err)
	}

	if covered {
		log.Info("reconcile.cache_hit")
		out.FromCache = true
	} else {
		log.Info("reconcile.cache_miss")
		points, err := s.source.FetchRates(ctx, currency, r)
		if err != nil {
			log.Warn("reconcile.fetch_failed", zap.Error(err))
			return Series{}, err
		}
		if missing := missingDays(r, points); missing > 0 {
			log.Warn("reconcile.partial_data",
				zap.Int("returned", len(points)),
				zap.Int("missing_business_days", missing),
			)
		}
		if err := s.store.Merge(ctx, currency, points); err != nil {
			log.Error("reconcile.merge_failed", zap.Error(err))
			return Series{}, fmt.Errorf("merge rates: %w", err)
		}
		log.Info("reconcile.merged", zap.Int("points", len(points)))
	}

	out.Points, err = s.store.ListRates(ctx, currency, r)
	if err != nil {
		log.Error("reconcile.read_failed", zap.Error(err))
		return Series{}, fmt.Errorf("read rates: %w", err)
	}
	return out, nil
}

// DefaultRange returns the range of the given number of calendar days ending
// yesterday. days is clamped to 0..MaxSpanDays.
func (s *RatesService) DefaultRange(days int) domain.DateRange {
	return DefaultRange(s.clock, days)
}

func DefaultRange(c Clock, days int) domain.DateRange {
	if days < 0 {
		days = 0
	}
	if days > domain.MaxSpanDays {
		days = domain.MaxSpanDays
	}
	end := yesterday(c)
	return domain.DateRange{Start: end.AddDate(0, 0, -days), End: end}
}

func yesterday(c Clock) time.Time {
	return domain.DateOf(c.Now()).AddDate(0, 0, -1)
}

func (s *RatesService) yesterday() time.Time { return yesterday(s.clock) }

func missingDays(r domain.DateRange, points []domain.RatePoint) int {
	got := make(map[time.Time]bool, len(points))
	for _, p := range points {
		got[domain.DateOf(p.Date)] = true
	}
	n := 0
	for _, d := range r.BusinessDays() {
		if !got[d] {
			n++
		}
	}
	return n
}
