package worker

import (
	"context"
	"time"

	"nbprates-service/internal/application"
	"nbprates-service/internal/domain"

	"go.uber.org/zap"
)

var _ application.Worker = (*Refresher)(nil)

type reconciler interface {
	Reconcile(ctx context.Context, currency string, r domain.DateRange) (application.Series, error)
	DefaultRange(days int) domain.DateRange
}

// Refresher keeps the store warm for a watchlist by running the
// reconciliation cycle for each currency in turn on every tick.
type Refresher struct {
	Rates     reconciler
	Watchlist []string

	RefreshEvery time.Duration
	Days         int
	Log          *zap.Logger
}

func (w *Refresher) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	every, days := w.RefreshEvery, w.Days
	if every <= 0 {
		every = time.Hour
	}
	if days <= 0 {
		days = 30
	}

	log.Info("refresher_started",
		zap.Duration("refresh_every", every),
		zap.Int("days", days),
		zap.Strings("watchlist", w.Watchlist),
	)
	w.tick(ctx, log, days)

	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("refresher_stopped")
			return
		case <-t.C:
			w.tick(ctx, log, days)
		}
	}
}

func (w *Refresher) tick(ctx context.Context, log *zap.Logger, days int) {
	r := w.Rates.DefaultRange(days)
	for _, code := range w.Watchlist {
		if ctx.Err() != nil {
			return
		}
		c, err := domain.NormalizeCurrency(code)
		if err != nil {
			log.Warn("refresh_skipped", zap.String("currency", code), zap.Error(err))
			continue
		}
		s, err := w.Rates.Reconcile(ctx, c, r)
		if err != nil {
			log.Warn("refresh_failed", zap.String("currency", c), zap.Error(err))
			continue
		}
		log.Info("refresh_done",
			zap.String("currency", c),
			zap.Bool("from_cache", s.FromCache),
			zap.Int("points", len(s.Points)),
		)
	}
}
