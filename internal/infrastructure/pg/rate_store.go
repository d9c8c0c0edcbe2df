package pg

import (
	"context"
	"fmt"
	"time"

	"nbprates-service/internal/application"
	"nbprates-service/internal/domain"
	"nbprates-service/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var _ application.RateStore = (*RateStore)(nil)

type RateStore struct {
	uow *UnitOfWork
}

func NewRateStore(db *DB) *RateStore { return &RateStore{uow: &UnitOfWork{Pool: db.Pool}} }

func (r *RateStore) ExistingDates(ctx context.Context, currency string, rg domain.DateRange) (map[string]bool, error) {
	const q = `SELECT date FROM rates WHERE currency=$1 AND date BETWEEN $2 AND $3`
	rows, err := r.uow.q(ctx).Query(ctx, q, currency, rg.Start, rg.End)
	if err != nil {
		return nil, fmt.Errorf("existing dates: %w", err)
	}
	defer rows.Close()

	dates := make(map[string]bool)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates[d.Format(domain.DateLayout)] = true
	}
	return dates, rows.Err()
}

// Merge upserts points for currency in one transaction; the latest value for
// a date replaces any stored one.
func (r *RateStore) Merge(ctx context.Context, currency string, points []domain.RatePoint) error {
	points = domain.CollapseByDate(points)
	if len(points) == 0 {
		return nil
	}
	const up = `
        INSERT INTO rates(date, currency, rate, updated_at)
        VALUES ($1, $2, $3::numeric, NOW())
        ON CONFLICT (currency, date) DO UPDATE
          SET rate=EXCLUDED.rate, updated_at=EXCLUDED.updated_at`
	log := logx.L().With(
		zap.String("repo", "pg_rates"),
		zap.String("operation", "Merge"),
		zap.String("currency", currency),
		zap.Int("points", len(points)),
	)
	log.Debug("sql.batch_start")

	err := r.uow.Do(ctx, func(ctx context.Context) error {
		b := &pgx.Batch{}
		for _, p := range points {
			b.Queue(up, p.Date, currency, p.Rate.String())
		}
		br := r.uow.q(ctx).SendBatch(ctx, b)
		for range points {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return err
			}
		}
		return br.Close()
	})
	if err != nil {
		log.Error("sql.batch_failed", zap.Error(err))
		return fmt.Errorf("merge rates: %w", err)
	}
	log.Debug("sql.batch_success")
	return nil
}

func (r *RateStore) ListRates(ctx context.Context, currency string, rg domain.DateRange) ([]domain.RatePoint, error) {
	const q = `
        SELECT date, rate::text FROM rates
        WHERE currency=$1 AND date BETWEEN $2 AND $3
        ORDER BY date`
	rows, err := r.uow.q(ctx).Query(ctx, q, currency, rg.Start, rg.End)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	defer rows.Close()

	var out []domain.RatePoint
	for rows.Next() {
		var d time.Time
		var s string
		if err := rows.Scan(&d, &s); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		rate, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("parse rate %q: %w", s, err)
		}
		out = append(out, domain.RatePoint{Date: domain.DateOf(d), Rate: rate})
	}
	return out, rows.Err()
}

func (r *RateStore) Count(ctx context.Context, currency string) (int, error) {
	var n int
	err := r.uow.q(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM rates WHERE currency=$1`, currency).Scan(&n)
	return n, err
}
