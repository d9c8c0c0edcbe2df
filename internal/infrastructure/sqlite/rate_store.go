package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"nbprates-service/internal/application"
	"nbprates-service/internal/domain"
	"nbprates-service/internal/infrastructure/logx"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var _ application.RateStore = (*RateStore)(nil)

type RateStore struct {
	db *sql.DB
}

func NewRateStore(db *DB) *RateStore { return &RateStore{db: db.DB} }

func (s *RateStore) ExistingDates(ctx context.Context, currency string, r domain.DateRange) (map[string]bool, error) {
	const q = `SELECT date FROM rates WHERE currency = ? AND date BETWEEN ? AND ?`
	rows, err := s.db.QueryContext(ctx, q, currency, r.Start.Format(domain.DateLayout), r.End.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("existing dates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	dates := make(map[string]bool)
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates[d] = true
	}
	return dates, rows.Err()
}

// Merge upserts points for currency in one transaction; the latest value for
// a date replaces any stored one.
func (s *RateStore) Merge(ctx context.Context, currency string, points []domain.RatePoint) error {
	points = domain.CollapseByDate(points)
	if len(points) == 0 {
		return nil
	}
	const up = `
        INSERT INTO rates (date, currency, rate)
        VALUES (?, ?, ?)
        ON CONFLICT (currency, date) DO UPDATE
          SET rate = excluded.rate, updated_at = excluded.updated_at`
	log := logx.L().With(
		zap.String("repo", "sqlite_rates"),
		zap.String("operation", "Merge"),
		zap.String("currency", currency),
		zap.Int("points", len(points)),
	)
	log.Debug("sql.tx_start")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin merge: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, up)
	if err != nil {
		return fmt.Errorf("prepare merge: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range points {
		if _, err := stmt.ExecContext(ctx, p.Date.Format(domain.DateLayout), currency, p.Rate.String()); err != nil {
			log.Error("sql.exec_failed", zap.Error(err))
			return fmt.Errorf("merge rate %s: %w", p.Date.Format(domain.DateLayout), err)
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("sql.commit_failed", zap.Error(err))
		return fmt.Errorf("commit merge: %w", err)
	}
	log.Debug("sql.tx_success")
	return nil
}

func (s *RateStore) ListRates(ctx context.Context, currency string, r domain.DateRange) ([]domain.RatePoint, error) {
	const q = `SELECT date, rate FROM rates
		WHERE currency = ? AND date BETWEEN ? AND ?
		ORDER BY date ASC`
	rows, err := s.db.QueryContext(ctx, q, currency, r.Start.Format(domain.DateLayout), r.End.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.RatePoint
	for rows.Next() {
		var d string
		var rate decimal.Decimal
		if err := rows.Scan(&d, &rate); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		t, err := domain.ParseDate(d)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.RatePoint{Date: t, Rate: rate})
	}
	return out, rows.Err()
}

// Count returns the number of stored rows for currency.
func (s *RateStore) Count(ctx context.Context, currency string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rates WHERE currency = ?`, currency).Scan(&n)
	return n, err
}
