package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/nemi-admin-api/internal/models"
)

// StatsRepository runs the aggregate queries behind the dashboard.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// ActiveChildrenCount counts distinct children holding at least one confirmed
// enrollment or at least one completed payment.
func (r *StatsRepository) ActiveChildrenCount(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(DISTINCT e.child_id) FROM enrollments e
        LEFT JOIN payments p ON p.enrollment_id = e.id
        WHERE e.status = 'confirmed' OR p.status = 'completed'`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count active children: %w", err)
	}
	return count, nil
}

// ActiveProgramsCount counts distinct programs with at least one enrollment that
// is confirmed or carries a completed payment.
func (r *StatsRepository) ActiveProgramsCount(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(DISTINCT e.program_id) FROM enrollments e
        LEFT JOIN payments p ON p.enrollment_id = e.id
        WHERE e.status = 'confirmed' OR p.status = 'completed'`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count active programs: %w", err)
	}
	return count, nil
}

// CompletedPaymentsTotal sums completed payments dated within [from, to).
func (r *StatsRepository) CompletedPaymentsTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(amount), 0) FROM payments
        WHERE status = 'completed' AND payment_date >= $1 AND payment_date < $2`
	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, from, to); err != nil {
		return decimal.Zero, fmt.Errorf("sum monthly income: %w", err)
	}
	return total, nil
}

// AttendanceBetween returns present and total attendance rows dated within [from, to).
func (r *StatsRepository) AttendanceBetween(ctx context.Context, from, to time.Time) (models.AttendanceStats, error) {
	const query = `SELECT COUNT(*) AS total, COALESCE(SUM(CASE WHEN present THEN 1 ELSE 0 END), 0) AS present
        FROM attendance WHERE date >= $1 AND date < $2`
	var stats models.AttendanceStats
	if err := r.db.GetContext(ctx, &stats, query, from, to); err != nil {
		return models.AttendanceStats{}, fmt.Errorf("attendance stats: %w", err)
	}
	return stats, nil
}
