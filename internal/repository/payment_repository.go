package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/nemi-admin-api/internal/models"
)

const paymentColumns = `id, enrollment_id, amount, payment_date, method, status, notes, created_at, updated_at`

// PaymentRepository provides database access for payments.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new instance of PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// FindByID returns a payment by identifier.
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &payment, nil
}

// List returns payments, optionally restricted to one enrollment.
func (r *PaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	var where whereBuilder
	if filter.EnrollmentID != "" {
		where.add("enrollment_id = $%d", filter.EnrollmentID)
	}
	query := `SELECT ` + paymentColumns + ` FROM payments` + where.clause() + ` ORDER BY payment_date DESC` + pageClause(filter.ListParams)
	payments := make([]models.Payment, 0)
	if err := r.db.SelectContext(ctx, &payments, query, where.args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// Create inserts a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = now
	}
	payment.UpdatedAt = now
	const query = `INSERT INTO payments (id, enrollment_id, amount, payment_date, method, status, notes, created_at, updated_at)
        VALUES (:id, :enrollment_id, :amount, :payment_date, :method, :status, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("create payment: %w", classifyWriteError(err))
	}
	return nil
}

// Update overwrites the mutable columns of a payment.
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	payment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE payments SET enrollment_id = :enrollment_id, amount = :amount, payment_date = :payment_date,
        method = :method, status = :status, notes = :notes, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, payment)
	if err != nil {
		return fmt.Errorf("update payment: %w", classifyWriteError(err))
	}
	return affectedOrNotFound(res)
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return affectedOrNotFound(res)
}
