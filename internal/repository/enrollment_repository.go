package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/nemi-admin-api/internal/models"
)

const enrollmentColumns = `id, program_id, child_id, status, amount, discount, notes, enrollment_date, created_at, updated_at`

// EnrollmentRepository provides database access for enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository creates a new instance of EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// FindByID returns an enrollment by identifier.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*models.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &enrollment, nil
}

// List returns enrollments filtered by program and/or child.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.Enrollment, error) {
	var where whereBuilder
	if filter.ProgramID != "" {
		where.add("program_id = $%d", filter.ProgramID)
	}
	if filter.ChildID != "" {
		where.add("child_id = $%d", filter.ChildID)
	}
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments` + where.clause() + ` ORDER BY enrollment_date DESC` + pageClause(filter.ListParams)
	enrollments := make([]models.Enrollment, 0)
	if err := r.db.SelectContext(ctx, &enrollments, query, where.args...); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

// LabelsByIDs returns program and child display names for the requested enrollments.
func (r *EnrollmentRepository) LabelsByIDs(ctx context.Context, ids []string) ([]models.EnrollmentLabel, error) {
	labels := make([]models.EnrollmentLabel, 0, len(ids))
	if len(ids) == 0 {
		return labels, nil
	}
	const query = `SELECT e.id, p.name AS program_name, c.name AS child_name
        FROM enrollments e JOIN programs p ON p.id = e.program_id JOIN children c ON c.id = e.child_id
        WHERE e.id = ANY($1)`
	if err := r.db.SelectContext(ctx, &labels, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list enrollment labels: %w", err)
	}
	return labels, nil
}

// Exists reports whether an enrollment with the id exists.
func (r *EnrollmentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM enrollments WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check enrollment exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = now
	}
	if enrollment.EnrollmentDate.IsZero() {
		enrollment.EnrollmentDate = now
	}
	enrollment.UpdatedAt = now
	const query = `INSERT INTO enrollments (id, program_id, child_id, status, amount, discount, notes, enrollment_date, created_at, updated_at)
        VALUES (:id, :program_id, :child_id, :status, :amount, :discount, :notes, :enrollment_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", classifyWriteError(err))
	}
	return nil
}

// Update overwrites the mutable columns of an enrollment.
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE enrollments SET program_id = :program_id, child_id = :child_id, status = :status, amount = :amount,
        discount = :discount, notes = :notes, enrollment_date = :enrollment_date, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, enrollment)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", classifyWriteError(err))
	}
	return affectedOrNotFound(res)
}

// Delete removes an enrollment.
func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", classifyWriteError(err))
	}
	return affectedOrNotFound(res)
}
