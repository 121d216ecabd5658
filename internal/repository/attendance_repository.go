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

const attendanceColumns = `id, child_id, date, present, notes, created_at, updated_at`

// AttendanceRepository provides database access for attendance rows.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository creates a new instance of AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// FindByID returns an attendance row by identifier.
func (r *AttendanceRepository) FindByID(ctx context.Context, id string) (*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`
	var record models.Attendance
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return &record, nil
}

// List returns attendance rows for a child or for the calendar day [dayStart, dayEnd).
func (r *AttendanceRepository) List(ctx context.Context, filter models.AttendanceFilter, dayStart, dayEnd time.Time) ([]models.Attendance, error) {
	var where whereBuilder
	if filter.Date != nil {
		where.add("date >= $%d", dayStart)
		where.add("date < $%d", dayEnd)
	}
	if filter.ChildID != "" {
		where.add("child_id = $%d", filter.ChildID)
	}
	query := `SELECT ` + attendanceColumns + ` FROM attendance` + where.clause() + ` ORDER BY date DESC` + pageClause(filter.ListParams)
	records := make([]models.Attendance, 0)
	if err := r.db.SelectContext(ctx, &records, query, where.args...); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// FindForChildBetween returns the first attendance row for a child within [from, to).
func (r *AttendanceRepository) FindForChildBetween(ctx context.Context, childID string, from, to time.Time) (*models.Attendance, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE child_id = $1 AND date >= $2 AND date < $3 ORDER BY date ASC LIMIT 1`
	var record models.Attendance
	if err := r.db.GetContext(ctx, &record, query, childID, from, to); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find attendance for child: %w", err)
	}
	return &record, nil
}

// Create inserts a new attendance row.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.Attendance) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	const query = `INSERT INTO attendance (id, child_id, date, present, notes, created_at, updated_at)
        VALUES (:id, :child_id, :date, :present, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create attendance: %w", classifyWriteError(err))
	}
	return nil
}

// Update overwrites the mutable columns of an attendance row.
func (r *AttendanceRepository) Update(ctx context.Context, record *models.Attendance) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE attendance SET child_id = :child_id, date = :date, present = :present, notes = :notes, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("update attendance: %w", classifyWriteError(err))
	}
	return affectedOrNotFound(res)
}

// Delete removes an attendance row.
func (r *AttendanceRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	return affectedOrNotFound(res)
}
