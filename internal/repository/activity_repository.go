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

const activityColumns = `id, program_id, name, description, date, start_time, end_time, created_at, updated_at`

// ActivityRepository provides database access for program activities.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new instance of ActivityRepository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// FindByID returns an activity by identifier.
func (r *ActivityRepository) FindByID(ctx context.Context, id string) (*models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`
	var activity models.Activity
	if err := r.db.GetContext(ctx, &activity, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find activity: %w", err)
	}
	return &activity, nil
}

// List returns activities, optionally restricted to one program.
func (r *ActivityRepository) List(ctx context.Context, filter models.ActivityFilter) ([]models.Activity, error) {
	var where whereBuilder
	if filter.ProgramID != "" {
		where.add("program_id = $%d", filter.ProgramID)
	}
	query := `SELECT ` + activityColumns + ` FROM activities` + where.clause() + ` ORDER BY date ASC, start_time ASC` + pageClause(filter.ListParams)
	activities := make([]models.Activity, 0)
	if err := r.db.SelectContext(ctx, &activities, query, where.args...); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// Create inserts a new activity.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = now
	}
	activity.UpdatedAt = now
	const query = `INSERT INTO activities (id, program_id, name, description, date, start_time, end_time, created_at, updated_at)
        VALUES (:id, :program_id, :name, :description, :date, :start_time, :end_time, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, activity); err != nil {
		return fmt.Errorf("create activity: %w", classifyWriteError(err))
	}
	return nil
}

// Update overwrites the mutable columns of an activity.
func (r *ActivityRepository) Update(ctx context.Context, activity *models.Activity) error {
	activity.UpdatedAt = time.Now().UTC()
	const query = `UPDATE activities SET program_id = :program_id, name = :name, description = :description, date = :date,
        start_time = :start_time, end_time = :end_time, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, activity)
	if err != nil {
		return fmt.Errorf("update activity: %w", classifyWriteError(err))
	}
	return affectedOrNotFound(res)
}

// Delete removes an activity.
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	return affectedOrNotFound(res)
}
