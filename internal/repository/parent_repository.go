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

const parentColumns = `id, name, email, phone, emergency_phone, neighborhood, address, notes, created_at, updated_at`

// ParentRepository provides database access for parents.
type ParentRepository struct {
	db *sqlx.DB
}

// NewParentRepository creates a new instance of ParentRepository.
func NewParentRepository(db *sqlx.DB) *ParentRepository {
	return &ParentRepository{db: db}
}

// FindByID returns a parent by identifier.
func (r *ParentRepository) FindByID(ctx context.Context, id string) (*models.Parent, error) {
	query := `SELECT ` + parentColumns + ` FROM parents WHERE id = $1`
	var parent models.Parent
	if err := r.db.GetContext(ctx, &parent, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find parent: %w", err)
	}
	return &parent, nil
}

// List returns parents ordered by name.
func (r *ParentRepository) List(ctx context.Context, filter models.ParentFilter) ([]models.Parent, error) {
	query := `SELECT ` + parentColumns + ` FROM parents ORDER BY name ASC` + pageClause(filter.ListParams)
	parents := make([]models.Parent, 0)
	if err := r.db.SelectContext(ctx, &parents, query); err != nil {
		return nil, fmt.Errorf("list parents: %w", err)
	}
	return parents, nil
}

// Exists reports whether a parent with the id exists.
func (r *ParentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM parents WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check parent exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new parent.
func (r *ParentRepository) Create(ctx context.Context, parent *models.Parent) error {
	if parent.ID == "" {
		parent.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if parent.CreatedAt.IsZero() {
		parent.CreatedAt = now
	}
	parent.UpdatedAt = now
	const query = `INSERT INTO parents (id, name, email, phone, emergency_phone, neighborhood, address, notes, created_at, updated_at)
        VALUES (:id, :name, :email, :phone, :emergency_phone, :neighborhood, :address, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, parent); err != nil {
		return fmt.Errorf("create parent: %w", err)
	}
	return nil
}

// Update overwrites the mutable columns of a parent.
func (r *ParentRepository) Update(ctx context.Context, parent *models.Parent) error {
	parent.UpdatedAt = time.Now().UTC()
	const query = `UPDATE parents SET name = :name, email = :email, phone = :phone, emergency_phone = :emergency_phone,
        neighborhood = :neighborhood, address = :address, notes = :notes, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, parent)
	if err != nil {
		return fmt.Errorf("update parent: %w", err)
	}
	return affectedOrNotFound(res)
}

// Delete removes a parent.
func (r *ParentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM parents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete parent: %w", classifyWriteError(err))
	}
	return affectedOrNotFound(res)
}
