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

const childColumns = `id, name, birth_date, age, allergies, medical_notes, interests, parent_id, created_at, updated_at`

// ChildRepository provides database access for children.
type ChildRepository struct {
	db *sqlx.DB
}

// NewChildRepository creates a new instance of ChildRepository.
func NewChildRepository(db *sqlx.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// FindByID returns a child by identifier.
func (r *ChildRepository) FindByID(ctx context.Context, id string) (*models.Child, error) {
	query := `SELECT ` + childColumns + ` FROM children WHERE id = $1`
	var child models.Child
	if err := r.db.GetContext(ctx, &child, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find child: %w", err)
	}
	return &child, nil
}

// List returns children, optionally restricted to one parent.
func (r *ChildRepository) List(ctx context.Context, filter models.ChildFilter) ([]models.Child, error) {
	var where whereBuilder
	if filter.ParentID != "" {
		where.add("parent_id = $%d", filter.ParentID)
	}
	query := `SELECT ` + childColumns + ` FROM children` + where.clause() + ` ORDER BY name ASC` + pageClause(filter.ListParams)
	children := make([]models.Child, 0)
	if err := r.db.SelectContext(ctx, &children, query, where.args...); err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return children, nil
}

// Exists reports whether a child with the id exists.
func (r *ChildRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM children WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check child exists: %w", err)
	}
	return exists, nil
}

// NamesByIDs maps each requested child id to its name.
func (r *ChildRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows := make([]struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}, 0, len(ids))
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name FROM children WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("child names: %w", err)
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// Create inserts a new child.
func (r *ChildRepository) Create(ctx context.Context, child *models.Child) error {
	if child.ID == "" {
		child.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if child.CreatedAt.IsZero() {
		child.CreatedAt = now
	}
	child.UpdatedAt = now
	const query = `INSERT INTO children (id, name, birth_date, age, allergies, medical_notes, interests, parent_id, created_at, updated_at)
        VALUES (:id, :name, :birth_date, :age, :allergies, :medical_notes, :interests, :parent_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, child); err != nil {
		return fmt.Errorf("create child: %w", classifyWriteError(err))
	}
	return nil
}

// Update overwrites the mutable columns of a child.
func (r *ChildRepository) Update(ctx context.Context, child *models.Child) error {
	child.UpdatedAt = time.Now().UTC()
	const query = `UPDATE children SET name = :name, birth_date = :birth_date, age = :age, allergies = :allergies,
        medical_notes = :medical_notes, interests = :interests, parent_id = :parent_id, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, child)
	if err != nil {
		return fmt.Errorf("update child: %w", classifyWriteError(err))
	}
	return affectedOrNotFound(res)
}

// Delete removes a child.
func (r *ChildRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM children WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete child: %w", classifyWriteError(err))
	}
	return affectedOrNotFound(res)
}
