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

const programColumns = `id, name, description, start_date, end_date, capacity, price, status, created_at, updated_at`

// ProgramRepository provides database access for programs.
type ProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository creates a new instance of ProgramRepository.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// FindByID returns a program by identifier.
func (r *ProgramRepository) FindByID(ctx context.Context, id string) (*models.Program, error) {
	query := `SELECT ` + programColumns + ` FROM programs WHERE id = $1`
	var program models.Program
	if err := r.db.GetContext(ctx, &program, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find program: %w", err)
	}
	return &program, nil
}

// List returns programs ordered by start date, newest first.
func (r *ProgramRepository) List(ctx context.Context, filter models.ProgramFilter) ([]models.Program, error) {
	var where whereBuilder
	if filter.Status != "" {
		where.add("status = $%d", filter.Status)
	}
	query := `SELECT ` + programColumns + ` FROM programs` + where.clause() + ` ORDER BY start_date DESC, created_at DESC` + pageClause(filter.ListParams)
	programs := make([]models.Program, 0)
	if err := r.db.SelectContext(ctx, &programs, query, where.args...); err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return programs, nil
}

// ListActive returns up to limit programs with status active.
func (r *ProgramRepository) ListActive(ctx context.Context, limit int) ([]models.Program, error) {
	return r.List(ctx, models.ProgramFilter{Status: models.ProgramStatusActive, ListParams: models.ListParams{Limit: limit}})
}

// ListUpcoming returns up to limit programs ordered by start date, newest first.
func (r *ProgramRepository) ListUpcoming(ctx context.Context, limit int) ([]models.Program, error) {
	return r.List(ctx, models.ProgramFilter{ListParams: models.ListParams{Limit: limit}})
}

// Exists reports whether a program with the id exists.
func (r *ProgramRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM programs WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check program exists: %w", err)
	}
	return exists, nil
}

// NamesByIDs maps each requested program id to its name.
func (r *ProgramRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows := make([]struct {
		ID   string `db:"id"`
		Name string `db:"name"`
	}, 0, len(ids))
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, name FROM programs WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("program names: %w", err)
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// Create inserts a new program.
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if program.CreatedAt.IsZero() {
		program.CreatedAt = now
	}
	program.UpdatedAt = now
	const query = `INSERT INTO programs (id, name, description, start_date, end_date, capacity, price, status, created_at, updated_at)
        VALUES (:id, :name, :description, :start_date, :end_date, :capacity, :price, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, program); err != nil {
		return fmt.Errorf("create program: %w", err)
	}
	return nil
}

// Update overwrites the mutable columns of a program.
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	program.UpdatedAt = time.Now().UTC()
	const query = `UPDATE programs SET name = :name, description = :description, start_date = :start_date, end_date = :end_date,
        capacity = :capacity, price = :price, status = :status, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, program)
	if err != nil {
		return fmt.Errorf("update program: %w", err)
	}
	return affectedOrNotFound(res)
}

// Delete removes a program.
func (r *ProgramRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete program: %w", classifyWriteError(err))
	}
	return affectedOrNotFound(res)
}
