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

const communicationColumns = `id, parent_id, type, subject, content, date, status, created_at, updated_at`

// CommunicationRepository provides database access for parent communications.
type CommunicationRepository struct {
	db *sqlx.DB
}

// NewCommunicationRepository creates a new instance of CommunicationRepository.
func NewCommunicationRepository(db *sqlx.DB) *CommunicationRepository {
	return &CommunicationRepository{db: db}
}

// FindByID returns a communication by identifier.
func (r *CommunicationRepository) FindByID(ctx context.Context, id string) (*models.Communication, error) {
	query := `SELECT ` + communicationColumns + ` FROM communications WHERE id = $1`
	var communication models.Communication
	if err := r.db.GetContext(ctx, &communication, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find communication: %w", err)
	}
	return &communication, nil
}

// List returns communications, optionally restricted to one parent.
func (r *CommunicationRepository) List(ctx context.Context, filter models.CommunicationFilter) ([]models.Communication, error) {
	var where whereBuilder
	if filter.ParentID != "" {
		where.add("parent_id = $%d", filter.ParentID)
	}
	query := `SELECT ` + communicationColumns + ` FROM communications` + where.clause() + ` ORDER BY date DESC` + pageClause(filter.ListParams)
	communications := make([]models.Communication, 0)
	if err := r.db.SelectContext(ctx, &communications, query, where.args...); err != nil {
		return nil, fmt.Errorf("list communications: %w", err)
	}
	return communications, nil
}

// Create inserts a new communication.
func (r *CommunicationRepository) Create(ctx context.Context, communication *models.Communication) error {
	if communication.ID == "" {
		communication.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if communication.CreatedAt.IsZero() {
		communication.CreatedAt = now
	}
	if communication.Date.IsZero() {
		communication.Date = now
	}
	communication.UpdatedAt = now
	const query = `INSERT INTO communications (id, parent_id, type, subject, content, date, status, created_at, updated_at)
        VALUES (:id, :parent_id, :type, :subject, :content, :date, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, communication); err != nil {
		return fmt.Errorf("create communication: %w", classifyWriteError(err))
	}
	return nil
}

// Update overwrites the mutable columns of a communication.
func (r *CommunicationRepository) Update(ctx context.Context, communication *models.Communication) error {
	communication.UpdatedAt = time.Now().UTC()
	const query = `UPDATE communications SET parent_id = :parent_id, type = :type, subject = :subject, content = :content,
        date = :date, status = :status, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, communication)
	if err != nil {
		return fmt.Errorf("update communication: %w", classifyWriteError(err))
	}
	return affectedOrNotFound(res)
}

// UpdateStatus sets only the delivery status of a communication.
func (r *CommunicationRepository) UpdateStatus(ctx context.Context, id string, status models.CommunicationStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE communications SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update communication status: %w", err)
	}
	return affectedOrNotFound(res)
}

// Delete removes a communication.
func (r *CommunicationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM communications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete communication: %w", err)
	}
	return affectedOrNotFound(res)
}
