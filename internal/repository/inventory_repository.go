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

const inventoryColumns = `id, name, quantity, category, notes, created_at, updated_at`

// InventoryRepository provides database access for inventory items.
type InventoryRepository struct {
	db *sqlx.DB
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository(db *sqlx.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// FindByID returns an inventory item by identifier.
func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1`
	var item models.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find inventory item: %w", err)
	}
	return &item, nil
}

// List returns inventory items, optionally restricted to one category.
func (r *InventoryRepository) List(ctx context.Context, filter models.InventoryFilter) ([]models.InventoryItem, error) {
	var where whereBuilder
	if filter.Category != "" {
		where.add("category = $%d", filter.Category)
	}
	query := `SELECT ` + inventoryColumns + ` FROM inventory` + where.clause() + ` ORDER BY name ASC` + pageClause(filter.ListParams)
	items := make([]models.InventoryItem, 0)
	if err := r.db.SelectContext(ctx, &items, query, where.args...); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return items, nil
}

// Create inserts a new inventory item.
func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	const query = `INSERT INTO inventory (id, name, quantity, category, notes, created_at, updated_at)
        VALUES (:id, :name, :quantity, :category, :notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

// Update overwrites the mutable columns of an inventory item.
func (r *InventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE inventory SET name = :name, quantity = :quantity, category = :category, notes = :notes, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	return affectedOrNotFound(res)
}

// Delete removes an inventory item.
func (r *InventoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	return affectedOrNotFound(res)
}
