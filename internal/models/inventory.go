package models

import "time"

// InventoryItem is a stocked supply.
type InventoryItem struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Category  *string   `db:"category" json:"category"`
	Notes     *string   `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	ListParams
	Category string
}

// CreateInventoryRequest is the insert payload for inventory items.
type CreateInventoryRequest struct {
	Name     string  `json:"name" validate:"required"`
	Quantity *int    `json:"quantity" validate:"required,gte=0"`
	Category *string `json:"category"`
	Notes    *string `json:"notes"`
}

// UpdateInventoryRequest is a partial inventory update.
type UpdateInventoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Quantity *int    `json:"quantity" validate:"omitempty,gte=0"`
	Category *string `json:"category"`
	Notes    *string `json:"notes"`
}
