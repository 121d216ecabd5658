package models

import "time"

// Parent is the guardian responsible for one or more children.
type Parent struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	EmergencyPhone *string   `db:"emergency_phone" json:"emergencyPhone"`
	Neighborhood   *string   `db:"neighborhood" json:"neighborhood"`
	Address        *string   `db:"address" json:"address"`
	Notes          *string   `db:"notes" json:"notes"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// ParentFilter narrows parent listings.
type ParentFilter struct {
	ListParams
}

// CreateParentRequest is the insert payload for parents.
type CreateParentRequest struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"required"`
	EmergencyPhone *string `json:"emergencyPhone"`
	Neighborhood   *string `json:"neighborhood"`
	Address        *string `json:"address"`
	Notes          *string `json:"notes"`
}

// UpdateParentRequest is a partial parent update.
type UpdateParentRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Phone          *string `json:"phone" validate:"omitempty,min=1"`
	EmergencyPhone *string `json:"emergencyPhone"`
	Neighborhood   *string `json:"neighborhood"`
	Address        *string `json:"address"`
	Notes          *string `json:"notes"`
}
