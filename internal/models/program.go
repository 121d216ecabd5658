package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProgramStatus is the lifecycle state of a program offering.
type ProgramStatus string

const (
	ProgramStatusDraft     ProgramStatus = "draft"
	ProgramStatusActive    ProgramStatus = "active"
	ProgramStatusComplete  ProgramStatus = "complete"
	ProgramStatusCancelled ProgramStatus = "cancelled"
)

// Program is a scheduled offering children enroll into.
type Program struct {
	ID          string          `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description"`
	StartDate   Date            `db:"start_date" json:"startDate"`
	EndDate     Date            `db:"end_date" json:"endDate"`
	Capacity    int             `db:"capacity" json:"capacity"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Status      ProgramStatus   `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

// ProgramFilter narrows program listings.
type ProgramFilter struct {
	ListParams
	Status ProgramStatus
}

// CreateProgramRequest is the insert payload for programs.
type CreateProgramRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description *string         `json:"description"`
	StartDate   Date            `json:"startDate" validate:"required"`
	EndDate     Date            `json:"endDate" validate:"required,gtefield=StartDate"`
	Capacity    int             `json:"capacity" validate:"gte=0"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Status      ProgramStatus   `json:"status" validate:"omitempty,oneof=draft active complete cancelled"`
}

// UpdateProgramRequest is a partial program update.
type UpdateProgramRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	StartDate   *Date            `json:"startDate"`
	EndDate     *Date            `json:"endDate"`
	Capacity    *int             `json:"capacity" validate:"omitempty,gte=0"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Status      *ProgramStatus   `json:"status" validate:"omitempty,oneof=draft active complete cancelled"`
}
