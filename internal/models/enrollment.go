package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentStatusPending   EnrollmentStatus = "pending"
	EnrollmentStatusConfirmed EnrollmentStatus = "confirmed"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

// Enrollment associates one child with one program.
type Enrollment struct {
	ID             string           `db:"id" json:"id"`
	ProgramID      string           `db:"program_id" json:"programId"`
	ChildID        string           `db:"child_id" json:"childId"`
	Status         EnrollmentStatus `db:"status" json:"status"`
	Amount         decimal.Decimal  `db:"amount" json:"amount"`
	Discount       decimal.Decimal  `db:"discount" json:"discount"`
	Notes          *string          `db:"notes" json:"notes"`
	EnrollmentDate time.Time        `db:"enrollment_date" json:"enrollmentDate"`
	CreatedAt      time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updatedAt"`
}

// EnrollmentFilter narrows enrollment listings.
type EnrollmentFilter struct {
	ListParams
	ProgramID string
	ChildID   string
}

// EnrollmentLabel carries the display names behind an enrollment.
type EnrollmentLabel struct {
	ID          string `db:"id"`
	ProgramName string `db:"program_name"`
	ChildName   string `db:"child_name"`
}

// CreateEnrollmentRequest is the insert payload for enrollments.
type CreateEnrollmentRequest struct {
	ProgramID      string           `json:"programId" validate:"required,uuid"`
	ChildID        string           `json:"childId" validate:"required,uuid"`
	Status         EnrollmentStatus `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
	Amount         decimal.Decimal  `json:"amount" validate:"gte=0"`
	Discount       decimal.Decimal  `json:"discount" validate:"gte=0"`
	Notes          *string          `json:"notes"`
	EnrollmentDate *time.Time       `json:"enrollmentDate"`
}

// UpdateEnrollmentRequest is a partial enrollment update.
type UpdateEnrollmentRequest struct {
	ProgramID      *string           `json:"programId" validate:"omitempty,uuid"`
	ChildID        *string           `json:"childId" validate:"omitempty,uuid"`
	Status         *EnrollmentStatus `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
	Amount         *decimal.Decimal  `json:"amount" validate:"omitempty,gte=0"`
	Discount       *decimal.Decimal  `json:"discount" validate:"omitempty,gte=0"`
	Notes          *string           `json:"notes"`
	EnrollmentDate *time.Time        `json:"enrollmentDate"`
}
