package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodOther    PaymentMethod = "other"
)

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records money received against an enrollment.
type Payment struct {
	ID           string          `db:"id" json:"id"`
	EnrollmentID string          `db:"enrollment_id" json:"enrollmentId"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	PaymentDate  time.Time       `db:"payment_date" json:"paymentDate"`
	Method       PaymentMethod   `db:"method" json:"method"`
	Status       PaymentStatus   `db:"status" json:"status"`
	Notes        *string         `db:"notes" json:"notes"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	ListParams
	EnrollmentID string
}

// CreatePaymentRequest is the insert payload for payments.
type CreatePaymentRequest struct {
	EnrollmentID string          `json:"enrollmentId" validate:"required,uuid"`
	Amount       decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentDate  *time.Time      `json:"paymentDate"`
	Method       PaymentMethod   `json:"method" validate:"required,oneof=cash transfer card other"`
	Status       PaymentStatus   `json:"status" validate:"omitempty,oneof=pending completed refunded failed"`
	Notes        *string         `json:"notes"`
}

// UpdatePaymentRequest is a partial payment update.
type UpdatePaymentRequest struct {
	EnrollmentID *string          `json:"enrollmentId" validate:"omitempty,uuid"`
	Amount       *decimal.Decimal `json:"amount" validate:"omitempty,gt=0"`
	PaymentDate  *time.Time       `json:"paymentDate"`
	Method       *PaymentMethod   `json:"method" validate:"omitempty,oneof=cash transfer card other"`
	Status       *PaymentStatus   `json:"status" validate:"omitempty,oneof=pending completed refunded failed"`
	Notes        *string          `json:"notes"`
}
