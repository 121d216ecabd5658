package models

import "time"

// Attendance marks whether a child was present on a given day.
type Attendance struct {
	ID        string    `db:"id" json:"id"`
	ChildID   string    `db:"child_id" json:"childId"`
	Date      time.Time `db:"date" json:"date"`
	Present   bool      `db:"present" json:"present"`
	Notes     *string   `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// AttendanceFilter narrows attendance listings. Either Date or ChildID is required.
type AttendanceFilter struct {
	ListParams
	Date    *Date
	ChildID string
}

// AttendanceStats is the present/total ratio for a single day.
type AttendanceStats struct {
	Present int `db:"present" json:"present"`
	Total   int `db:"total" json:"total"`
}

// CreateAttendanceRequest is the insert payload for attendance rows.
type CreateAttendanceRequest struct {
	ChildID string    `json:"childId" validate:"required,uuid"`
	Date    time.Time `json:"date" validate:"required"`
	Present *bool     `json:"present" validate:"required"`
	Notes   *string   `json:"notes"`
}

// UpdateAttendanceRequest is a partial attendance update.
type UpdateAttendanceRequest struct {
	ChildID *string    `json:"childId" validate:"omitempty,uuid"`
	Date    *time.Time `json:"date"`
	Present *bool      `json:"present"`
	Notes   *string    `json:"notes"`
}

// CheckinRequest records attendance from a scanned QR code.
type CheckinRequest struct {
	ChildID string `json:"childId" validate:"required,uuid"`
	Token   string `json:"token" validate:"required"`
}
