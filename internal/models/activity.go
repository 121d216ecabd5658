package models

import "time"

// Activity is a scheduled session inside a program.
type Activity struct {
	ID          string    `db:"id" json:"id"`
	ProgramID   string    `db:"program_id" json:"programId"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	Date        Date      `db:"date" json:"date"`
	StartTime   string    `db:"start_time" json:"startTime"`
	EndTime     string    `db:"end_time" json:"endTime"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// ActivityFilter narrows activity listings.
type ActivityFilter struct {
	ListParams
	ProgramID string
}

// CreateActivityRequest is the insert payload for activities.
type CreateActivityRequest struct {
	ProgramID   string  `json:"programId" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Date        Date    `json:"date" validate:"required"`
	StartTime   string  `json:"startTime" validate:"required,datetime=15:04"`
	EndTime     string  `json:"endTime" validate:"required,datetime=15:04"`
}

// UpdateActivityRequest is a partial activity update.
type UpdateActivityRequest struct {
	ProgramID   *string `json:"programId" validate:"omitempty,uuid"`
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Date        *Date   `json:"date"`
	StartTime   *string `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime     *string `json:"endTime" validate:"omitempty,datetime=15:04"`
}
