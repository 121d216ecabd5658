package models

import "time"

// Child is a registered kid. Every child belongs to exactly one parent.
type Child struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	BirthDate    Date      `db:"birth_date" json:"birthDate"`
	Age          *int      `db:"age" json:"age"`
	Allergies    *string   `db:"allergies" json:"allergies"`
	MedicalNotes *string   `db:"medical_notes" json:"medicalNotes"`
	Interests    *string   `db:"interests" json:"interests"`
	ParentID     string    `db:"parent_id" json:"parentId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// ChildFilter narrows child listings.
type ChildFilter struct {
	ListParams
	ParentID string
}

// CreateChildRequest is the insert payload for children.
type CreateChildRequest struct {
	Name         string  `json:"name" validate:"required"`
	BirthDate    Date    `json:"birthDate" validate:"required"`
	Age          *int    `json:"age" validate:"omitempty,gte=0,lte=18"`
	Allergies    *string `json:"allergies"`
	MedicalNotes *string `json:"medicalNotes"`
	Interests    *string `json:"interests"`
	ParentID     string  `json:"parentId" validate:"required,uuid"`
}

// UpdateChildRequest is a partial child update.
type UpdateChildRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	BirthDate    *Date   `json:"birthDate"`
	Age          *int    `json:"age" validate:"omitempty,gte=0,lte=18"`
	Allergies    *string `json:"allergies"`
	MedicalNotes *string `json:"medicalNotes"`
	Interests    *string `json:"interests"`
	ParentID     *string `json:"parentId" validate:"omitempty,uuid"`
}
