package models

import "time"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

// User represents an application user stored in the users table.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Role         UserRole  `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateUserRequest is the payload for registering staff accounts.
type CreateUserRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=64"`
	Password string   `json:"password" validate:"required,min=6"`
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Role     UserRole `json:"role" validate:"omitempty,oneof=admin staff"`
}

// UpdateUserRequest is a partial user update.
type UpdateUserRequest struct {
	Name     *string   `json:"name" validate:"omitempty,min=1"`
	Email    *string   `json:"email" validate:"omitempty,email"`
	Role     *UserRole `json:"role" validate:"omitempty,oneof=admin staff"`
	Password *string   `json:"password" validate:"omitempty,min=6"`
}
