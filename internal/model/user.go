package model

import "time"

// Role is the access level assigned to a user account.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// User represents a staff or student account.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	IsDeleted    bool      `json:"-"`
	Grade        *string   `json:"grade,omitempty"`
	Board        *string   `json:"board,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest is the payload for email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserRequest is the payload for creating a user account.
type CreateUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
	Role     string  `json:"role" binding:"required,oneof=ADMIN TEACHER STUDENT"`
	Grade    *string `json:"grade"`
	Board    *string `json:"board"`
}

// UpdateUserRequest is the payload for updating a user account.
// Password is optional; when empty the stored hash is left untouched.
type UpdateUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"omitempty,min=6,max=72"`
	Role     string  `json:"role" binding:"required,oneof=ADMIN TEACHER STUDENT"`
	Grade    *string `json:"grade"`
	Board    *string `json:"board"`
}

// ForgotPasswordRequest is the payload to request a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the payload to set a new password with a token.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}
