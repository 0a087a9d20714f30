package dto

import (
	"time"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a back-office user.
type CreateUserRequest struct {
	Name     string          `json:"name" binding:"required"`
	Surname  string          `json:"surname" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=ADMIN AGENT"`
}

// UpdateUserRequest defines the updatable fields of a user.
type UpdateUserRequest struct {
	Name    *string          `json:"name,omitempty"`
	Surname *string          `json:"surname,omitempty"`
	Email   *string          `json:"email,omitempty" binding:"omitempty,email"`
	Role    *domain.UserRole `json:"role,omitempty" binding:"omitempty,oneof=ADMIN AGENT"`
	Active  *bool            `json:"active,omitempty"`
}

// ChangePasswordRequest carries a password change for the authenticated user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserResponse defines the data returned for a user. The password hash
// never leaves the service layer.
type UserResponse struct {
	UserID      string          `json:"userID"`
	Name        string          `json:"name"`
	Surname     string          `json:"surname"`
	Email       string          `json:"email"`
	Role        domain.UserRole `json:"role"`
	Active      bool            `json:"active"`
	LastLoginAt *time.Time      `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		Name:        u.Name,
		Surname:     u.Surname,
		Email:       u.Email,
		Role:        u.Role,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to response DTOs
func ToListUserResponse(users []domain.User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = ToUserResponse(&u)
	}
	return res
}
