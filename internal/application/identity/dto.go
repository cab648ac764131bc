package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/devansh698/PayPilot-smart-billing-management-system-sub001/internal/domain/identity"
)

// LoginRequest carries login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and user profile
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// RegisterClientUserRequest creates a portal login for a client
type RegisterClientUserRequest struct {
	Username string    `json:"username" binding:"required"`
	Password string    `json:"password" binding:"required,min=8"`
	Email    string    `json:"email" binding:"omitempty,email"`
	ClientID uuid.UUID `json:"client_id" binding:"required"`
}

// RegisterStaffUserRequest creates a staff login
type RegisterStaffUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// UserResponse is the API representation of a user
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	Role        string     `json:"role"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role.String(),
		ClientID:    user.ClientID,
		Active:      user.Active,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
