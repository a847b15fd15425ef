package dto

import (
	"time"

	"github.com/slotfleet/maintenance-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload.
type RegisterRequest struct {
	Username string      `json:"username"`
	Name     string      `json:"nombre"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"rol"`
}

// UpdateUserRequest carries a merge-patch; absent fields stay nil.
type UpdateUserRequest struct {
	Username *string      `json:"username"`
	Name     *string      `json:"nombre"`
	Email    *string      `json:"email"`
	Password *string      `json:"password"`
	Role     *domain.Role `json:"rol"`
	Active   *bool        `json:"activo"`
}

// UserResponse never exposes the password hash.
type UserResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	Name      string      `json:"nombre"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"rol"`
	Active    bool        `json:"activo"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewUserResponse maps the domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
