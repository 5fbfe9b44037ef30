package transport

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/user_service/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := ValidateUsername(r.Username); err != nil {
		return err
	}
	return ValidatePassword(r.Password)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	if r.Username == "" {
		return FieldError{Field: "username", Message: "username is required"}
	}
	return ValidatePassword(r.NewPassword)
}

type AddUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
	IsActive bool   `json:"is_active"`
}

func (r AddUserRequest) Validate() error {
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := ValidateUsername(r.Username); err != nil {
		return err
	}
	return ValidatePassword(r.Password)
}

// UpdateUserRequest fields are all optional; absent fields stay untouched.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	IsAdmin  *bool   `json:"is_admin"`
	IsActive *bool   `json:"is_active"`
}

func (r UpdateUserRequest) Validate() error {
	if r.Email != nil {
		if err := ValidateEmail(*r.Email); err != nil {
			return err
		}
	}
	if r.Username != nil {
		if err := ValidateUsername(*r.Username); err != nil {
			return err
		}
	}
	return nil
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	Email    string    `json:"email"`
	Username string    `json:"username"`
	UUID     uuid.UUID `json:"uuid"`
}

type UserDetailResponse struct {
	ID       uint      `json:"id"`
	UUID     uuid.UUID `json:"uuid"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsAdmin  bool      `json:"is_admin"`
	IsActive bool      `json:"is_active"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		Email:    u.Email,
		Username: u.Username,
		UUID:     u.UUID,
	}
}

func ToUserDetailResponse(u *models.User) UserDetailResponse {
	return UserDetailResponse{
		ID:       u.ID,
		UUID:     u.UUID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
		IsActive: u.IsActive,
	}
}

func ToUserDetailResponses(users []models.User) []UserDetailResponse {
	out := make([]UserDetailResponse, len(users))
	for i := range users {
		out[i] = ToUserDetailResponse(&users[i])
	}
	return out
}
