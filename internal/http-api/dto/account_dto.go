package dto

import (
	"time"

	"screenspeak/internal/http-api/models"
)

type ProfileResponse struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	Bio          string     `json:"bio"`
	ProfileImage string     `json:"profile_image"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func FromModelToProfileResponse(u *models.User) *ProfileResponse {
	return &ProfileResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
		LastLogin:    u.LastLogin,
	}
}

type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Bio      string `json:"bio" binding:"max=1000"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" binding:"required"`
	NewPassword        string `json:"new_password" binding:"required,min=8"`
	NewPasswordConfirm string `json:"new_password_confirm" binding:"required"`
}

// DeleteAccountRequest requires the current password as confirmation.
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}
