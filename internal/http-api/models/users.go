package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User logs in with Email; Username is the public handle.
type User struct {
	ID           string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	Bio          string     `gorm:"type:text" json:"bio"`
	ProfileImage string     `gorm:"default:'profile_images/default-thumbnail.png'" json:"profile_image"`
	Role         string     `gorm:"default:'user';not null" json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
