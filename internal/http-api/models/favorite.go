package models

import "time"

type FavoriteMovie struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_movie" json:"user_id"`
	MovieID   int64     `gorm:"not null;index;uniqueIndex:idx_favorite_user_movie" json:"movie_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Movie *Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;" json:"movie,omitempty"`
}

func (FavoriteMovie) TableName() string {
	return "favorite_movies"
}
