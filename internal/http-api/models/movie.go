package models

import "time"

type Movie struct {
	ID          int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" db:"title" gorm:"size:255;not null;index"`
	Plot        string    `json:"plot" db:"plot" gorm:"type:text"`
	Director    string    `json:"director" db:"director" gorm:"size:255"`
	Cast        string    `json:"cast" db:"cast_members" gorm:"column:cast_members;size:255"`
	ReleaseYear int       `json:"release_year" db:"release_year" gorm:"not null"`
	Thumbnail   *string   `json:"thumbnail,omitempty" db:"thumbnail"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

func (Movie) TableName() string {
	return "movies"
}

// RatingStats is the raw aggregate over a movie's reviews. Total is the sum of
// ratings, so the mean can be derived without a second query.
type RatingStats struct {
	Total float64 `json:"total" db:"rating_total" gorm:"column:rating_total"`
	Count int64   `json:"count" db:"review_count" gorm:"column:review_count"`
}

// MovieWithStats is a movie row annotated with its review aggregate.
type MovieWithStats struct {
	Movie
	RatingStats
	FavoritesCount int64 `json:"favorites_count" db:"favorites_count" gorm:"column:favorites_count"`
}
