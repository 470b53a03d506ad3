package models

import "time"

const (
	MinRating  = 0.5
	MaxRating  = 5.0
	RatingStep = 0.5
)

type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_review_user_movie"`
	MovieID   int64     `json:"movie_id" gorm:"not null;index;uniqueIndex:idx_review_user_movie"`
	Rating    float64   `json:"rating" gorm:"type:decimal(2,1);not null;check:rating >= 0.5 AND rating <= 5"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Comment   string    `json:"comment" gorm:"type:text;not null"`
	Spoiler   bool      `json:"spoiler" gorm:"not null;default:false"`
	GoodCount int       `json:"good_count" gorm:"not null;default:0;check:good_count >= 0"`
	BadCount  int       `json:"bad_count" gorm:"not null;default:0;check:bad_count >= 0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User           User            `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Movie          Movie           `json:"movie,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
	ReviewHashtags []ReviewHashtag `json:"review_hashtags,omitempty" gorm:"foreignKey:ReviewID"`
}

func (Review) TableName() string {
	return "reviews"
}

// Hashtags flattens the preloaded join rows.
func (r *Review) Hashtags() []Hashtag {
	tags := make([]Hashtag, 0, len(r.ReviewHashtags))
	for _, rh := range r.ReviewHashtags {
		tags = append(tags, rh.Hashtag)
	}
	return tags
}
