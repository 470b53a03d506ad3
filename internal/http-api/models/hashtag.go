package models

import "time"

type HashtagCategory string

const (
	CategoryGenre     HashtagCategory = "genre"
	CategorySituation HashtagCategory = "situation"
)

func (c HashtagCategory) Valid() bool {
	return c == CategoryGenre || c == CategorySituation
}

type Hashtag struct {
	ID        int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Label     string          `json:"label" gorm:"size:255;not null;uniqueIndex:idx_hashtag_label_category"`
	Category  HashtagCategory `json:"category" gorm:"size:50;not null;default:'genre';uniqueIndex:idx_hashtag_label_category"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (Hashtag) TableName() string {
	return "hashtags"
}

// explicit join model, it carries its own id and timestamp
type ReviewHashtag struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID  int64     `json:"review_id" gorm:"not null;uniqueIndex:idx_review_hashtag"`
	HashtagID int64     `json:"hashtag_id" gorm:"not null;index;uniqueIndex:idx_review_hashtag"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	Hashtag Hashtag `json:"hashtag" gorm:"foreignKey:HashtagID;constraint:OnDelete:CASCADE;"`
}

func (ReviewHashtag) TableName() string {
	return "review_hashtags"
}
