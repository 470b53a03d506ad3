package repository

import (
	"context"
	"fmt"

	"screenspeak/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HashtagRepository interface {
	List(ctx context.Context, category models.HashtagCategory) ([]models.Hashtag, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.Hashtag, error)
	Upsert(ctx context.Context, tags []models.Hashtag) error
}

type hashtagRepository struct {
	db *gorm.DB
}

func NewHashtagRepository(db *gorm.DB) HashtagRepository {
	return &hashtagRepository{db: db}
}

// List returns hashtags sorted by label; an empty category returns both facets.
func (r *hashtagRepository) List(ctx context.Context, category models.HashtagCategory) ([]models.Hashtag, error) {
	var tags []models.Hashtag
	q := r.db.WithContext(ctx).Order("label ASC").Order("id ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("list hashtags: %w", err)
	}
	return tags, nil
}

func (r *hashtagRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Hashtag, error) {
	var tags []models.Hashtag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("find hashtags: %w", err)
	}
	return tags, nil
}

// Upsert inserts the hashtags, leaving existing (label, category) pairs alone.
func (r *hashtagRepository) Upsert(ctx context.Context, tags []models.Hashtag) error {
	if len(tags) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "label"}, {Name: "category"}},
			DoNothing: true,
		}).
		Create(&tags).Error
	if err != nil {
		return fmt.Errorf("upsert hashtags: %w", err)
	}
	return nil
}
