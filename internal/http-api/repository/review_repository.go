package repository

import (
	"context"
	"fmt"

	"screenspeak/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review, hashtagIDs []int64) error
	UpdateWithHashtags(ctx context.Context, review *models.Review, hashtagIDs []int64) error
	Delete(ctx context.Context, reviewID int64, userID string) (*models.Review, error)
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	GetForOwner(ctx context.Context, id int64, userID string) (*models.Review, error)
	ListByMovie(ctx context.Context, movieID int64, page, pageSize int) ([]models.Review, int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
	MovieIDsByUser(ctx context.Context, userID string) ([]int64, error)
	ExistsForUserMovie(ctx context.Context, userID string, movieID int64) (bool, error)
	RecountReactions(ctx context.Context) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts the review and its hashtag rows in one transaction.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review, hashtagIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(review).Error; err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		return insertReviewHashtags(tx, review.ID, hashtagIDs)
	})
}

// UpdateWithHashtags saves the editable fields and swaps the hashtag set.
// Both happen in the same transaction, readers never see a review without tags.
func (r *reviewRepository) UpdateWithHashtags(ctx context.Context, review *models.Review, hashtagIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Review{}).
			Where("id = ?", review.ID).
			Updates(map[string]interface{}{
				"rating":  review.Rating,
				"title":   review.Title,
				"comment": review.Comment,
				"spoiler": review.Spoiler,
			}).Error
		if err != nil {
			return fmt.Errorf("update review: %w", err)
		}

		if err := tx.Where("review_id = ?", review.ID).Delete(&models.ReviewHashtag{}).Error; err != nil {
			return fmt.Errorf("clear review hashtags: %w", err)
		}
		return insertReviewHashtags(tx, review.ID, hashtagIDs)
	})
}

func insertReviewHashtags(tx *gorm.DB, reviewID int64, hashtagIDs []int64) error {
	if len(hashtagIDs) == 0 {
		return nil
	}
	rows := make([]models.ReviewHashtag, 0, len(hashtagIDs))
	for _, id := range hashtagIDs {
		rows = append(rows, models.ReviewHashtag{ReviewID: reviewID, HashtagID: id})
	}
	if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
		return fmt.Errorf("add review hashtags: %w", err)
	}
	return nil
}

// Delete removes an owned review with its hashtag rows and reactions.
// The deleted review is returned so callers know which movie changed.
func (r *reviewRepository) Delete(ctx context.Context, reviewID int64, userID string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", reviewID, userID).First(&review).Error; err != nil {
			return err
		}
		if err := tx.Where("review_id = ?", reviewID).Delete(&models.ReviewHashtag{}).Error; err != nil {
			return fmt.Errorf("delete review hashtags: %w", err)
		}
		if err := tx.Where("review_id = ?", reviewID).Delete(&models.ReviewReaction{}).Error; err != nil {
			return fmt.Errorf("delete review reactions: %w", err)
		}
		if err := tx.Delete(&models.Review{}, reviewID).Error; err != nil {
			return fmt.Errorf("delete review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.withDetails(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetForOwner(ctx context.Context, id int64, userID string) (*models.Review, error) {
	var review models.Review
	if err := r.withDetails(ctx).Where("user_id = ?", userID).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByMovie(ctx context.Context, movieID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("movie_id = ?", movieID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	offset := (page - 1) * pageSize
	err := r.withDetails(ctx).
		Where("movie_id = ?", movieID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.withDetails(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	return reviews, nil
}

// MovieIDsByUser lists the distinct movies the user has reviewed.
func (r *reviewRepository) MovieIDsByUser(ctx context.Context, userID string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("movie_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list reviewed movie ids: %w", err)
	}
	return ids, nil
}

func (r *reviewRepository) ExistsForUserMovie(ctx context.Context, userID string, movieID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecountReactions rewrites every counter that disagrees with the reaction
// rows and reports how many reviews were corrected.
func (r *reviewRepository) RecountReactions(ctx context.Context) (int64, error) {
	const recount = `
UPDATE reviews SET
	good_count = sub.good,
	bad_count = sub.bad
FROM (
	SELECT r.id,
		COUNT(rr.id) FILTER (WHERE rr.rating_type = 'good') AS good,
		COUNT(rr.id) FILTER (WHERE rr.rating_type = 'bad') AS bad
	FROM reviews r
	LEFT JOIN review_reactions rr ON rr.review_id = r.id
	GROUP BY r.id
) AS sub
WHERE reviews.id = sub.id
	AND (reviews.good_count <> sub.good OR reviews.bad_count <> sub.bad)`

	result := r.db.WithContext(ctx).Exec(recount)
	if result.Error != nil {
		return 0, fmt.Errorf("recount reactions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *reviewRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("ReviewHashtags", func(db *gorm.DB) *gorm.DB {
			return db.Order("review_hashtags.id ASC")
		}).
		Preload("ReviewHashtags.Hashtag")
}
