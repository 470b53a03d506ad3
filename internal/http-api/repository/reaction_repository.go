package repository

import (
	"context"
	"fmt"

	"screenspeak/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReactionRepository interface {
	Toggle(ctx context.Context, reviewID int64, userID string, vote models.ReactionType) (*models.VoteOutcome, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Toggle applies a vote while holding a row lock on the review, so two
// requests from the same user on the same review are serialized.
func (r *reactionRepository) Toggle(ctx context.Context, reviewID int64, userID string, vote models.ReactionType) (*models.VoteOutcome, error) {
	var outcome models.VoteOutcome

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "good_count", "bad_count").
			First(&review, reviewID).Error; err != nil {
			return err
		}

		var existing []models.ReviewReaction
		if err := tx.Where("user_id = ? AND review_id = ?", userID, reviewID).
			Limit(1).
			Find(&existing).Error; err != nil {
			return fmt.Errorf("find reaction: %w", err)
		}

		var prev *models.ReactionType
		if len(existing) > 0 {
			prev = &existing[0].RatingType
		}
		change := models.ApplyVote(prev, vote)

		switch change.Action {
		case models.VoteCreated:
			reaction := &models.ReviewReaction{UserID: userID, ReviewID: reviewID, RatingType: vote}
			if err := tx.Omit(clause.Associations).Create(reaction).Error; err != nil {
				return fmt.Errorf("create reaction: %w", err)
			}
		case models.VoteRetracted:
			if err := tx.Delete(&models.ReviewReaction{}, existing[0].ID).Error; err != nil {
				return fmt.Errorf("delete reaction: %w", err)
			}
		case models.VoteUpdated:
			if err := tx.Model(&models.ReviewReaction{}).
				Where("id = ?", existing[0].ID).
				Update("rating_type", *change.Next).Error; err != nil {
				return fmt.Errorf("update reaction: %w", err)
			}
		}

		err := tx.Model(&models.Review{}).
			Where("id = ?", reviewID).
			UpdateColumns(map[string]interface{}{
				"good_count": gorm.Expr("GREATEST(good_count + ?, 0)", change.GoodDelta),
				"bad_count":  gorm.Expr("GREATEST(bad_count + ?, 0)", change.BadDelta),
			}).Error
		if err != nil {
			return fmt.Errorf("update counters: %w", err)
		}

		outcome = models.VoteOutcome{
			Action:    change.Action,
			GoodCount: max(review.GoodCount+change.GoodDelta, 0),
			BadCount:  max(review.BadCount+change.BadDelta, 0),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}
