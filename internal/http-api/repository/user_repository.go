package repository

import (
	"context"
	"fmt"
	"time"

	"screenspeak/internal/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	// return nil on miss, a zero-value user would look like a hit to callers
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"username": user.Username,
			"email":    user.Email,
			"bio":      user.Bio,
		}).Error
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password_hash", passwordHash).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *userRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// Delete removes the account and everything hanging off it. Votes the user
// cast on other people's reviews are taken back out of those reviews'
// counters first, so the counters keep matching the reaction rows.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rt := range []models.ReactionType{models.ReactionGood, models.ReactionBad} {
			column := counterColumn(rt)
			voted := tx.Model(&models.ReviewReaction{}).
				Select("review_id").
				Where("user_id = ? AND rating_type = ?", id, rt)
			if err := tx.Model(&models.Review{}).
				Where("id IN (?) AND user_id <> ?", voted, id).
				UpdateColumn(column, gorm.Expr("GREATEST("+column+" - 1, 0)")).Error; err != nil {
				return fmt.Errorf("decrement %s: %w", column, err)
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.ReviewReaction{}).Error; err != nil {
			return fmt.Errorf("delete reactions: %w", err)
		}

		ownReviews := tx.Model(&models.Review{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("review_id IN (?)", ownReviews).Delete(&models.ReviewReaction{}).Error; err != nil {
			return fmt.Errorf("delete reactions on own reviews: %w", err)
		}
		if err := tx.Where("review_id IN (?)", ownReviews).Delete(&models.ReviewHashtag{}).Error; err != nil {
			return fmt.Errorf("delete review hashtags: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.FavoriteMovie{}).Error; err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return fmt.Errorf("delete refresh tokens: %w", err)
		}

		result := tx.Delete(&models.User{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("delete user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func counterColumn(rt models.ReactionType) string {
	if rt == models.ReactionGood {
		return "good_count"
	}
	return "bad_count"
}
