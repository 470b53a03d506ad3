package repository

import (
	"context"
	"errors"
	"fmt"

	"screenspeak/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Toggle(ctx context.Context, userID string, movieID int64) (bool, error)
	Exists(ctx context.Context, userID string, movieID int64) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.FavoriteMovie, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle removes the favorite if present, otherwise adds it, and reports
// whether the movie is a favorite afterwards. Losing an insert race to the
// unique index still means the movie is a favorite.
func (r *favoriteRepository) Toggle(ctx context.Context, userID string, movieID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.FavoriteMovie{})
	if result.Error != nil {
		return false, fmt.Errorf("remove favorite: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	fav := &models.FavoriteMovie{UserID: userID, MovieID: movieID}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, fmt.Errorf("add favorite: %w", err)
	}
	return true, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID string, movieID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FavoriteMovie{}).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]models.FavoriteMovie, error) {
	var favorites []models.FavoriteMovie
	if err := r.db.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}
