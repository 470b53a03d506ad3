package repository

import (
	"context"
	"fmt"

	"screenspeak/internal/http-api/models"

	"gorm.io/gorm"
)

type MovieRepository interface {
	Create(ctx context.Context, m *models.Movie) error
	Update(ctx context.Context, m *models.Movie) error
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	ExistsByTitle(ctx context.Context, title string, excludeID int64) (bool, error)
	List(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error)
	RatingStats(ctx context.Context, movieID int64) (models.RatingStats, error)
	TopFavorited(ctx context.Context, limit int) ([]models.MovieWithStats, error)
}

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) Create(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	// GORM will populate m.ID and m.CreatedAt
	return nil
}

func (r *movieRepository) Update(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	return nil
}

func (r *movieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ExistsByTitle ignores the movie with excludeID so an edit can keep its own title.
func (r *movieRepository) ExistsByTitle(ctx context.Context, title string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Movie{}).Where("LOWER(title) = LOWER(?)", title)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check movie title: %w", err)
	}
	return count > 0, nil
}

func (r *movieRepository) List(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error) {
	var list []models.Movie
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}

	return list, total, nil
}

// RatingStats sums ratings in the database; the rounding happens in Go.
func (r *movieRepository) RatingStats(ctx context.Context, movieID int64) (models.RatingStats, error) {
	var stats models.RatingStats
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(SUM(rating), 0) AS rating_total, COUNT(*) AS review_count").
		Where("movie_id = ?", movieID).
		Scan(&stats).Error
	if err != nil {
		return models.RatingStats{}, fmt.Errorf("rating stats: %w", err)
	}
	return stats, nil
}

func (r *movieRepository) TopFavorited(ctx context.Context, limit int) ([]models.MovieWithStats, error) {
	var list []models.MovieWithStats
	err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Select("movies.*, COUNT(favorite_movies.id) AS favorites_count").
		Joins("LEFT JOIN favorite_movies ON favorite_movies.movie_id = movies.id").
		Group("movies.id").
		Order("favorites_count DESC").
		Order("movies.id ASC").
		Limit(limit).
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("top favorited movies: %w", err)
	}
	return list, nil
}
