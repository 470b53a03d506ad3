package service

import (
	"context"
	"errors"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/repository"

	"gorm.io/gorm"
)

type FavoriteService interface {
	Toggle(ctx context.Context, userID string, movieID int64) (*dto.FavoriteResponse, error)
	ListByUser(ctx context.Context, userID string) ([]dto.FavoriteMovieResponse, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	movieRepo    repository.MovieRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, movieRepo repository.MovieRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, movieRepo: movieRepo}
}

func (s *favoriteService) Toggle(ctx context.Context, userID string, movieID int64) (*dto.FavoriteResponse, error) {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	isFavorite, err := s.favoriteRepo.Toggle(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	return &dto.FavoriteResponse{Status: "success", IsFavorite: isFavorite}, nil
}

func (s *favoriteService) ListByUser(ctx context.Context, userID string) ([]dto.FavoriteMovieResponse, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FavoriteMovieResponse, 0, len(favorites))
	for i := range favorites {
		out = append(out, dto.FromModelToFavoriteMovieResponse(&favorites[i]))
	}
	return out, nil
}
