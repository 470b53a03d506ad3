package service

import (
	"context"
	"errors"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/models"
	"screenspeak/internal/http-api/repository"
)

const dashboardTopMovies = 3

var ErrInvalidCategory = errors.New("category must be genre or situation")

type DashboardService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	Hashtags(ctx context.Context, category string) ([]dto.HashtagResponse, error)
}

type dashboardService struct {
	movieRepo   repository.MovieRepository
	hashtagRepo repository.HashtagRepository
	ratings     MovieService
}

func NewDashboardService(movieRepo repository.MovieRepository, hashtagRepo repository.HashtagRepository, ratings MovieService) DashboardService {
	return &dashboardService{movieRepo: movieRepo, hashtagRepo: hashtagRepo, ratings: ratings}
}

// Dashboard lists both hashtag facets and the most favorited movies.
func (s *dashboardService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	genres, err := s.hashtagRepo.List(ctx, models.CategoryGenre)
	if err != nil {
		return nil, err
	}
	situations, err := s.hashtagRepo.List(ctx, models.CategorySituation)
	if err != nil {
		return nil, err
	}

	top, err := s.movieRepo.TopFavorited(ctx, dashboardTopMovies)
	if err != nil {
		return nil, err
	}
	movies := make([]dto.MovieSummary, 0, len(top))
	for i := range top {
		stats, err := s.ratings.RatingSummary(ctx, top[i].ID)
		if err != nil {
			return nil, err
		}
		top[i].RatingStats = stats
		movies = append(movies, toMovieSummary(&top[i]))
	}

	return &dto.DashboardResponse{
		Movies:     movies,
		Genres:     dto.FromModelsToHashtagResponses(genres),
		Situations: dto.FromModelsToHashtagResponses(situations),
	}, nil
}

func (s *dashboardService) Hashtags(ctx context.Context, category string) ([]dto.HashtagResponse, error) {
	c := models.HashtagCategory(category)
	if c != "" && !c.Valid() {
		return nil, ErrInvalidCategory
	}
	tags, err := s.hashtagRepo.List(ctx, c)
	if err != nil {
		return nil, err
	}
	return dto.FromModelsToHashtagResponses(tags), nil
}
