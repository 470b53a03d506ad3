package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/models"
	"screenspeak/internal/http-api/repository"
)

var ErrInvalidRatingFrom = errors.New("rating_from must be a number between 0 and 5")

type SearchService interface {
	Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchResponse, error)
}

type searchService struct {
	searchRepo repository.SearchRepository
}

func NewSearchService(searchRepo repository.SearchRepository) SearchService {
	return &searchService{searchRepo: searchRepo}
}

// Search ANDs the non-empty facets. Each result carries the movie's average
// over all its reviews, not only the ones that matched a facet.
func (s *searchService) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchResponse, error) {
	ratingFrom, err := parseRatingFrom(req.RatingFrom)
	if err != nil {
		return nil, err
	}

	filter := repository.SearchFilter{
		Query:      strings.TrimSpace(req.Query),
		Genres:     req.Genres,
		Situations: req.Situations,
		RatingFrom: ratingFrom,
	}
	rows, err := s.searchRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	movies := make([]dto.MovieSummary, 0, len(rows))
	for i := range rows {
		movies = append(movies, toMovieSummary(&rows[i]))
	}

	return &dto.SearchResponse{
		Query:      filter.Query,
		Genres:     nonNil(req.Genres),
		Situations: nonNil(req.Situations),
		RatingFrom: ratingFrom,
		Movies:     movies,
		Count:      len(movies),
	}, nil
}

func parseRatingFrom(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > models.MaxRating {
		return nil, ErrInvalidRatingFrom
	}
	return &v, nil
}

func toMovieSummary(m *models.MovieWithStats) dto.MovieSummary {
	return dto.MovieSummary{
		MovieResponse:  dto.FromModelToMovieResponse(&m.Movie),
		AverageRating:  averageOf(m.RatingStats),
		ReviewCount:    m.Count,
		FavoritesCount: m.FavoritesCount,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
