package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/models"
	"screenspeak/internal/http-api/repository"

	"gorm.io/gorm"
)

const (
	minReleaseYear     = 1900
	detailReviewsLimit = 10
)

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrMovieExists        = errors.New("this movie is already registered")
	ErrInvalidReleaseYear = errors.New("release year is out of range")
	ErrInvalidMovieTitle  = errors.New("movie title is required")
)

type MovieService interface {
	Create(ctx context.Context, req dto.MovieRequest) (*dto.MovieResponse, error)
	Update(ctx context.Context, movieID int64, req dto.MovieRequest) (*dto.MovieResponse, error)
	List(ctx context.Context, page, pageSize int) (*dto.Paginated[dto.MovieResponse], error)
	Detail(ctx context.Context, movieID int64, userID string) (*dto.MovieDetailResponse, error)
	RatingSummary(ctx context.Context, movieID int64) (models.RatingStats, error)
}

type movieService struct {
	movieRepo    repository.MovieRepository
	reviewRepo   repository.ReviewRepository
	favoriteRepo repository.FavoriteRepository
	cache        RatingCache
	now          func() time.Time
}

func NewMovieService(
	movieRepo repository.MovieRepository,
	reviewRepo repository.ReviewRepository,
	favoriteRepo repository.FavoriteRepository,
	cache RatingCache,
) MovieService {
	return &movieService{
		movieRepo:    movieRepo,
		reviewRepo:   reviewRepo,
		favoriteRepo: favoriteRepo,
		cache:        cache,
		now:          time.Now,
	}
}

func (s *movieService) validate(req *dto.MovieRequest) error {
	req.Title = sanitizeText(req.Title)
	if req.Title == "" {
		return ErrInvalidMovieTitle
	}
	if req.ReleaseYear < minReleaseYear || req.ReleaseYear > s.now().Year() {
		return ErrInvalidReleaseYear
	}
	req.Plot = sanitizeText(req.Plot)
	req.Director = sanitizeText(req.Director)
	req.Cast = sanitizeText(req.Cast)
	return nil
}

func (s *movieService) Create(ctx context.Context, req dto.MovieRequest) (*dto.MovieResponse, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	exists, err := s.movieRepo.ExistsByTitle(ctx, req.Title, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMovieExists
	}

	movie := &models.Movie{
		Title:       req.Title,
		Plot:        req.Plot,
		Director:    req.Director,
		Cast:        req.Cast,
		ReleaseYear: req.ReleaseYear,
		Thumbnail:   req.Thumbnail,
	}
	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, err
	}

	resp := dto.FromModelToMovieResponse(movie)
	return &resp, nil
}

func (s *movieService) Update(ctx context.Context, movieID int64, req dto.MovieRequest) (*dto.MovieResponse, error) {
	movie, err := s.movieRepo.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	if err := s.validate(&req); err != nil {
		return nil, err
	}

	exists, err := s.movieRepo.ExistsByTitle(ctx, req.Title, movieID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMovieExists
	}

	movie.Title = req.Title
	movie.Plot = req.Plot
	movie.Director = req.Director
	movie.Cast = req.Cast
	movie.ReleaseYear = req.ReleaseYear
	if req.Thumbnail != nil {
		movie.Thumbnail = req.Thumbnail
	}

	if err := s.movieRepo.Update(ctx, movie); err != nil {
		return nil, err
	}

	resp := dto.FromModelToMovieResponse(movie)
	return &resp, nil
}

func (s *movieService) List(ctx context.Context, page, pageSize int) (*dto.Paginated[dto.MovieResponse], error) {
	movies, total, err := s.movieRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.MovieResponse, 0, len(movies))
	for i := range movies {
		data = append(data, dto.FromModelToMovieResponse(&movies[i]))
	}
	return dto.NewPaginated(data, int(total), page, pageSize), nil
}

// Detail returns the movie with its newest reviews, the rounded average over
// all reviews and whether the caller has it in their favorites.
func (s *movieService) Detail(ctx context.Context, movieID int64, userID string) (*dto.MovieDetailResponse, error) {
	movie, err := s.movieRepo.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	reviews, _, err := s.reviewRepo.ListByMovie(ctx, movieID, 1, detailReviewsLimit)
	if err != nil {
		return nil, err
	}

	stats, err := s.RatingSummary(ctx, movieID)
	if err != nil {
		return nil, err
	}

	isFavorited, err := s.favoriteRepo.Exists(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}

	return &dto.MovieDetailResponse{
		Movie:         dto.FromModelToMovieResponse(movie),
		Reviews:       dto.FromModelsToReviewResponses(reviews),
		AverageRating: averageOf(stats),
		ReviewCount:   stats.Count,
		IsFavorited:   isFavorited,
	}, nil
}

// RatingSummary reads through the cache. Cache errors are logged and the
// database answer is used. The fill is tied to the version seen on the miss,
// so it is discarded if a review write invalidated the movie meanwhile.
func (s *movieService) RatingSummary(ctx context.Context, movieID int64) (models.RatingStats, error) {
	stats, version, ok, err := s.cache.Get(ctx, movieID)
	if err != nil {
		slog.WarnContext(ctx, "rating cache read failed", "movie_id", movieID, "error", err)
	}
	if ok {
		return stats, nil
	}

	stats, err = s.movieRepo.RatingStats(ctx, movieID)
	if err != nil {
		return models.RatingStats{}, err
	}

	if err := s.cache.Set(ctx, movieID, stats, version); err != nil {
		slog.WarnContext(ctx, "rating cache write failed", "movie_id", movieID, "error", err)
	}
	return stats, nil
}
