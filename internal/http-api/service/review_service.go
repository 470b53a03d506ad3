package service

import (
	"context"
	"errors"
	"sort"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/models"
	"screenspeak/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrReviewExists    = errors.New("you have already reviewed this movie")
	ErrInvalidRating   = errors.New("rating must be between 0.5 and 5 in steps of 0.5")
	ErrUnknownHashtag  = errors.New("unknown hashtag")
	ErrEmptyReviewText = errors.New("review title and comment are required")
)

type ReviewService interface {
	Add(ctx context.Context, userID string, movieID int64, req dto.ReviewRequest) (*dto.ReviewResponse, error)
	Edit(ctx context.Context, userID string, reviewID int64, req dto.ReviewRequest) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, userID string, reviewID int64) error
	ListByMovie(ctx context.Context, movieID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error)
	ListByUser(ctx context.Context, userID string) ([]dto.ReviewResponse, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	movieRepo   repository.MovieRepository
	hashtagRepo repository.HashtagRepository
	cache       RatingCache
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	movieRepo repository.MovieRepository,
	hashtagRepo repository.HashtagRepository,
	cache RatingCache,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		movieRepo:   movieRepo,
		hashtagRepo: hashtagRepo,
		cache:       cache,
	}
}

// prepare validates the request and returns the deduplicated hashtag ids.
func (s *reviewService) prepare(ctx context.Context, req *dto.ReviewRequest) ([]int64, error) {
	if !ValidRating(req.Rating) {
		return nil, ErrInvalidRating
	}
	req.Title = sanitizeText(req.Title)
	req.Comment = sanitizeText(req.Comment)
	if req.Title == "" || req.Comment == "" {
		return nil, ErrEmptyReviewText
	}

	ids := uniqueIDs(req.HashtagIDs)
	if len(ids) == 0 {
		return ids, nil
	}
	tags, err := s.hashtagRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrUnknownHashtag
	}
	return ids, nil
}

func (s *reviewService) Add(ctx context.Context, userID string, movieID int64, req dto.ReviewRequest) (*dto.ReviewResponse, error) {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForUserMovie(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrReviewExists
	}

	hashtagIDs, err := s.prepare(ctx, &req)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		UserID:  userID,
		MovieID: movieID,
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
		Spoiler: req.Spoiler,
	}
	if err := s.reviewRepo.Create(ctx, review, hashtagIDs); err != nil {
		// the unique (user, movie) index caught a concurrent submit
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	invalidateRating(ctx, s.cache, movieID)

	return s.load(ctx, review.ID)
}

// Edit is limited to the author; other users get ErrReviewNotFound.
func (s *reviewService) Edit(ctx context.Context, userID string, reviewID int64, req dto.ReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetForOwner(ctx, reviewID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	hashtagIDs, err := s.prepare(ctx, &req)
	if err != nil {
		return nil, err
	}

	review.Rating = req.Rating
	review.Title = req.Title
	review.Comment = req.Comment
	review.Spoiler = req.Spoiler
	if err := s.reviewRepo.UpdateWithHashtags(ctx, review, hashtagIDs); err != nil {
		return nil, err
	}
	invalidateRating(ctx, s.cache, review.MovieID)

	return s.load(ctx, review.ID)
}

func (s *reviewService) Delete(ctx context.Context, userID string, reviewID int64) error {
	review, err := s.reviewRepo.Delete(ctx, reviewID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	invalidateRating(ctx, s.cache, review.MovieID)
	return nil
}

func (s *reviewService) ListByMovie(ctx context.Context, movieID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByMovie(ctx, movieID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return dto.NewPaginated(dto.FromModelsToReviewResponses(reviews), int(total), page, pageSize), nil
}

func (s *reviewService) ListByUser(ctx context.Context, userID string) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelsToReviewResponses(reviews), nil
}

func (s *reviewService) load(ctx context.Context, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToReviewResponse(review)
	return &resp, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
