package service

import (
	"context"
	"fmt"
	"time"

	"screenspeak/internal/http-api/models"
	"screenspeak/internal/http-api/repository"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockRefreshTokenRepository mocks the RefreshTokenRepository interface
type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRefreshTokenRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *models.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *MockMovieRepository) Update(ctx context.Context, movie *models.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *MockMovieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieRepository) ExistsByTitle(ctx context.Context, title string, excludeID int64) (bool, error) {
	args := m.Called(ctx, title, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMovieRepository) List(ctx context.Context, page, pageSize int) ([]models.Movie, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]models.Movie), args.Get(1).(int64), args.Error(2)
}

func (m *MockMovieRepository) RatingStats(ctx context.Context, movieID int64) (models.RatingStats, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(models.RatingStats), args.Error(1)
}

func (m *MockMovieRepository) TopFavorited(ctx context.Context, limit int) ([]models.MovieWithStats, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.MovieWithStats), args.Error(1)
}

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review, hashtagIDs []int64) error {
	return m.Called(ctx, review, hashtagIDs).Error(0)
}

func (m *MockReviewRepository) UpdateWithHashtags(ctx context.Context, review *models.Review, hashtagIDs []int64) error {
	return m.Called(ctx, review, hashtagIDs).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, reviewID int64, userID string) (*models.Review, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) GetForOwner(ctx context.Context, id int64, userID string) (*models.Review, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByMovie(ctx context.Context, movieID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(ctx, movieID, page, pageSize)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) MovieIDsByUser(ctx context.Context, userID string) ([]int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockReviewRepository) ExistsForUserMovie(ctx context.Context, userID string, movieID int64) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) RecountReactions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockHashtagRepository struct {
	mock.Mock
}

func (m *MockHashtagRepository) List(ctx context.Context, category models.HashtagCategory) ([]models.Hashtag, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]models.Hashtag), args.Error(1)
}

func (m *MockHashtagRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Hashtag, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Hashtag), args.Error(1)
}

func (m *MockHashtagRepository) Upsert(ctx context.Context, tags []models.Hashtag) error {
	return m.Called(ctx, tags).Error(0)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Toggle(ctx context.Context, userID string, movieID int64) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID string, movieID int64) (bool, error) {
	args := m.Called(ctx, userID, movieID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]models.FavoriteMovie, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.FavoriteMovie), args.Error(1)
}

type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) Toggle(ctx context.Context, reviewID int64, userID string, vote models.ReactionType) (*models.VoteOutcome, error) {
	args := m.Called(ctx, reviewID, userID, vote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VoteOutcome), args.Error(1)
}

type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) Search(ctx context.Context, f repository.SearchFilter) ([]models.MovieWithStats, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.MovieWithStats), args.Error(1)
}

type MockRatingCache struct {
	mock.Mock
}

func (m *MockRatingCache) Get(ctx context.Context, movieID int64) (models.RatingStats, int64, bool, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(models.RatingStats), args.Get(1).(int64), args.Bool(2), args.Error(3)
}

func (m *MockRatingCache) Set(ctx context.Context, movieID int64, stats models.RatingStats, version int64) error {
	return m.Called(ctx, movieID, stats, version).Error(0)
}

func (m *MockRatingCache) Invalidate(ctx context.Context, movieID int64) error {
	return m.Called(ctx, movieID).Error(0)
}

// memoryReactions is an in-memory ReactionRepository driven by models.ApplyVote.
type memoryReactions struct {
	reactions map[string]models.ReactionType
	good, bad map[int64]int
}

func newMemoryReactions(reviewIDs ...int64) *memoryReactions {
	m := &memoryReactions{
		reactions: map[string]models.ReactionType{},
		good:      map[int64]int{},
		bad:       map[int64]int{},
	}
	for _, id := range reviewIDs {
		m.good[id] = 0
		m.bad[id] = 0
	}
	return m
}

func (m *memoryReactions) Toggle(_ context.Context, reviewID int64, userID string, vote models.ReactionType) (*models.VoteOutcome, error) {
	if _, ok := m.good[reviewID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	key := fmt.Sprintf("%s/%d", userID, reviewID)

	var prev *models.ReactionType
	if rt, ok := m.reactions[key]; ok {
		prev = &rt
	}
	change := models.ApplyVote(prev, vote)
	if change.Next == nil {
		delete(m.reactions, key)
	} else {
		m.reactions[key] = *change.Next
	}
	m.good[reviewID] += change.GoodDelta
	m.bad[reviewID] += change.BadDelta

	return &models.VoteOutcome{Action: change.Action, GoodCount: m.good[reviewID], BadCount: m.bad[reviewID]}, nil
}
