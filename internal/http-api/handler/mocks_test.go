package handler_test

import (
	"context"
	"time"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/middleware"
	"screenspeak/internal/http-api/models"
	"screenspeak/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.SignupRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, string, *models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) AccessTokenTTL() time.Duration {
	return 15 * time.Minute
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) Create(ctx context.Context, req dto.MovieRequest) (*dto.MovieResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieResponse), args.Error(1)
}

func (m *MockMovieService) Update(ctx context.Context, movieID int64, req dto.MovieRequest) (*dto.MovieResponse, error) {
	args := m.Called(ctx, movieID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieResponse), args.Error(1)
}

func (m *MockMovieService) List(ctx context.Context, page, pageSize int) (*dto.Paginated[dto.MovieResponse], error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.MovieResponse]), args.Error(1)
}

func (m *MockMovieService) Detail(ctx context.Context, movieID int64, userID string) (*dto.MovieDetailResponse, error) {
	args := m.Called(ctx, movieID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieDetailResponse), args.Error(1)
}

func (m *MockMovieService) RatingSummary(ctx context.Context, movieID int64) (models.RatingStats, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(models.RatingStats), args.Error(1)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Add(ctx context.Context, userID string, movieID int64, req dto.ReviewRequest) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, userID, movieID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Edit(ctx context.Context, userID string, reviewID int64, req dto.ReviewRequest) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, userID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, userID string, reviewID int64) error {
	return m.Called(ctx, userID, reviewID).Error(0)
}

func (m *MockReviewService) ListByMovie(ctx context.Context, movieID int64, page, pageSize int) (*dto.Paginated[dto.ReviewResponse], error) {
	args := m.Called(ctx, movieID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated[dto.ReviewResponse]), args.Error(1)
}

func (m *MockReviewService) ListByUser(ctx context.Context, userID string) ([]dto.ReviewResponse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]dto.ReviewResponse), args.Error(1)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Toggle(ctx context.Context, userID string, movieID int64) (*dto.FavoriteResponse, error) {
	args := m.Called(ctx, userID, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FavoriteResponse), args.Error(1)
}

func (m *MockFavoriteService) ListByUser(ctx context.Context, userID string) ([]dto.FavoriteMovieResponse, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]dto.FavoriteMovieResponse), args.Error(1)
}

type MockVoteService struct {
	mock.Mock
}

func (m *MockVoteService) Vote(ctx context.Context, reviewID int64, userID, voteType string) (*dto.VoteResponse, error) {
	args := m.Called(ctx, reviewID, userID, voteType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.VoteResponse), args.Error(1)
}

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SearchResponse), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardResponse), args.Error(1)
}

func (m *MockDashboardService) Hashtags(ctx context.Context, category string) ([]dto.HashtagResponse, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]dto.HashtagResponse), args.Error(1)
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileResponse), args.Error(1)
}

func (m *MockAccountService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileResponse), args.Error(1)
}

func (m *MockAccountService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, userID, password string) error {
	return m.Called(ctx, userID, password).Error(0)
}

// --- SETUP ---

const testUserID = "test-user-id"

func mockAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, testUserID)
		c.Set(middleware.ContextUsername, "testuser")
		c.Next()
	}
}

func passThrough(c *gin.Context) { c.Next() }

func setupRouter() (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", mockAuthMiddleware())
	return r, api
}

func strPtr(s string) *string { return &s }
