package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type movieFixture struct {
	svc       *movieService
	movies    *MockMovieRepository
	reviews   *MockReviewRepository
	favorites *MockFavoriteRepository
	cache     *MockRatingCache
}

func newMovieFixture() *movieFixture {
	f := &movieFixture{
		movies:    new(MockMovieRepository),
		reviews:   new(MockReviewRepository),
		favorites: new(MockFavoriteRepository),
		cache:     new(MockRatingCache),
	}
	f.svc = NewMovieService(f.movies, f.reviews, f.favorites, f.cache).(*movieService)
	f.svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return f
}

func TestCreateMovie_Success(t *testing.T) {
	f := newMovieFixture()
	f.movies.On("ExistsByTitle", mock.Anything, "Heat", int64(0)).Return(false, nil)
	f.movies.On("Create", mock.Anything, mock.AnythingOfType("*models.Movie")).Return(nil)

	resp, err := f.svc.Create(context.Background(), dto.MovieRequest{Title: " Heat ", ReleaseYear: 1995, Director: "Michael Mann"})

	require.NoError(t, err)
	assert.Equal(t, "Heat", resp.Title)
	f.movies.AssertExpectations(t)
}

func TestCreateMovie_DuplicateTitle(t *testing.T) {
	f := newMovieFixture()
	f.movies.On("ExistsByTitle", mock.Anything, "Heat", int64(0)).Return(true, nil)

	_, err := f.svc.Create(context.Background(), dto.MovieRequest{Title: "Heat", ReleaseYear: 1995})

	assert.ErrorIs(t, err, ErrMovieExists)
	f.movies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateMovie_ReleaseYearBounds(t *testing.T) {
	f := newMovieFixture()
	for _, year := range []int{1899, 2025} {
		_, err := f.svc.Create(context.Background(), dto.MovieRequest{Title: "X", ReleaseYear: year})
		assert.ErrorIs(t, err, ErrInvalidReleaseYear, "year %d", year)
	}
}

func TestUpdateMovie_KeepsOwnTitle(t *testing.T) {
	f := newMovieFixture()
	movie := &models.Movie{ID: 4, Title: "Heat", ReleaseYear: 1995}
	f.movies.On("GetByID", mock.Anything, int64(4)).Return(movie, nil)
	f.movies.On("ExistsByTitle", mock.Anything, "Heat", int64(4)).Return(false, nil)
	f.movies.On("Update", mock.Anything, movie).Return(nil)

	resp, err := f.svc.Update(context.Background(), 4, dto.MovieRequest{Title: "Heat", ReleaseYear: 1995, Plot: "Cops and robbers"})

	require.NoError(t, err)
	assert.Equal(t, "Cops and robbers", resp.Plot)
}

func TestMovieDetail_NoReviewsReportsSentinel(t *testing.T) {
	f := newMovieFixture()
	f.movies.On("GetByID", mock.Anything, int64(4)).Return(&models.Movie{ID: 4, Title: "Heat"}, nil)
	f.reviews.On("ListByMovie", mock.Anything, int64(4), 1, detailReviewsLimit).Return([]models.Review{}, int64(0), nil)
	f.cache.On("Get", mock.Anything, int64(4)).Return(models.RatingStats{}, int64(0), false, nil)
	f.movies.On("RatingStats", mock.Anything, int64(4)).Return(models.RatingStats{}, nil)
	f.cache.On("Set", mock.Anything, int64(4), models.RatingStats{}, int64(0)).Return(nil)
	f.favorites.On("Exists", mock.Anything, "user-a", int64(4)).Return(true, nil)

	resp, err := f.svc.Detail(context.Background(), 4, "user-a")
	require.NoError(t, err)

	assert.True(t, resp.IsFavorited)
	assert.Equal(t, int64(0), resp.ReviewCount)
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"average_rating":"no rating"`)
}

func TestMovieDetail_RoundsAverage(t *testing.T) {
	f := newMovieFixture()
	f.movies.On("GetByID", mock.Anything, int64(4)).Return(&models.Movie{ID: 4}, nil)
	f.reviews.On("ListByMovie", mock.Anything, int64(4), 1, detailReviewsLimit).Return([]models.Review{{ID: 1}, {ID: 2}}, int64(2), nil)
	f.cache.On("Get", mock.Anything, int64(4)).Return(models.RatingStats{Total: 7.5, Count: 2}, int64(1), true, nil)
	f.favorites.On("Exists", mock.Anything, "user-a", int64(4)).Return(false, nil)

	resp, err := f.svc.Detail(context.Background(), 4, "user-a")
	require.NoError(t, err)

	assert.Equal(t, dto.NewAverageRating(3.8, true), resp.AverageRating)
	assert.Len(t, resp.Reviews, 2)
	f.movies.AssertNotCalled(t, "RatingStats", mock.Anything, mock.Anything)
}

func TestMovieDetail_NotFound(t *testing.T) {
	f := newMovieFixture()
	f.movies.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.svc.Detail(context.Background(), 404, "user-a")
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestRatingSummary_CacheFailureFallsBackToDatabase(t *testing.T) {
	f := newMovieFixture()
	f.cache.On("Get", mock.Anything, int64(4)).Return(models.RatingStats{}, int64(0), false, errors.New("redis down"))
	f.movies.On("RatingStats", mock.Anything, int64(4)).Return(models.RatingStats{Total: 4, Count: 1}, nil)
	f.cache.On("Set", mock.Anything, int64(4), mock.Anything, mock.Anything).Return(errors.New("redis down"))

	stats, err := f.svc.RatingSummary(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Count)
}

func TestRatingSummary_FillsMissAtObservedVersion(t *testing.T) {
	f := newMovieFixture()
	stats := models.RatingStats{Total: 8, Count: 2}
	f.cache.On("Get", mock.Anything, int64(4)).Return(models.RatingStats{}, int64(6), false, nil)
	f.movies.On("RatingStats", mock.Anything, int64(4)).Return(stats, nil)
	f.cache.On("Set", mock.Anything, int64(4), stats, int64(6)).Return(nil)

	got, err := f.svc.RatingSummary(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, stats, got)
	f.cache.AssertExpectations(t)
}
