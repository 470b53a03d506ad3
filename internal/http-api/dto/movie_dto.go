package dto

import (
	"time"

	"screenspeak/internal/http-api/models"
)

// MovieRequest is used for both create and edit.
type MovieRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Plot        string  `json:"plot"`
	Director    string  `json:"director" binding:"max=255"`
	Cast        string  `json:"cast" binding:"max=255"`
	ReleaseYear int     `json:"release_year" binding:"required"`
	Thumbnail   *string `json:"thumbnail,omitempty"`
}

type MovieResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Plot        string    `json:"plot"`
	Director    string    `json:"director"`
	Cast        string    `json:"cast"`
	ReleaseYear int       `json:"release_year"`
	Thumbnail   *string   `json:"thumbnail,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromModelToMovieResponse(m *models.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Plot:        m.Plot,
		Director:    m.Director,
		Cast:        m.Cast,
		ReleaseYear: m.ReleaseYear,
		Thumbnail:   m.Thumbnail,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// MovieSummary is a movie annotated with its aggregates, used by search and the dashboard.
type MovieSummary struct {
	MovieResponse
	AverageRating  AverageRating `json:"average_rating"`
	ReviewCount    int64         `json:"review_count"`
	FavoritesCount int64         `json:"favorites_count"`
}

type MovieDetailResponse struct {
	Movie         MovieResponse    `json:"movie"`
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating AverageRating    `json:"average_rating"`
	ReviewCount   int64            `json:"all_reviews_count"`
	IsFavorited   bool             `json:"is_favorited"`
}

type FavoriteMovieResponse struct {
	Movie     MovieResponse `json:"movie"`
	CreatedAt time.Time     `json:"favorited_at"`
}

func FromModelToFavoriteMovieResponse(f *models.FavoriteMovie) FavoriteMovieResponse {
	resp := FavoriteMovieResponse{CreatedAt: f.CreatedAt}
	if f.Movie != nil {
		resp.Movie = FromModelToMovieResponse(f.Movie)
	}
	return resp
}
