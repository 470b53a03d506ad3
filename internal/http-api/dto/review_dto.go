package dto

import (
	"time"

	"screenspeak/internal/http-api/models"
)

// ReviewRequest is used for both add and edit; HashtagIDs replaces the tag set.
type ReviewRequest struct {
	Rating     float64 `json:"rating" binding:"required,min=0.5,max=5"`
	Title      string  `json:"title" binding:"required,max=255"`
	Comment    string  `json:"comment" binding:"required"`
	Spoiler    bool    `json:"spoiler"`
	HashtagIDs []int64 `json:"hashtag_ids"`
}

type ReviewResponse struct {
	ID         int64             `json:"id"`
	MovieID    int64             `json:"movie_id"`
	MovieTitle string            `json:"movie_title,omitempty"`
	UserID     string            `json:"user_id"`
	Username   string            `json:"username"`
	Rating     float64           `json:"rating"`
	Title      string            `json:"title"`
	Comment    string            `json:"comment"`
	Spoiler    bool              `json:"spoiler"`
	GoodCount  int               `json:"good_count"`
	BadCount   int               `json:"bad_count"`
	Hashtags   []HashtagResponse `json:"hashtags"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// FromModelToReviewResponse expects User and ReviewHashtags.Hashtag preloaded.
func FromModelToReviewResponse(r *models.Review) ReviewResponse {
	tags := r.Hashtags()
	hashtags := make([]HashtagResponse, 0, len(tags))
	for i := range tags {
		hashtags = append(hashtags, FromModelToHashtagResponse(&tags[i]))
	}

	return ReviewResponse{
		ID:         r.ID,
		MovieID:    r.MovieID,
		MovieTitle: r.Movie.Title,
		UserID:     r.UserID,
		Username:   r.User.Username,
		Rating:     r.Rating,
		Title:      r.Title,
		Comment:    r.Comment,
		Spoiler:    r.Spoiler,
		GoodCount:  r.GoodCount,
		BadCount:   r.BadCount,
		Hashtags:   hashtags,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func FromModelsToReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, FromModelToReviewResponse(&reviews[i]))
	}
	return out
}

// VoteResponse keeps the keys the vote endpoint has always returned. Status is
// "created" or "updated"; a retraction reports "updated" with a null vote.
type VoteResponse struct {
	Status    string  `json:"status"`
	GoodCount int     `json:"good_count"`
	BadCount  int     `json:"bad_count"`
	Vote      *string `json:"vote"`
}

type FavoriteResponse struct {
	Status     string `json:"status"`
	IsFavorite bool   `json:"is_favorite"`
}
