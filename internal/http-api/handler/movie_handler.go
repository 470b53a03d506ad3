package handler

import (
	"context"
	"net/http"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/middleware"
	"screenspeak/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	movieService    service.MovieService
	reviewService   service.ReviewService
	favoriteService service.FavoriteService
}

func NewMovieHandler(movieService service.MovieService, reviewService service.ReviewService, favoriteService service.FavoriteService) *MovieHandler {
	return &MovieHandler{
		movieService:    movieService,
		reviewService:   reviewService,
		favoriteService: favoriteService,
	}
}

// RegisterRoutes mounts /movies under an authenticated group. throttle guards
// the favorite toggle.
func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup, throttle gin.HandlerFunc) {
	movies := rg.Group("/movies")
	{
		movies.GET("", h.List)
		movies.POST("", h.Create)
		movies.GET("/:movie_id", h.Detail)
		movies.POST("/:movie_id", h.Update)
		movies.GET("/:movie_id/reviews", h.ListReviews)
		movies.POST("/:movie_id/reviews", h.AddReview)
		movies.POST("/:movie_id/favorite", throttle, h.ToggleFavorite)
	}
}

// List returns one page of movies.
// GET /api/movies?page=1&page_size=20
func (h *MovieHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.movieService.List(ctx, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create registers a movie.
// POST /api/movies
func (h *MovieHandler) Create(c *gin.Context) {
	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	movie, err := h.movieService.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movie)
}

// Detail returns the movie with its latest reviews, average rating and
// whether the caller has favorited it.
// GET /api/movies/:movie_id
func (h *MovieHandler) Detail(c *gin.Context) {
	movieID, ok := paramID(c, "movie_id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.movieService.Detail(ctx, movieID, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update edits a movie.
// POST /api/movies/:movie_id
func (h *MovieHandler) Update(c *gin.Context) {
	movieID, ok := paramID(c, "movie_id")
	if !ok {
		return
	}
	var req dto.MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	movie, err := h.movieService.Update(ctx, movieID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

// ListReviews pages through every review of a movie, newest first.
// GET /api/movies/:movie_id/reviews?page=1&page_size=20
func (h *MovieHandler) ListReviews(c *gin.Context) {
	movieID, ok := paramID(c, "movie_id")
	if !ok {
		return
	}
	page, pageSize := pagination(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.reviewService.ListByMovie(ctx, movieID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddReview posts the caller's review of a movie.
// POST /api/movies/:movie_id/reviews
func (h *MovieHandler) AddReview(c *gin.Context) {
	movieID, ok := paramID(c, "movie_id")
	if !ok {
		return
	}
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	review, err := h.reviewService.Add(ctx, middleware.UserID(c), movieID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// ToggleFavorite flips the caller's favorite flag for a movie.
// POST /api/movies/:movie_id/favorite
func (h *MovieHandler) ToggleFavorite(c *gin.Context) {
	movieID, ok := paramID(c, "movie_id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.favoriteService.Toggle(ctx, middleware.UserID(c), movieID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
