package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"screenspeak/internal/http-api/service"
	"screenspeak/internal/middleware/auth"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

var statusByError = []struct {
	err    error
	status int
}{
	{service.ErrMovieNotFound, http.StatusNotFound},
	{service.ErrReviewNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},

	{service.ErrMovieExists, http.StatusConflict},
	{service.ErrReviewExists, http.StatusConflict},
	{service.ErrNameInUse, http.StatusConflict},
	{service.ErrEmailInUse, http.StatusConflict},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrExpiredToken, http.StatusUnauthorized},
	{service.ErrInvalidRefreshToken, http.StatusUnauthorized},
	{service.ErrExpiredRefreshToken, http.StatusUnauthorized},

	{service.ErrIncorrectPassword, http.StatusForbidden},

	{service.ErrInvalidVoteType, http.StatusBadRequest},
	{service.ErrInvalidRating, http.StatusBadRequest},
	{service.ErrInvalidRatingFrom, http.StatusBadRequest},
	{service.ErrUnknownHashtag, http.StatusBadRequest},
	{service.ErrEmptyReviewText, http.StatusBadRequest},
	{service.ErrInvalidReleaseYear, http.StatusBadRequest},
	{service.ErrInvalidMovieTitle, http.StatusBadRequest},
	{service.ErrInvalidCategory, http.StatusBadRequest},
	{service.ErrPasswordMismatch, http.StatusBadRequest},
	{service.ErrPasswordUnchanged, http.StatusBadRequest},
	{auth.ErrPasswordTooShort, http.StatusBadRequest},
}

// respondError writes {"error": ...} with the status for a known service
// error. Anything else is logged and reported as a bare 500.
func respondError(c *gin.Context, err error) {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": e.err.Error()})
			return
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
		return
	}
	slog.ErrorContext(c.Request.Context(), "request failed", "method", c.Request.Method, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// pagination reads page and page_size, falling back to 1 and 20.
func pagination(c *gin.Context) (page, pageSize int) {
	page, pageSize = 1, 20
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.Query("page_size")); err == nil && ps > 0 && ps <= 100 {
		pageSize = ps
	}
	return page, pageSize
}
