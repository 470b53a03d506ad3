package handler

import (
	"context"
	"net/http"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/middleware"
	"screenspeak/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	voteService   service.VoteService
}

func NewReviewHandler(reviewService service.ReviewService, voteService service.VoteService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, voteService: voteService}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, throttle gin.HandlerFunc) {
	reviews := rg.Group("/reviews/:review_id")
	{
		reviews.POST("", h.Edit)
		reviews.POST("/delete", h.Delete)
		reviews.POST("/vote/:vote_type", throttle, h.Vote)
	}
}

// Edit replaces the caller's review fields and hashtags.
// POST /api/reviews/:review_id
func (h *ReviewHandler) Edit(c *gin.Context) {
	reviewID, ok := paramID(c, "review_id")
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

	review, err := h.reviewService.Edit(ctx, middleware.UserID(c), reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// Delete removes the caller's review.
// POST /api/reviews/:review_id/delete
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, ok := paramID(c, "review_id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.reviewService.Delete(ctx, middleware.UserID(c), reviewID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

// Vote toggles a good/bad reaction on a review.
// POST /api/reviews/:review_id/vote/:vote_type
func (h *ReviewHandler) Vote(c *gin.Context) {
	reviewID, ok := paramID(c, "review_id")
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.voteService.Vote(ctx, reviewID, middleware.UserID(c), c.Param("vote_type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
