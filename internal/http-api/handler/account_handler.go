package handler

import (
	"context"
	"net/http"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/middleware"
	"screenspeak/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountService  service.AccountService
	reviewService   service.ReviewService
	favoriteService service.FavoriteService
}

func NewAccountHandler(accountService service.AccountService, reviewService service.ReviewService, favoriteService service.FavoriteService) *AccountHandler {
	return &AccountHandler{
		accountService:  accountService,
		reviewService:   reviewService,
		favoriteService: favoriteService,
	}
}

func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	me := rg.Group("/me")
	{
		me.GET("", h.Profile)
		me.POST("", h.UpdateProfile)
		me.GET("/reviews", h.MyReviews)
		me.GET("/favorites", h.MyFavorites)
		me.POST("/password", h.ChangePassword)
		me.POST("/delete", h.DeleteAccount)
	}
}

func (h *AccountHandler) Profile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	profile, err := h.accountService.Profile(ctx, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	profile, err := h.accountService.UpdateProfile(ctx, middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AccountHandler) MyReviews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	reviews, err := h.reviewService.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reviews})
}

func (h *AccountHandler) MyFavorites(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	favorites, err := h.favoriteService.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": favorites})
}

func (h *AccountHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.accountService.ChangePassword(ctx, middleware.UserID(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// DeleteAccount requires the current password in the body.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	var req dto.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.accountService.DeleteAccount(ctx, middleware.UserID(c), req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}
