package handler

import (
	"context"
	"net/http"

	"screenspeak/internal/http-api/dto"
	"screenspeak/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// BrowseHandler serves the dashboard, the hashtag lists and search.
type BrowseHandler struct {
	dashboardService service.DashboardService
	searchService    service.SearchService
}

func NewBrowseHandler(dashboardService service.DashboardService, searchService service.SearchService) *BrowseHandler {
	return &BrowseHandler{dashboardService: dashboardService, searchService: searchService}
}

func (h *BrowseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/hashtags", h.Hashtags)
	rg.GET("/search", h.Search)
}

// GET /api/dashboard
func (h *BrowseHandler) Dashboard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.dashboardService.Dashboard(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/hashtags?category=genre
func (h *BrowseHandler) Hashtags(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	tags, err := h.dashboardService.Hashtags(ctx, c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": tags})
}

// Search filters movies by free text, genre and situation hashtags and a
// minimum review rating. genre and situation may repeat.
// GET /api/search?query=&genre=&situation=&rating_from=
func (h *BrowseHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	resp, err := h.searchService.Search(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
