package handlers

import (
	"net/http"
	"strconv"
	"time"

	"homeserve/middleware"
	"homeserve/models"
	"homeserve/services/review"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewHandler exposes the review ledger endpoints.
type ReviewHandler struct {
	Service review.ReviewService
}

func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// SubmitReviewHandler handles POST /reviews. Client role only.
func (h *ReviewHandler) SubmitReviewHandler(c *gin.Context) {
	logger := utils.GetLogger()

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	var req review.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid review request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Service.Submit(principal, req)
	if err != nil {
		logger.Warn("Review submission rejected", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateReviewHandler handles PATCH /reviews/:id. Authoring client only.
func (h *ReviewHandler) UpdateReviewHandler(c *gin.Context) {
	logger := utils.GetLogger()

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	var req review.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid review update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Service.Update(c.Param("id"), principal, req)
	if err != nil {
		logger.Warn("Review update rejected", zap.String("id", c.Param("id")), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteReviewHandler handles DELETE /reviews/:id. Authoring client only.
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	if err := h.Service.Remove(c.Param("id"), principal); err != nil {
		utils.GetLogger().Warn("Review deletion rejected", zap.String("id", c.Param("id")), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

// ListForProviderHandler handles GET /reviews/provider/:providerId.
func (h *ReviewHandler) ListForProviderHandler(c *gin.Context) {
	filter, err := parseReviewFilter(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	listing, err := h.Service.ListForProvider(c.Param("providerId"), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// SearchReviewsHandler handles GET /reviews/search.
func (h *ReviewHandler) SearchReviewsHandler(c *gin.Context) {
	filter, err := parseReviewFilter(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	listing, err := h.Service.Search(filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// parseReviewFilter reads the shared filter shape from query parameters.
func parseReviewFilter(c *gin.Context) (models.ReviewFilter, error) {
	var filter models.ReviewFilter

	if v := c.Query("minRating"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return filter, utils.NewInvalidInput("minRating must be an integer")
		}
		filter.MinRating = parsed
	}
	if v := c.Query("maxRating"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return filter, utils.NewInvalidInput("maxRating must be an integer")
		}
		filter.MaxRating = parsed
	}
	if v := c.Query("dateFrom"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			return filter, utils.NewInvalidInput("dateFrom must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		filter.DateFrom = parsed
	}
	if v := c.Query("dateTo"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			return filter, utils.NewInvalidInput("dateTo must be an RFC 3339 timestamp or YYYY-MM-DD date")
		}
		filter.DateTo = parsed
	}
	if v := c.Query("sortBy"); v != "" {
		filter.SortBy = models.ReviewSortField(v)
	}
	switch c.Query("order") {
	case "", "asc":
	case "desc":
		filter.Descending = true
	default:
		return filter, utils.NewInvalidInput("order must be asc or desc")
	}

	return filter, nil
}

func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
