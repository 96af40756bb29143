package handlers

import (
	"net/http"
	"strconv"

	providerRepo "homeserve/database/repository/provider"
	"homeserve/middleware"
	"homeserve/models"
	"homeserve/services/provider"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler exposes provider discovery and profile endpoints.
type ProviderHandler struct {
	Service provider.ProviderService
}

func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Service: svc}
}

// ListProvidersHandler handles GET /providers.
func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	providers, err := h.Service.List()
	if err != nil {
		utils.GetLogger().Error("Failed to list providers", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

// ListByServiceHandler handles GET /providers/service/:type.
func (h *ProviderHandler) ListByServiceHandler(c *gin.Context) {
	serviceType := models.ServiceType(c.Param("type"))
	providers, err := h.Service.ListByService(serviceType)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

// GetProviderByIDHandler handles GET /providers/id/:id.
func (h *ProviderHandler) GetProviderByIDHandler(c *gin.Context) {
	id := c.Param("id")
	prov, err := h.Service.GetByID(id)
	if err != nil {
		utils.GetLogger().Warn("Provider lookup failed", zap.String("id", id), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prov)
}

// SearchProvidersHandler handles GET /providers/search?serviceType=&maxRate=.
func (h *ProviderHandler) SearchProvidersHandler(c *gin.Context) {
	criteria := providerRepo.ProviderSearchCriteria{
		ServiceType: models.ServiceType(c.Query("serviceType")),
	}
	if maxRate := c.Query("maxRate"); maxRate != "" {
		parsed, err := strconv.ParseFloat(maxRate, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxRate must be a positive number"})
			return
		}
		criteria.MaxHourlyRate = parsed
	}

	providers, err := h.Service.Search(criteria)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

// UpdateProfileHandler handles PATCH /providers/profile for the authenticated
// provider.
func (h *ProviderHandler) UpdateProfileHandler(c *gin.Context) {
	logger := utils.GetLogger()

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	var req provider.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid profile update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Service.UpdateProfile(principal.ID, req)
	if err != nil {
		logger.Error("Profile update failed", zap.String("id", principal.ID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateAvailabilityHandler handles PUT /providers/availability for the
// authenticated provider.
func (h *ProviderHandler) UpdateAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	var req struct {
		Availability []string `json:"availability" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid availability request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Service.UpdateAvailability(principal.ID, req.Availability)
	if err != nil {
		logger.Error("Availability update failed", zap.String("id", principal.ID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
