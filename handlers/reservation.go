package handlers

import (
	"net/http"

	"homeserve/middleware"
	"homeserve/models"
	"homeserve/services/reservation"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReservationHandler exposes the reservation ledger endpoints.
type ReservationHandler struct {
	Service reservation.ReservationService
}

func NewReservationHandler(svc reservation.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// CreateReservationHandler handles POST /reservations. Client role only.
func (h *ReservationHandler) CreateReservationHandler(c *gin.Context) {
	logger := utils.GetLogger()

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	var req reservation.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid reservation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Service.Create(principal.ID, req)
	if err != nil {
		logger.Error("Reservation creation failed", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMineHandler handles GET /reservations/mine for either role.
func (h *ReservationHandler) ListMineHandler(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	views, err := h.Service.ListForUser(principal)
	if err != nil {
		utils.GetLogger().Error("Failed to list reservations", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// TransitionHandler handles PUT /reservations/:id/status.
func (h *ReservationHandler) TransitionHandler(c *gin.Context) {
	logger := utils.GetLogger()

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	var req struct {
		Status models.ReservationStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid status request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Service.Transition(c.Param("id"), principal, req.Status)
	if err != nil {
		logger.Warn("Reservation transition rejected", zap.String("id", c.Param("id")), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
