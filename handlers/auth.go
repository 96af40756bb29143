package handlers

import (
	"net/http"

	"homeserve/models"
	"homeserve/services/auth"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	Service auth.AuthService
}

func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// RegisterClientHandler handles POST /auth/register/client.
func (h *AuthHandler) RegisterClientHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req auth.ClientRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid client registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.RegisterClient(req)
	if err != nil {
		logger.Error("Client registration failed", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegisterProviderHandler handles POST /auth/register/provider.
func (h *AuthHandler) RegisterProviderHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req auth.ProviderRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid provider registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.RegisterProvider(req)
	if err != nil {
		logger.Error("Provider registration failed", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string      `json:"email" binding:"required"`
		Password string      `json:"password" binding:"required"`
		Role     models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Login(req.Email, req.Password, req.Role)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
