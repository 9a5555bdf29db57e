package handlers

import (
	"net/http"

	"seatwise/middleware"
	"seatwise/services/notifier"
	"seatwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DeviceHandler registers push tokens for reservation lifecycle pushes.
// Account storage lives in the external identity service, so tokens are
// registered directly against the authenticated identity.
type DeviceHandler struct {
	Tokens notifier.TokenStore
	Logger *zap.Logger
}

// NewDeviceHandler constructs a DeviceHandler.
func NewDeviceHandler(tokens notifier.TokenStore, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{Tokens: tokens, Logger: logger}
}

// UpdateUserPushToken handles PUT /api/devices/user/push-token.
func (h *DeviceHandler) UpdateUserPushToken(c *gin.Context) {
	h.updateToken(c, c.GetString(middleware.ContextUserID))
}

// UpdateProviderPushToken handles PUT /api/devices/provider/push-token.
func (h *DeviceHandler) UpdateProviderPushToken(c *gin.Context) {
	h.updateToken(c, c.GetString(middleware.ContextProviderID))
}

func (h *DeviceHandler) updateToken(c *gin.Context, recipientID string) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Tokens.SetToken(c.Request.Context(), recipientID, input.Token); err != nil {
		h.Logger.Error("failed to store push token", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to store push token", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "push token updated"})
}
