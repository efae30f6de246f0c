package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zragie/ngo-receipts-api/internal/application/service"
	"github.com/zragie/ngo-receipts-api/internal/presentation/http/dto/request"
	"github.com/zragie/ngo-receipts-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles user settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings handles fetching the current user's settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settings, err := h.settingsService.Get(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", gin.H{
		"settings": settings,
	})
}

// UpdateSettings handles a partial settings update
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), *userID, &service.UpdateSettingsInput{
		Language:           req.Language,
		Timezone:           req.Timezone,
		DateFormat:         req.DateFormat,
		CurrencyPrefix:     req.CurrencyPrefix,
		DefaultPayMethod:   req.DefaultPayMethod,
		EmailNotifications: req.EmailNotifications,
		NotifyDonors:       req.NotifyDonors,
		Theme:              req.Theme,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", gin.H{
		"settings": settings,
	})
}
