package controllers

import (
	"net/http"

	"qrstudio/internal/models"
	"qrstudio/internal/service"

	"github.com/gin-gonic/gin"
)

type PreferenceController struct {
	preferences service.PreferenceService
}

func NewPreferenceController(preferences service.PreferenceService) *PreferenceController {
	return &PreferenceController{
		preferences: preferences,
	}
}

// GetDarkMode handles GET /api/v1/preferences/dark-mode
func (pc *PreferenceController) GetDarkMode(c *gin.Context) {
	enabled, set, err := pc.preferences.DarkMode(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DarkModeResponse{Enabled: enabled, Set: set})
}

// SetDarkMode handles PUT /api/v1/preferences/dark-mode
func (pc *PreferenceController) SetDarkMode(c *gin.Context) {
	var req models.DarkModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := pc.preferences.SetDarkMode(c.Request.Context(), *req.Enabled); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DarkModeResponse{Enabled: *req.Enabled, Set: true})
}
