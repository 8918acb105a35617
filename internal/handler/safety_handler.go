package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trovehq/trove-backend/internal/common"
	"github.com/trovehq/trove-backend/internal/service"
)

// SafetyHandler forwards content-safety checks to the moderation service.
// Both endpoints always answer HTTP 200; only the JSON payload communicates
// the outcome.
type SafetyHandler struct {
	moderationService service.ModerationService
}

// NewSafetyHandler creates a new SafetyHandler
func NewSafetyHandler(moderationService service.ModerationService) *SafetyHandler {
	return &SafetyHandler{moderationService: moderationService}
}

// CheckImage handles POST /safety/check-image
func (h *SafetyHandler) CheckImage(c *gin.Context) {
	var req struct {
		ImageURL string `json:"image_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "image_url is required", err)
		return
	}

	result := h.moderationService.CheckImage(c.Request.Context(), req.ImageURL)
	c.JSON(http.StatusOK, result)
}

// CheckUsername handles POST /safety/check-username
func (h *SafetyHandler) CheckUsername(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "username is required", err)
		return
	}

	result := h.moderationService.CheckUsername(c.Request.Context(), req.Username)
	c.JSON(http.StatusOK, result)
}
