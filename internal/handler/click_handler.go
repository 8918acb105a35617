package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trovehq/trove-backend/internal/common"
	"github.com/trovehq/trove-backend/internal/domain"
	"github.com/trovehq/trove-backend/internal/service"
)

// ClickHandler handles click-tracking requests
type ClickHandler struct {
	clickService service.ClickService
}

// NewClickHandler creates a new ClickHandler
func NewClickHandler(clickService service.ClickService) *ClickHandler {
	return &ClickHandler{clickService: clickService}
}

// TrackClick handles POST /track-click
func (h *ClickHandler) TrackClick(c *gin.Context) {
	var req struct {
		ItemID   string `json:"itemId" binding:"required"`
		ItemType string `json:"itemType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "itemId is required", err)
		return
	}

	count, err := h.clickService.Track(c.Request.Context(), req.ItemID, req.ItemType)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Unknown item", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Click tracking failed", err)
		return
	}

	c.JSON(http.StatusOK, domain.ClickResult{
		Success:    true,
		ClickCount: count,
	})
}
