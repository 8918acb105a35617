package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trovehq/trove-backend/internal/common"
	"github.com/trovehq/trove-backend/internal/service"
)

// MusicHandler proxies track search requests
type MusicHandler struct {
	musicService service.MusicService
}

// NewMusicHandler creates a new MusicHandler
func NewMusicHandler(musicService service.MusicService) *MusicHandler {
	return &MusicHandler{musicService: musicService}
}

// Search handles GET /music/search?q=keyword&limit=20
func (h *MusicHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Search query is required", nil)
		return
	}

	limit := 20
	if val, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		limit = val
	}

	tracks, err := h.musicService.Search(c.Request.Context(), query, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadGateway, "Music search failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tracks": tracks})
}
