package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trovehq/trove-backend/internal/common"
	"github.com/trovehq/trove-backend/internal/middleware"
	"github.com/trovehq/trove-backend/internal/service"
)

// SearchHandler handles federated search requests
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search runs one federated search across items, catalogs, and profiles
// GET /api/v1/search?q=keyword
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	viewerID := middleware.GetUserID(c)

	result, err := h.searchService.Search(c.Request.Context(), query, viewerID)
	if err != nil {
		// A cancelled context means the client already gave up on this
		// query; there is nobody left to answer.
		if errors.Is(err, c.Request.Context().Err()) {
			c.Abort()
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Search failed", err)
		return
	}

	middleware.CountSearchQuery()
	common.SuccessResponse(c, result, &common.Meta{Query: query})
}
