package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trovehq/trove-backend/internal/common"
	"github.com/trovehq/trove-backend/internal/middleware"
	"github.com/trovehq/trove-backend/internal/service"
)

// EngagementHandler handles like and bookmark HTTP requests
type EngagementHandler struct {
	likeService     service.LikeService
	bookmarkService service.BookmarkService
}

// NewEngagementHandler creates a new EngagementHandler
func NewEngagementHandler(likeService service.LikeService, bookmarkService service.BookmarkService) *EngagementHandler {
	return &EngagementHandler{
		likeService:     likeService,
		bookmarkService: bookmarkService,
	}
}

// ToggleLike handles POST /items/:id/like
func (h *EngagementHandler) ToggleLike(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Sign in required", nil)
		return
	}

	itemID := c.Param("id")
	status, err := h.likeService.Toggle(c.Request.Context(), itemID, userID)
	if err != nil {
		handleEngagementError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: status})
}

// ToggleBookmark handles POST /catalogs/:id/bookmark
func (h *EngagementHandler) ToggleBookmark(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Sign in required", nil)
		return
	}

	catalogID := c.Param("id")
	status, err := h.bookmarkService.Toggle(c.Request.Context(), catalogID, userID)
	if err != nil {
		handleEngagementError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: status})
}

// ListLikes handles GET /me/likes
func (h *EngagementHandler) ListLikes(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Sign in required", nil)
		return
	}

	items, err := h.likeService.ListLiked(c.Request.Context(), userID)
	if err != nil {
		handleEngagementError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: items})
}

// ListBookmarks handles GET /me/bookmarks
func (h *EngagementHandler) ListBookmarks(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Sign in required", nil)
		return
	}

	catalogs, err := h.bookmarkService.ListBookmarked(c.Request.Context(), userID)
	if err != nil {
		handleEngagementError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: catalogs})
}

// handleEngagementError maps service errors to HTTP responses
func handleEngagementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrItemNotFound), errors.Is(err, common.ErrCatalogNotFound):
		common.ErrorResponse(c, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, common.ErrUnauthorized):
		common.ErrorResponse(c, http.StatusUnauthorized, "Sign in required", err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Request failed", err)
	}
}
