package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trovehq/trove-backend/internal/common"
	"github.com/trovehq/trove-backend/internal/middleware"
	"github.com/trovehq/trove-backend/internal/service"
)

// CatalogHandler serves the browse surface
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetCatalog handles GET /catalogs/:id
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	catalogID := c.Param("id")
	viewerID := middleware.GetUserID(c)

	detail, err := h.catalogService.GetCatalog(c.Request.Context(), catalogID, viewerID)
	if err != nil {
		if errors.Is(err, common.ErrCatalogNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Catalog not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Catalog lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: detail})
}

// ListPopular handles GET /catalogs/popular?limit=20
func (h *CatalogHandler) ListPopular(c *gin.Context) {
	limit := 20
	if val, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		limit = val
	}

	catalogs, err := h.catalogService.ListPopular(c.Request.Context(), limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Popular catalogs lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: catalogs})
}

// GetProfile handles GET /profiles/:username
func (h *CatalogHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.catalogService.GetProfile(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, common.ErrProfileNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Profile not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Profile lookup failed", err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: profile})
}
