package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trovehq/trove-backend/internal/common"
	"github.com/trovehq/trove-backend/internal/service"
)

// AccountHandler handles administrative account requests
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// DeleteAccount handles POST /admin/accounts/delete
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "userId is required", err)
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), req.UserID); err != nil {
		if errors.Is(err, common.ErrProfileNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Unknown user", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Account deletion failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
