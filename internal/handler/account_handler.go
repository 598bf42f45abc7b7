package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/predictor-api/internal/handler/dto"
	"github.com/yourusername/predictor-api/internal/service"
)

// AccountHandler handles account deletion.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// PreviewDeletion handles GET /api/account/deletion-preview. Shows what the
// deletion will remove and where owned leagues will go.
func (h *AccountHandler) PreviewDeletion(c *gin.Context) {
	preview, err := h.accountService.PreviewDeletion(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

// DeleteAccount handles POST /api/account/delete. Requires the typed
// confirmation phrase and, for password accounts, the current password.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	var req dto.DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountService.DeleteAccount(currentUserID(c), req.Confirmation, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
