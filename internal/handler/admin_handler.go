package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/predictor-api/internal/handler/dto"
	"github.com/yourusername/predictor-api/internal/service"
)

// AdminHandler handles the admin overview and user administration.
type AdminHandler struct {
	adminService *service.AdminService
	statsService *service.StatsService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService *service.AdminService, statsService *service.StatsService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		statsService: statsService,
	}
}

// Overview handles GET /api/admin/overview.
func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.adminService.Overview()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// ListUsers handles GET /api/admin/users?page=1&page_size=20.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.adminService.ListUsers(page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"users": responses,
		"total": total,
		"page":  page,
	})
}

// SetAdmin handles PUT /api/admin/users/:id/admin.
func (h *AdminHandler) SetAdmin(c *gin.Context) {
	var req dto.SetAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetID := c.GetUint("userID")
	if targetID == currentUserID(c) && !*req.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admins cannot revoke their own rights"})
		return
	}

	if err := h.adminService.SetAdmin(targetID, *req.IsAdmin); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin flag updated"})
}

// RebuildSeason handles POST /api/admin/seasons/:id/rebuild. Replays every
// finished fixture of the season from scratch.
func (h *AdminHandler) RebuildSeason(c *gin.Context) {
	if err := h.statsService.RebuildSeason(c.GetUint("seasonID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Season statistics rebuilt"})
}
