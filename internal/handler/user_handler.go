package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/predictor-api/internal/handler/dto"
	"github.com/yourusername/predictor-api/internal/service"
)

// UserHandler handles profile requests.
type UserHandler struct {
	userService   *service.UserService
	statsService  *service.StatsService
	seasonService *service.SeasonService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService *service.UserService, statsService *service.StatsService, seasonService *service.SeasonService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		statsService:  statsService,
		seasonService: seasonService,
	}
}

// UpdateProfile handles PUT /api/users/me.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(currentUserID(c), req.Username, req.AvatarURL, req.EmailNotifications)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// ChangePassword handles POST /api/users/me/change-password.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userService.ChangePassword(currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// GetMyStats handles GET /api/users/me/stats. Season defaults to the current
// one.
func (h *UserHandler) GetMyStats(c *gin.Context) {
	seasonID, err := h.resolveSeasonID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.statsService.GetUserStats(currentUserID(c), seasonID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListMyNotifications handles GET /api/users/me/notifications.
func (h *UserHandler) ListMyNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	notifications, err := h.userService.ListNotifications(currentUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *UserHandler) resolveSeasonID(c *gin.Context) (uint, error) {
	if raw := c.Query("season_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err == nil {
			return uint(id), nil
		}
	}
	season, err := h.seasonService.GetCurrentSeason()
	if err != nil {
		return 0, err
	}
	return season.ID, nil
}
