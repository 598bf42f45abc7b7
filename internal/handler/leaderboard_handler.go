package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
	"github.com/yourusername/predictor-api/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LeaderboardHandler handles the season, form and month leaderboards.
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
	seasonService      *service.SeasonService
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService, seasonService *service.SeasonService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		seasonService:      seasonService,
	}
}

// Global handles GET /api/leaderboard. Season defaults to the current one.
func (h *LeaderboardHandler) Global(c *gin.Context) {
	seasonID, err := h.resolveSeasonID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ranked, err := h.leaderboardService.GlobalLeaderboard(seasonID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ranked)
}

// Form handles GET /api/leaderboard/form. Only the most recent finished
// fixtures count.
func (h *LeaderboardHandler) Form(c *gin.Context) {
	seasonID, err := h.resolveSeasonID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ranked, err := h.leaderboardService.FormLeaderboard(seasonID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ranked)
}

// Month handles GET /api/leaderboard/month?year=2026&month=3.
func (h *LeaderboardHandler) Month(c *gin.Context) {
	seasonID, err := h.resolveSeasonID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be a number"})
		return
	}

	ranked, err := h.leaderboardService.MonthLeaderboard(seasonID, year, time.Month(month))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ranked)
}

// Export handles GET /api/leaderboard/export and streams the season
// leaderboard as an XLSX workbook.
func (h *LeaderboardHandler) Export(c *gin.Context) {
	seasonID, err := h.resolveSeasonID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	season, err := h.seasonService.GetSeason(seasonID)
	if err != nil {
		respondError(c, err)
		return
	}

	ranked, err := h.leaderboardService.GlobalLeaderboard(seasonID)
	if err != nil {
		respondError(c, err)
		return
	}

	buf, err := h.leaderboardService.ExportXLSX(season.Name, ranked)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("leaderboard-%d.xlsx", seasonID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *LeaderboardHandler) resolveSeasonID(c *gin.Context) (uint, error) {
	if raw := c.Query("season_id"); raw != "" {
		id, err := parseUintQuery(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid season_id", apperrors.ErrValidation)
		}
		return id, nil
	}
	season, err := h.seasonService.GetCurrentSeason()
	if err != nil {
		return 0, err
	}
	return season.ID, nil
}
