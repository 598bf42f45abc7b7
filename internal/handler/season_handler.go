package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/predictor-api/internal/handler/dto"
	"github.com/yourusername/predictor-api/internal/service"
)

// SeasonHandler handles season reads and the admin season lifecycle.
type SeasonHandler struct {
	seasonService *service.SeasonService
}

// NewSeasonHandler creates a new season handler.
func NewSeasonHandler(seasonService *service.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService}
}

// Create handles POST /api/seasons (admin).
func (h *SeasonHandler) Create(c *gin.Context) {
	var req dto.CreateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	season, err := h.seasonService.CreateSeason(req.Name, req.StartDate, req.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, season)
}

// List handles GET /api/seasons.
func (h *SeasonHandler) List(c *gin.Context) {
	seasons, err := h.seasonService.ListSeasons()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, seasons)
}

// Current handles GET /api/seasons/current.
func (h *SeasonHandler) Current(c *gin.Context) {
	season, err := h.seasonService.GetCurrentSeason()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, season)
}

// Get handles GET /api/seasons/:id.
func (h *SeasonHandler) Get(c *gin.Context) {
	season, err := h.seasonService.GetSeason(c.GetUint("seasonID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, season)
}

// Activate handles POST /api/seasons/:id/activate (admin). Demotes any other
// current season in the same transaction.
func (h *SeasonHandler) Activate(c *gin.Context) {
	season, err := h.seasonService.ActivateSeason(c.GetUint("seasonID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, season)
}

// Archive handles POST /api/seasons/:id/archive (admin).
func (h *SeasonHandler) Archive(c *gin.Context) {
	season, err := h.seasonService.ArchiveSeason(c.GetUint("seasonID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, season)
}

// Delete handles DELETE /api/seasons/:id (admin). Refused while fixtures
// remain.
func (h *SeasonHandler) Delete(c *gin.Context) {
	if err := h.seasonService.DeleteSeason(c.GetUint("seasonID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Season deleted"})
}
