package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/handler/dto"
	"github.com/yourusername/predictor-api/internal/service"
)

// FixtureHandler handles fixture reads and the admin fixture lifecycle.
type FixtureHandler struct {
	fixtureService    *service.FixtureService
	seasonService     *service.SeasonService
	predictionService *service.PredictionService
}

// NewFixtureHandler creates a new fixture handler.
func NewFixtureHandler(fixtureService *service.FixtureService, seasonService *service.SeasonService, predictionService *service.PredictionService) *FixtureHandler {
	return &FixtureHandler{
		fixtureService:    fixtureService,
		seasonService:     seasonService,
		predictionService: predictionService,
	}
}

// Create handles POST /api/fixtures (admin).
func (h *FixtureHandler) Create(c *gin.Context) {
	var req dto.CreateFixtureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fixture := &entity.Fixture{
		SeasonID:    req.SeasonID,
		HomeTeam:    req.HomeTeam,
		AwayTeam:    req.AwayTeam,
		Competition: entity.Competition(req.Competition),
		KickoffTime: req.KickoffTime,
		Round:       req.Round,
	}
	if err := h.fixtureService.CreateFixture(fixture); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fixture)
}

// Get handles GET /api/fixtures/:id.
func (h *FixtureHandler) Get(c *gin.Context) {
	fixture, err := h.fixtureService.GetFixture(c.GetUint("fixtureID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fixture)
}

// List handles GET /api/fixtures. Season defaults to the current one.
func (h *FixtureHandler) List(c *gin.Context) {
	seasonID, err := h.resolveSeasonID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	fixtures, err := h.fixtureService.ListBySeason(seasonID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fixtures)
}

// Next handles GET /api/fixtures/next. The response carries the submission
// deadline and whether predictions are still open.
func (h *FixtureHandler) Next(c *gin.Context) {
	fixture, err := h.fixtureService.NextFixture()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fixture":             fixture,
		"can_predict":         h.predictionService.IsOpen(fixture),
		"prediction_deadline": h.predictionService.Deadline(fixture),
	})
}

// Upcoming handles GET /api/fixtures/upcoming.
func (h *FixtureHandler) Upcoming(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	fixtures, err := h.fixtureService.UpcomingFixtures(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fixtures)
}

// Recent handles GET /api/fixtures/recent, the latest results of the current
// season.
func (h *FixtureHandler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	fixtures, err := h.fixtureService.RecentResults(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fixtures)
}

// Update handles PUT /api/fixtures/:id (admin).
func (h *FixtureHandler) Update(c *gin.Context) {
	var req dto.UpdateFixtureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fixture, err := h.fixtureService.UpdateFixture(c.GetUint("fixtureID"), req.HomeTeam, req.AwayTeam, req.KickoffTime, entity.Competition(req.Competition))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fixture)
}

// Postpone handles POST /api/fixtures/:id/postpone (admin).
func (h *FixtureHandler) Postpone(c *gin.Context) {
	fixture, err := h.fixtureService.PostponeFixture(c.GetUint("fixtureID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fixture)
}

// Reschedule handles POST /api/fixtures/:id/reschedule (admin).
func (h *FixtureHandler) Reschedule(c *gin.Context) {
	var req dto.RescheduleFixtureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fixture, err := h.fixtureService.RescheduleFixture(c.GetUint("fixtureID"), req.KickoffTime)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fixture)
}

// Delete handles DELETE /api/fixtures/:id (admin). Refused once any
// prediction exists.
func (h *FixtureHandler) Delete(c *gin.Context) {
	if err := h.fixtureService.DeleteFixture(c.GetUint("fixtureID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fixture deleted"})
}

// FinalizeScore handles POST /api/fixtures/:id/result (admin). Scores every
// prediction and refreshes positions in one transaction.
func (h *FixtureHandler) FinalizeScore(c *gin.Context) {
	var req dto.FinalizeScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fixture, err := h.fixtureService.FinalizeScore(c.GetUint("fixtureID"), *req.HomeScore, *req.AwayScore)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fixture)
}

func (h *FixtureHandler) resolveSeasonID(c *gin.Context) (uint, error) {
	if raw := c.Query("season_id"); raw != "" {
		if id, err := parseUintQuery(raw); err == nil {
			return id, nil
		}
	}
	season, err := h.seasonService.GetCurrentSeason()
	if err != nil {
		return 0, err
	}
	return season.ID, nil
}
