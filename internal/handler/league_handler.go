package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/predictor-api/internal/handler/dto"
	"github.com/yourusername/predictor-api/internal/service"
)

// LeagueHandler handles mini-league management.
type LeagueHandler struct {
	leagueService *service.LeagueService
}

// NewLeagueHandler creates a new league handler.
func NewLeagueHandler(leagueService *service.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueService: leagueService}
}

// Create handles POST /api/leagues. The creator becomes the first member and
// a league admin.
func (h *LeagueHandler) Create(c *gin.Context) {
	var req dto.CreateLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	league, err := h.leagueService.CreateLeague(currentUserID(c), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, league)
}

// Join handles POST /api/leagues/join with an invite code.
func (h *LeagueHandler) Join(c *gin.Context) {
	var req dto.JoinLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	league, err := h.leagueService.JoinLeague(currentUserID(c), req.InviteCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, league)
}

// Leave handles POST /api/leagues/:id/leave. A creator with other members
// still present must delete or transfer instead.
func (h *LeagueHandler) Leave(c *gin.Context) {
	if err := h.leagueService.LeaveLeague(currentUserID(c), c.GetUint("leagueID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left league"})
}

// Delete handles DELETE /api/leagues/:id. Creator only.
func (h *LeagueHandler) Delete(c *gin.Context) {
	if err := h.leagueService.DeleteLeague(currentUserID(c), c.GetUint("leagueID")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "League deleted"})
}

// ListMine handles GET /api/leagues.
func (h *LeagueHandler) ListMine(c *gin.Context) {
	leagues, err := h.leagueService.ListMyLeagues(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, leagues)
}

// Get handles GET /api/leagues/:id. Members only.
func (h *LeagueHandler) Get(c *gin.Context) {
	league, err := h.leagueService.GetLeague(currentUserID(c), c.GetUint("leagueID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, league)
}

// Standings handles GET /api/leagues/:id/standings. Members are ranked with
// the same tie rules as the global leaderboard.
func (h *LeagueHandler) Standings(c *gin.Context) {
	ranked, err := h.leagueService.LeagueStandings(currentUserID(c), c.GetUint("leagueID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ranked)
}
