package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/predictor-api/internal/handler/dto"
	"github.com/yourusername/predictor-api/internal/service"
)

// PredictionHandler handles prediction submission and listings.
type PredictionHandler struct {
	predictionService *service.PredictionService
}

// NewPredictionHandler creates a new prediction handler.
func NewPredictionHandler(predictionService *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

// Submit handles PUT /api/fixtures/:id/prediction. A repeat submission
// before the deadline replaces the previous one.
func (h *PredictionHandler) Submit(c *gin.Context) {
	fixtureID := c.GetUint("fixtureID")

	var req dto.SubmitPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.predictionService.SubmitPrediction(currentUserID(c), fixtureID, *req.HomePrediction, *req.AwayPrediction)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// GetMine handles GET /api/fixtures/:id/prediction.
func (h *PredictionHandler) GetMine(c *gin.Context) {
	prediction, err := h.predictionService.GetPrediction(currentUserID(c), c.GetUint("fixtureID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// ListMine handles GET /api/predictions.
func (h *PredictionHandler) ListMine(c *gin.Context) {
	predictions, err := h.predictionService.ListUserPredictions(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, predictions)
}

// ListForFixture handles GET /api/fixtures/:id/predictions. Hidden while the
// fixture is still open.
func (h *PredictionHandler) ListForFixture(c *gin.Context) {
	predictions, err := h.predictionService.ListFixturePredictions(c.GetUint("fixtureID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, predictions)
}
