package repository

import (
	"time"

	"github.com/yourusername/predictor-api/internal/domain/entity"
)

// PredictionWithFixture is a prediction joined with its fixture, used for
// per-user listings.
type PredictionWithFixture struct {
	entity.Prediction
	HomeTeam         string               `json:"home_team"`
	AwayTeam         string               `json:"away_team"`
	KickoffTime      time.Time            `json:"kickoff_time"`
	FixtureStatus    entity.FixtureStatus `json:"fixture_status"`
	FixtureHomeScore *int                 `json:"fixture_home_score"`
	FixtureAwayScore *int                 `json:"fixture_away_score"`
}

// PredictionRepository defines persistence operations for predictions.
type PredictionRepository interface {
	Create(prediction *entity.Prediction) error
	Update(prediction *entity.Prediction) error
	GetByUserAndFixture(userID, fixtureID uint) (*entity.Prediction, error)
	ListByFixture(fixtureID uint) ([]entity.Prediction, error)
	// ListByUser returns the user's predictions joined with fixture details,
	// newest kickoff first.
	ListByUser(userID uint) ([]PredictionWithFixture, error)
	CountByFixture(fixtureID uint) (int64, error)
	CountByUser(userID uint) (int64, error)
	Count() (int64, error)
	// CountDistinctPredictorsSince counts users who submitted a prediction
	// after the given time.
	CountDistinctPredictorsSince(since time.Time) (int64, error)
}
