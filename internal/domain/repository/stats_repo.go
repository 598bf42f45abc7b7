package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
)

// Standing is one leaderboard row before positions are assigned: a user's
// aggregate joined with identity fields. The ranking engine consumes these.
type Standing struct {
	UserID           uint    `json:"user_id"`
	Username         string  `json:"username"`
	AvatarURL        string  `json:"avatar_url"`
	TotalPoints      int     `json:"total_points"`
	CorrectScores    int     `json:"correct_scores"`
	CorrectResults   int     `json:"correct_results"`
	PredictionsMade  int     `json:"predictions_made"`
	AvgPointsPerGame float64 `json:"avg_points_per_game"`
	CurrentStreak    int     `json:"current_streak"`
}

// StatsRepository defines persistence operations for user aggregates.
type StatsRepository interface {
	GetByUserAndSeason(userID, seasonID uint) (*entity.UserStats, error)
	ListBySeason(seasonID uint) ([]entity.UserStats, error)
	// StandingsBySeason returns all standings of a season, pre-sorted by the
	// ranking sort key (activity, points, exact scores, results, username).
	StandingsBySeason(seasonID uint) ([]Standing, error)
	// StandingsForUsers is StandingsBySeason restricted to a member set,
	// used for mini-league leaderboards.
	StandingsForUsers(seasonID uint, userIDs []uint) ([]Standing, error)
	// WindowedStandings aggregates scored predictions over the given fixtures
	// only, for form and calendar-month leaderboards.
	WindowedStandings(fixtureIDs []uint) ([]Standing, error)
	CountBySeason(seasonID uint) (int64, error)
	// CountByUser counts the user's aggregate rows across all seasons.
	CountByUser(userID uint) (int64, error)
	// SavePositions writes recomputed global positions inside the caller's
	// transaction. Positions are a cached view; this is the only write path.
	SavePositions(tx *gorm.DB, seasonID uint, positions map[uint]int) error
}
