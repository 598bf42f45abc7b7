package entity

// UserStats is the per-(user, season) running aggregate. The (user, season)
// pair is unique. Position is a cached, derived value: only the leaderboard
// recomputation path writes it, and it is never treated as a source of truth.
type UserStats struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	UserID           uint    `gorm:"not null;index;uniqueIndex:idx_user_season" json:"user_id"`
	SeasonID         uint    `gorm:"not null;index;uniqueIndex:idx_user_season" json:"season_id"`
	TotalPoints      int     `gorm:"not null;default:0" json:"total_points"`
	CorrectScores    int     `gorm:"not null;default:0" json:"correct_scores"`
	CorrectResults   int     `gorm:"not null;default:0" json:"correct_results"`
	PredictionsMade  int     `gorm:"not null;default:0" json:"predictions_made"`
	CurrentStreak    int     `gorm:"not null;default:0" json:"current_streak"`
	BestStreak       int     `gorm:"not null;default:0" json:"best_streak"`
	AvgPointsPerGame float64 `gorm:"not null;default:0" json:"avg_points_per_game"`
	Position         *int    `json:"position,omitempty"`
}

// TableName sets the GORM table name.
func (UserStats) TableName() string {
	return "user_stats"
}

// ApplyScoredPrediction folds one newly scored prediction into the aggregate.
// It is the single authoritative fold: both incremental finalization and the
// full season rebuild go through it, so replaying the ordered history from a
// zero value yields the same aggregate as incremental application.
func (s *UserStats) ApplyScoredPrediction(points int) {
	s.TotalPoints += points
	s.PredictionsMade++

	switch points {
	case PointsExactScore:
		s.CorrectScores++
	case PointsCorrectResult:
		s.CorrectResults++
	}

	if points > 0 {
		s.CurrentStreak++
		if s.CurrentStreak > s.BestStreak {
			s.BestStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}

	if s.PredictionsMade > 0 {
		s.AvgPointsPerGame = float64(s.TotalPoints) / float64(s.PredictionsMade)
	}
}
