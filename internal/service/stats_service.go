package service

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

// StatsService maintains per-(user, season) aggregates. Aggregates are only
// ever written on fixture finalization or a full rebuild, never on
// prediction submission.
type StatsService struct {
	statsRepo      repository.StatsRepository
	predictionRepo repository.PredictionRepository
	fixtureRepo    repository.FixtureRepository
	db             *gorm.DB
}

// NewStatsService creates a new stats service.
func NewStatsService(
	statsRepo repository.StatsRepository,
	predictionRepo repository.PredictionRepository,
	fixtureRepo repository.FixtureRepository,
	db *gorm.DB,
) *StatsService {
	return &StatsService{
		statsRepo:      statsRepo,
		predictionRepo: predictionRepo,
		fixtureRepo:    fixtureRepo,
		db:             db,
	}
}

// GetUserStats returns the user's aggregate for a season. A user without a
// row yet gets a zero-value aggregate, not an error.
func (s *StatsService) GetUserStats(userID, seasonID uint) (*entity.UserStats, error) {
	stats, err := s.statsRepo.GetByUserAndSeason(userID, seasonID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &entity.UserStats{UserID: userID, SeasonID: seasonID}, nil
		}
		return nil, err
	}
	return stats, nil
}

// applyFixtureInTx scores every prediction of a finished fixture and folds
// the results into the user aggregates, all inside the caller's transaction.
// Already scored predictions are skipped, so re-finalizing a fixture with the
// same score is a no-op for stats.
func (s *StatsService) applyFixtureInTx(tx *gorm.DB, fixture *entity.Fixture) (int, error) {
	if fixture.HomeScore == nil || fixture.AwayScore == nil {
		return 0, fmt.Errorf("fixture %d has no final score", fixture.ID)
	}

	var predictions []entity.Prediction
	if err := tx.Where("fixture_id = ?", fixture.ID).Find(&predictions).Error; err != nil {
		return 0, fmt.Errorf("failed to load predictions: %w", err)
	}

	scored := 0
	for i := range predictions {
		p := &predictions[i]
		if p.IsScored() {
			continue
		}

		points := entity.ScorePrediction(p.HomePrediction, p.AwayPrediction, *fixture.HomeScore, *fixture.AwayScore)
		p.PointsEarned = &points
		if err := tx.Model(&entity.Prediction{}).Where("id = ?", p.ID).
			Update("points_earned", points).Error; err != nil {
			return 0, fmt.Errorf("failed to score prediction %d: %w", p.ID, err)
		}

		var stats entity.UserStats
		err := tx.Where("user_id = ? AND season_id = ?", p.UserID, fixture.SeasonID).
			First(&stats).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("failed to load stats for user %d: %w", p.UserID, err)
			}
			stats = entity.UserStats{UserID: p.UserID, SeasonID: fixture.SeasonID}
		}

		stats.ApplyScoredPrediction(points)
		if err := tx.Save(&stats).Error; err != nil {
			return 0, fmt.Errorf("failed to save stats for user %d: %w", p.UserID, err)
		}
		scored++
	}

	return scored, nil
}

// RebuildSeason recomputes every aggregate of a season by replaying finished
// fixtures in kickoff order from a zero state, then reassigns positions. The
// fold matches the incremental path exactly, so a rebuild after incremental
// updates changes nothing unless data was corrected underneath.
func (s *StatsService) RebuildSeason(seasonID uint) error {
	fixtures, err := s.fixtureRepo.FinishedOrdered(seasonID)
	if err != nil {
		return fmt.Errorf("failed to load finished fixtures: %w", err)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Printf("PANIC recovered during RebuildSeason transaction: %v", r)
		}
	}()
	if tx.Error != nil {
		return tx.Error
	}

	// Reset existing aggregates instead of deleting them: rows keep their
	// IDs and users present only in user_stats remain ranked.
	if err := tx.Model(&entity.UserStats{}).Where("season_id = ?", seasonID).
		Updates(map[string]interface{}{
			"total_points":        0,
			"correct_scores":      0,
			"correct_results":     0,
			"predictions_made":    0,
			"current_streak":      0,
			"best_streak":         0,
			"avg_points_per_game": 0,
			"position":            nil,
		}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to reset season stats: %w", err)
	}

	rebuilt := make(map[uint]*entity.UserStats)
	for i := range fixtures {
		f := &fixtures[i]

		var predictions []entity.Prediction
		if err := tx.Where("fixture_id = ? AND points_earned IS NOT NULL", f.ID).
			Find(&predictions).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to load predictions for fixture %d: %w", f.ID, err)
		}

		for j := range predictions {
			p := &predictions[j]
			points := entity.ScorePrediction(p.HomePrediction, p.AwayPrediction, *f.HomeScore, *f.AwayScore)
			if p.PointsEarned == nil || *p.PointsEarned != points {
				if err := tx.Model(&entity.Prediction{}).Where("id = ?", p.ID).
					Update("points_earned", points).Error; err != nil {
					tx.Rollback()
					return fmt.Errorf("failed to rescore prediction %d: %w", p.ID, err)
				}
			}

			stats, ok := rebuilt[p.UserID]
			if !ok {
				stats = &entity.UserStats{UserID: p.UserID, SeasonID: seasonID}
				rebuilt[p.UserID] = stats
			}
			stats.ApplyScoredPrediction(points)
		}
	}

	for _, stats := range rebuilt {
		err := tx.Model(&entity.UserStats{}).
			Where("user_id = ? AND season_id = ?", stats.UserID, seasonID).
			Updates(map[string]interface{}{
				"total_points":        stats.TotalPoints,
				"correct_scores":      stats.CorrectScores,
				"correct_results":     stats.CorrectResults,
				"predictions_made":    stats.PredictionsMade,
				"current_streak":      stats.CurrentStreak,
				"best_streak":         stats.BestStreak,
				"avg_points_per_game": stats.AvgPointsPerGame,
			})
		if err.Error != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save rebuilt stats for user %d: %w", stats.UserID, err.Error)
		}
		if err.RowsAffected == 0 {
			row := entity.UserStats{
				UserID:           stats.UserID,
				SeasonID:         seasonID,
				TotalPoints:      stats.TotalPoints,
				CorrectScores:    stats.CorrectScores,
				CorrectResults:   stats.CorrectResults,
				PredictionsMade:  stats.PredictionsMade,
				CurrentStreak:    stats.CurrentStreak,
				BestStreak:       stats.BestStreak,
				AvgPointsPerGame: stats.AvgPointsPerGame,
			}
			if createErr := tx.Create(&row).Error; createErr != nil {
				tx.Rollback()
				return fmt.Errorf("failed to create rebuilt stats for user %d: %w", stats.UserID, createErr)
			}
		}
	}

	if err := s.recomputePositionsInTx(tx, seasonID); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	log.Printf("[StatsService] Rebuilt season #%d stats from %d finished fixtures (%d users)",
		seasonID, len(fixtures), len(rebuilt))
	return nil
}

// recomputePositionsInTx reranks the season's standings and writes the
// cached positions. Standings are read through the transaction so they see
// the uncommitted aggregate updates.
func (s *StatsService) recomputePositionsInTx(tx *gorm.DB, seasonID uint) error {
	var standings []repository.Standing
	err := tx.Table("user_stats s").
		Select(`s.user_id, u.username, u.avatar_url, s.total_points, s.correct_scores,
			s.correct_results, s.predictions_made, s.avg_points_per_game, s.current_streak`).
		Joins("JOIN users u ON u.id = s.user_id").
		Where("s.season_id = ?", seasonID).
		Scan(&standings).Error
	if err != nil {
		return fmt.Errorf("failed to load standings: %w", err)
	}

	ranked := RankStandings(standings)
	if err := s.statsRepo.SavePositions(tx, seasonID, PositionsByUser(ranked)); err != nil {
		return fmt.Errorf("failed to save positions: %w", err)
	}
	return nil
}
