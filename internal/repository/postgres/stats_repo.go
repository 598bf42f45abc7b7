package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/predictor-api/internal/domain/entity"
	"github.com/yourusername/predictor-api/internal/domain/repository"
)

// standingsOrder is the leaderboard sort key: users with activity before
// users without, then points, exact scores, correct results, and finally
// username for a stable total order.
const standingsOrder = `(COALESCE(s.predictions_made, 0) > 0) DESC,
	COALESCE(s.total_points, 0) DESC,
	COALESCE(s.correct_scores, 0) DESC,
	COALESCE(s.correct_results, 0) DESC,
	u.username ASC`

// standingsSelect flattens a user row and its optional aggregate into one
// Standing. Users without an aggregate row yet appear with zeroes.
const standingsSelect = `u.id AS user_id,
	u.username,
	u.avatar_url,
	COALESCE(s.total_points, 0) AS total_points,
	COALESCE(s.correct_scores, 0) AS correct_scores,
	COALESCE(s.correct_results, 0) AS correct_results,
	COALESCE(s.predictions_made, 0) AS predictions_made,
	COALESCE(s.avg_points_per_game, 0) AS avg_points_per_game,
	COALESCE(s.current_streak, 0) AS current_streak`

// StatsRepo implements repository.StatsRepository.
type StatsRepo struct {
	db *gorm.DB
}

// NewStatsRepo creates a new stats repository.
func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// GetByUserAndSeason returns the user's aggregate for a season.
func (r *StatsRepo) GetByUserAndSeason(userID, seasonID uint) (*entity.UserStats, error) {
	var stats entity.UserStats
	err := r.db.Where("user_id = ? AND season_id = ?", userID, seasonID).
		First(&stats).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &stats, nil
}

// ListBySeason returns all aggregates of a season.
func (r *StatsRepo) ListBySeason(seasonID uint) ([]entity.UserStats, error) {
	var stats []entity.UserStats
	err := r.db.Where("season_id = ?", seasonID).Find(&stats).Error
	return stats, err
}

// StandingsBySeason returns one standing per registered user, pre-sorted by
// the ranking sort key. Users who never predicted appear with zeroes.
func (r *StatsRepo) StandingsBySeason(seasonID uint) ([]repository.Standing, error) {
	var rows []repository.Standing
	err := r.db.Table("users u").
		Select(standingsSelect).
		Joins("LEFT JOIN user_stats s ON s.user_id = u.id AND s.season_id = ?", seasonID).
		Order(standingsOrder).
		Scan(&rows).Error
	return rows, err
}

// StandingsForUsers is StandingsBySeason restricted to a member set.
func (r *StatsRepo) StandingsForUsers(seasonID uint, userIDs []uint) ([]repository.Standing, error) {
	if len(userIDs) == 0 {
		return []repository.Standing{}, nil
	}
	var rows []repository.Standing
	err := r.db.Table("users u").
		Select(standingsSelect).
		Joins("LEFT JOIN user_stats s ON s.user_id = u.id AND s.season_id = ?", seasonID).
		Where("u.id IN ?", userIDs).
		Order(standingsOrder).
		Scan(&rows).Error
	return rows, err
}

// WindowedStandings aggregates scored predictions over the given fixtures
// only. Users without a scored prediction inside the window do not appear;
// streaks are season-wide and therefore left at zero here.
func (r *StatsRepo) WindowedStandings(fixtureIDs []uint) ([]repository.Standing, error) {
	if len(fixtureIDs) == 0 {
		return []repository.Standing{}, nil
	}
	var rows []repository.Standing
	err := r.db.Table("predictions p").
		Select(fmt.Sprintf(`p.user_id,
			u.username,
			u.avatar_url,
			COALESCE(SUM(p.points_earned), 0) AS total_points,
			COUNT(*) FILTER (WHERE p.points_earned = %d) AS correct_scores,
			COUNT(*) FILTER (WHERE p.points_earned = %d) AS correct_results,
			COUNT(*) AS predictions_made,
			COALESCE(AVG(p.points_earned), 0) AS avg_points_per_game,
			0 AS current_streak`,
			entity.PointsExactScore, entity.PointsCorrectResult)).
		Joins("JOIN users u ON u.id = p.user_id").
		Where("p.fixture_id IN ? AND p.points_earned IS NOT NULL", fixtureIDs).
		Group("p.user_id, u.username, u.avatar_url").
		Order(`total_points DESC,
			correct_scores DESC,
			correct_results DESC,
			u.username ASC`).
		Scan(&rows).Error
	return rows, err
}

// CountBySeason counts aggregate rows of a season.
func (r *StatsRepo) CountBySeason(seasonID uint) (int64, error) {
	var total int64
	err := r.db.Model(&entity.UserStats{}).Where("season_id = ?", seasonID).Count(&total).Error
	return total, err
}

// CountByUser counts the user's aggregate rows across all seasons.
func (r *StatsRepo) CountByUser(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&entity.UserStats{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

// SavePositions writes recomputed global positions inside the caller's
// transaction.
func (r *StatsRepo) SavePositions(tx *gorm.DB, seasonID uint, positions map[uint]int) error {
	for userID, position := range positions {
		err := tx.Model(&entity.UserStats{}).
			Where("user_id = ? AND season_id = ?", userID, seasonID).
			Update("position", position).Error
		if err != nil {
			return translateError(err)
		}
	}
	return nil
}
